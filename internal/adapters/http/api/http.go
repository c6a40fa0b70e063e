// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rosterpay/rosterpay/internal/adapters/repository"
	service "github.com/rosterpay/rosterpay/internal/app"
	"github.com/rosterpay/rosterpay/internal/domain/model"
	"github.com/rosterpay/rosterpay/internal/domain/types"
)

// Dependencies bundles the query operations the handlers need. Using an
// interface keeps the handler layer loosely coupled to the app service.
type Dependencies interface {
	Lookup(ctx context.Context, name string) (model.Record, error)
	FilterByCompetition(ctx context.Context, competition string) (map[string]model.Record, error)

	CompetitionStats(ctx context.Context) ([]types.CompetitionSummary, error)
	SalaryDistribution(ctx context.Context) (types.Distribution, error)
	AgeDistribution(ctx context.Context) ([]types.AgeBand, error)
	ContractStatus(ctx context.Context, currentYear int) (types.ContractSummary, error)
	SalaryByAgeGroup(ctx context.Context) ([]types.AgeGroupSalary, error)
	CompetitionSalaryRanges(ctx context.Context) ([]types.CompetitionRange, error)
}

// StatsProvider exposes service statistics for the /stats endpoint.
type StatsProvider interface {
	GetStats() map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	playersHandler  *PlayersHandler
	analysisHandler *AnalysisHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		playersHandler:  NewPlayersHandler(deps),
		analysisHandler: NewAnalysisHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleListPlayers, "players"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "player"))
	mux.HandleFunc("/analysis/competitions", MetricsMiddleware(s.analysisHandler.HandleCompetitions, "analysis_competitions"))
	mux.HandleFunc("/analysis/salary-distribution", MetricsMiddleware(s.analysisHandler.HandleSalaryDistribution, "analysis_salary_distribution"))
	mux.HandleFunc("/analysis/age-distribution", MetricsMiddleware(s.analysisHandler.HandleAgeDistribution, "analysis_age_distribution"))
	mux.HandleFunc("/analysis/contracts", MetricsMiddleware(s.analysisHandler.HandleContracts, "analysis_contracts"))
	mux.HandleFunc("/analysis/salary-by-age", MetricsMiddleware(s.analysisHandler.HandleSalaryByAge, "analysis_salary_by_age"))
	mux.HandleFunc("/analysis/salary-ranges", MetricsMiddleware(s.analysisHandler.HandleSalaryRanges, "analysis_salary_ranges"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates known error kinds to HTTP responses so
// callers can tell a missing record from an empty catalog.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrEmptyCatalog):
		writeError(w, http.StatusInternalServerError, "empty_catalog", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
