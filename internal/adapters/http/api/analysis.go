// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"time"
)

// AnalysisHandler handles the named aggregation endpoints.
type AnalysisHandler struct {
	deps Dependencies
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps Dependencies) *AnalysisHandler {
	return &AnalysisHandler{deps: deps}
}

// HandleCompetitions handles GET /analysis/competitions requests.
func (h *AnalysisHandler) HandleCompetitions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.deps.CompetitionStats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleSalaryDistribution handles GET /analysis/salary-distribution requests.
func (h *AnalysisHandler) HandleSalaryDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.deps.SalaryDistribution(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleAgeDistribution handles GET /analysis/age-distribution requests.
func (h *AnalysisHandler) HandleAgeDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.deps.AgeDistribution(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleContracts handles GET /analysis/contracts?year=YYYY requests.
// The year parameter keeps the analysis deterministic; only when absent
// does the handler fall back to the current UTC year.
func (h *AnalysisHandler) HandleContracts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadYear)
			return
		}
		year = parsed
	}
	out, err := h.deps.ContractStatus(r.Context(), year)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleSalaryByAge handles GET /analysis/salary-by-age requests.
func (h *AnalysisHandler) HandleSalaryByAge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.deps.SalaryByAgeGroup(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleSalaryRanges handles GET /analysis/salary-ranges requests.
func (h *AnalysisHandler) HandleSalaryRanges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.deps.CompetitionSalaryRanges(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
