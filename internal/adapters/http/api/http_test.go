package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rosterpay/rosterpay/internal/adapters/http/api"
	"github.com/rosterpay/rosterpay/internal/adapters/repository"
	service "github.com/rosterpay/rosterpay/internal/app"
	"github.com/rosterpay/rosterpay/internal/domain/model"
	"github.com/rosterpay/rosterpay/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies and api.StatsProvider with
// canned results.
type mockDeps struct {
	record     model.Record
	lookupErr  error
	roster     map[string]model.Record
	comps      []types.CompetitionSummary
	dist       types.Distribution
	ages       []types.AgeBand
	contracts  types.ContractSummary
	byAge      []types.AgeGroupSalary
	ranges     []types.CompetitionRange
	analysisEr error
	stats      map[string]any
}

func (m *mockDeps) Lookup(_ context.Context, _ string) (model.Record, error) {
	return m.record, m.lookupErr
}

func (m *mockDeps) FilterByCompetition(_ context.Context, _ string) (map[string]model.Record, error) {
	return m.roster, nil
}

func (m *mockDeps) CompetitionStats(_ context.Context) ([]types.CompetitionSummary, error) {
	return m.comps, m.analysisEr
}

func (m *mockDeps) SalaryDistribution(_ context.Context) (types.Distribution, error) {
	return m.dist, m.analysisEr
}

func (m *mockDeps) AgeDistribution(_ context.Context) ([]types.AgeBand, error) {
	return m.ages, m.analysisEr
}

func (m *mockDeps) ContractStatus(_ context.Context, year int) (types.ContractSummary, error) {
	out := m.contracts
	out.Year = year
	return out, m.analysisEr
}

func (m *mockDeps) SalaryByAgeGroup(_ context.Context) ([]types.AgeGroupSalary, error) {
	return m.byAge, m.analysisEr
}

func (m *mockDeps) CompetitionSalaryRanges(_ context.Context) ([]types.CompetitionRange, error) {
	return m.ranges, m.analysisEr
}

func (m *mockDeps) GetStats() map[string]any {
	return m.stats
}

func newMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, deps)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServerRegister(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{stats: map[string]any{"records": 3}}
		mux := newMux(deps)

		Convey("Then the health endpoint serves the metrics exposition", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint returns service stats", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/stats", nil))
			So(w.Code, ShouldEqual, http.StatusOK)

			var out map[string]any
			So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
			So(out["records"], ShouldEqual, 3)
		})

		Convey("And unknown paths fall through to 404", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/unknown", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And responses carry a request id", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/stats", nil))
			So(w.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
		})

		Convey("And a caller-supplied request id is propagated", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			req.Header.Set("X-Request-Id", "req-42")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-Id"), ShouldEqual, "req-42")
		})
	})
}

func TestPlayersEndpoints(t *testing.T) {
	record := model.Record{Name: "Iker Salaberria", Competition: model.LaLiga, Age: 24, YearlySalaryUSD: 12916800}

	Convey("Given a players handler behind the mux", t, func() {
		deps := &mockDeps{
			record: record,
			roster: map[string]model.Record{record.Name: record},
		}
		mux := newMux(deps)

		Convey("When fetching a player by name", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/players/Iker%20Salaberria", nil))

			Convey("Then the stored record is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var out model.Record
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(out.Name, ShouldEqual, record.Name)
				So(out.YearlySalaryUSD, ShouldEqual, record.YearlySalaryUSD)
			})
		})

		Convey("When the name is unknown", func() {
			deps.lookupErr = repository.ErrNotFound
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/players/Nobody", nil))

			Convey("Then the response is a distinguishable 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				var out struct {
					Code string `json:"code"`
				}
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(out.Code, ShouldEqual, "not_found")
			})
		})

		Convey("When filtering a roster by competition", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/players?competition=La%20Liga", nil))

			Convey("Then the roster map is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var out map[string]model.Record
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(len(out), ShouldEqual, 1)
			})
		})

		Convey("When the competition parameter is missing", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/players", nil))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using a non-GET method", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("POST", "/players/Someone", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestAnalysisEndpoints(t *testing.T) {
	Convey("Given canned analysis results", t, func() {
		deps := &mockDeps{
			comps: []types.CompetitionSummary{
				{Competition: "X", Count: 2, TotalSalary: 400, AvgSalary: 200, AvgAge: 27},
				{Competition: "Y", Count: 1, TotalSalary: 50, AvgSalary: 50, AvgAge: 27},
			},
			dist:      types.Distribution{Mean: 25, Median: 20, Min: 10, Max: 40, StdDev: 11.18},
			ages:      []types.AgeBand{{Bucket: "20-24", Count: 3}},
			contracts: types.ContractSummary{ExpiringThisYear: 1, AvgYearsRemaining: 1, TotalFutureLiability: 650},
			byAge:     []types.AgeGroupSalary{{Bucket: "20-24", Count: 3, Avg: 100, Total: 300}},
			ranges:    []types.CompetitionRange{{Competition: "X", Min: 100, Max: 300, Avg: 200, Total: 400}},
		}
		mux := newMux(deps)

		Convey("When fetching competition stats", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/analysis/competitions", nil))

			Convey("Then summaries arrive in first-occurrence order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var out []types.CompetitionSummary
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(len(out), ShouldEqual, 2)
				So(out[0].Competition, ShouldEqual, "X")
				So(out[0].AvgSalary, ShouldEqual, 200)
			})
		})

		Convey("When fetching the salary distribution", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/analysis/salary-distribution", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			var out types.Distribution
			So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
			So(out.Median, ShouldEqual, 20)
		})

		Convey("When fetching contract status with an explicit year", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/analysis/contracts?year=2026", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			var out types.ContractSummary
			So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
			So(out.Year, ShouldEqual, 2026)
			So(out.ExpiringThisYear, ShouldEqual, 1)
		})

		Convey("When the year parameter is malformed", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/analysis/contracts?year=soon", nil))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When fetching the remaining grouped analyses", func() {
			for _, path := range []string{
				"/analysis/age-distribution",
				"/analysis/salary-by-age",
				"/analysis/salary-ranges",
			} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
				So(w.Code, ShouldEqual, http.StatusOK)
			}
		})

		Convey("When the catalog is empty", func() {
			deps.analysisEr = service.ErrEmptyCatalog
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/analysis/competitions", nil))

			Convey("Then the failure is explicit, not an empty result", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var out struct {
					Code string `json:"code"`
				}
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(out.Code, ShouldEqual, "empty_catalog")
			})
		})

		Convey("When the service is not started", func() {
			deps.analysisEr = service.ErrNotStarted
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", "/analysis/salary-distribution", nil))
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}
