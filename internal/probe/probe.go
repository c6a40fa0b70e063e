// Package probe checks a running rosterpay instance from the outside,
// verifying cross-endpoint invariants that unit tests cannot see.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/rosterpay/rosterpay/internal/domain/model"
	"github.com/rosterpay/rosterpay/internal/domain/types"
	"github.com/rosterpay/rosterpay/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Tolerance when re-deriving totals from count*avg.
const floatTolerance = 1e-6

// Config controls one probe run.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Runner executes the probe checks against one instance.
type Runner struct {
	cfg    Config
	client *http.Client
	runID  string
	log    logger.Logger
}

// NewRunner creates a probe runner.
func NewRunner(cfg Config, log logger.Logger) *Runner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Runner{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		runID:  uuid.NewString(),
		log:    log,
	}
}

// Run executes every check and returns the first failure.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info(ctx, "probe starting",
		logger.String("run_id", r.runID),
		logger.String("base_url", r.cfg.BaseURL),
	)

	var stats map[string]any
	if err := r.fetch(ctx, "/stats", &stats); err != nil {
		return err
	}
	records, ok := stats["records"].(float64)
	if !ok || records <= 0 {
		return fmt.Errorf("stats reports no records: %v", stats["records"])
	}
	total := int(records)

	var ages []types.AgeBand
	if err := r.fetch(ctx, "/analysis/age-distribution", &ages); err != nil {
		return err
	}
	if err := CheckAgeBandTotal(ages, total); err != nil {
		return err
	}

	var comps []types.CompetitionSummary
	if err := r.fetch(ctx, "/analysis/competitions", &comps); err != nil {
		return err
	}
	if err := CheckCompetitionTotals(comps, total); err != nil {
		return err
	}

	var first, second types.Distribution
	if err := r.fetch(ctx, "/analysis/salary-distribution", &first); err != nil {
		return err
	}
	if err := r.fetch(ctx, "/analysis/salary-distribution", &second); err != nil {
		return err
	}
	if first != second {
		return fmt.Errorf("salary distribution not idempotent: %+v vs %+v", first, second)
	}

	// Round-trip one roster: the filtered count must match the
	// competition summary, and every listed name must resolve.
	if len(comps) > 0 {
		comp := comps[0]
		var roster map[string]model.Record
		q := "/players?competition=" + url.QueryEscape(comp.Competition)
		if err := r.fetch(ctx, q, &roster); err != nil {
			return err
		}
		if len(roster) != comp.Count {
			return fmt.Errorf("roster size %d disagrees with competition count %d for %q",
				len(roster), comp.Count, comp.Competition)
		}
		for name := range roster {
			var rec model.Record
			if err := r.fetch(ctx, "/players/"+url.PathEscape(name), &rec); err != nil {
				return err
			}
			if rec.Name != name {
				return fmt.Errorf("lookup of %q returned record %q", name, rec.Name)
			}
			break // one lookup proves the path
		}
	}

	r.log.Info(ctx, "probe passed",
		logger.String("run_id", r.runID),
		logger.Int("records", total),
	)
	return nil
}

// CheckAgeBandTotal verifies that age bucket counts sum to the catalog
// size: buckets are disjoint and their union is the whole catalog.
func CheckAgeBandTotal(bands []types.AgeBand, total int) error {
	var sum int
	for _, b := range bands {
		sum += b.Count
	}
	if sum != total {
		return fmt.Errorf("age buckets sum to %d, catalog holds %d", sum, total)
	}
	return nil
}

// CheckCompetitionTotals verifies that competition counts sum to the
// catalog size and each total is consistent with count*avg.
func CheckCompetitionTotals(comps []types.CompetitionSummary, total int) error {
	var sum int
	for _, c := range comps {
		sum += c.Count
		if derived := c.AvgSalary * float64(c.Count); math.Abs(derived-c.TotalSalary) > floatTolerance*math.Max(1, c.TotalSalary) {
			return fmt.Errorf("competition %q: count*avg %.2f disagrees with total %.2f",
				c.Competition, derived, c.TotalSalary)
		}
	}
	if sum != total {
		return fmt.Errorf("competition counts sum to %d, catalog holds %d", sum, total)
	}
	return nil
}

func (r *Runner) fetch(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("X-Request-Id", r.runID)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
