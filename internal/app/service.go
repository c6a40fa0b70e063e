// Package service provides the core business service composing the
// catalog, grouper and aggregator into the named analyses consumed by
// the HTTP API.
package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rosterpay/rosterpay/internal/adapters/repository"
	"github.com/rosterpay/rosterpay/internal/adapters/source"
	"github.com/rosterpay/rosterpay/internal/domain/grouping"
	"github.com/rosterpay/rosterpay/internal/domain/model"
	"github.com/rosterpay/rosterpay/internal/domain/stats"
	"github.com/rosterpay/rosterpay/internal/domain/types"
	"github.com/rosterpay/rosterpay/pkg/logger"
	"github.com/rosterpay/rosterpay/pkg/metrics"
)

// Service owns the catalog and implements the query layer. The catalog
// is constructed exactly once in Start and read-only afterwards, so all
// query methods are safe for concurrent callers.
type Service struct {
	mu sync.Mutex

	catalog repository.Catalog
	loader  *source.Loader

	datasetPath string
	started     bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath loads the catalog from an external dataset file
// instead of the embedded one.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithCatalog injects a pre-built catalog, skipping the bulk load.
// Intended for tests.
func WithCatalog(c repository.Catalog) Option {
	return func(s *Service) {
		s.catalog = c
	}
}

// New constructs a Service. Start must be called before any query.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs the single bulk load and builds the catalog. It is
// idempotent: concurrent or repeated calls load at most once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.catalog == nil {
		if s.loader == nil {
			var opts []source.Option
			if s.datasetPath != "" {
				opts = append(opts, source.WithPath(s.datasetPath))
			}
			s.loader = source.NewLoader(opts...)
		}

		start := time.Now()
		records, err := s.loader.Load(ctx)
		if err != nil {
			metrics.RecordCatalogLoadError()
			return fmt.Errorf("bulk load: %w", err)
		}
		catalog, err := repository.NewMemStore(ctx, records)
		if err != nil {
			metrics.RecordCatalogLoadError()
			return fmt.Errorf("build catalog: %w", err)
		}
		s.catalog = catalog
		metrics.RecordCatalogLoad(float64(time.Since(start).Milliseconds()))
	}

	s.started = true
	metrics.UpdateCatalogRecords(s.catalog.Count(ctx))
	s.logger.Info(ctx, "catalog ready", logger.Int("records", s.catalog.Count(ctx)))
	return nil
}

// Stop marks the service stopped. The catalog holds no external
// resources, so there is nothing to release.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// Lookup returns the record stored under name.
func (s *Service) Lookup(ctx context.Context, name string) (model.Record, error) {
	if err := s.ready(); err != nil {
		return model.Record{}, err
	}
	r, err := s.catalog.Get(ctx, name)
	if err != nil {
		metrics.RecordLookupMiss()
		return model.Record{}, err
	}
	return r, nil
}

// FilterByCompetition returns the roster of one competition keyed by name.
func (s *Service) FilterByCompetition(ctx context.Context, competition string) (map[string]model.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.catalog.FilterByCompetition(ctx, competition), nil
}

// CompetitionStats aggregates count, total and average salary, and
// average age per competition, in first-occurrence order.
func (s *Service) CompetitionStats(ctx context.Context) ([]types.CompetitionSummary, error) {
	const analysis = "competitions"
	records, err := s.records(ctx, analysis)
	if err != nil {
		return nil, err
	}
	defer s.observe(analysis)()

	groups := grouping.GroupBy(slices.Values(records), grouping.CompetitionKey)
	out := make([]types.CompetitionSummary, 0, groups.Len())
	for key, bucket := range groups.All() {
		salary := stats.Extract(bucket, yearlySalary)
		summary, err := stats.Describe(salary)
		if err != nil {
			return nil, s.fail(analysis, err)
		}
		avgAge, err := stats.AverageField(bucket, func(r model.Record) float64 { return float64(r.Age) })
		if err != nil {
			return nil, s.fail(analysis, err)
		}
		out = append(out, types.CompetitionSummary{
			Competition: key,
			Count:       summary.Count,
			TotalSalary: summary.Sum,
			AvgSalary:   summary.Mean,
			AvgAge:      avgAge,
		})
	}
	return out, nil
}

// SalaryDistribution describes the spread of yearly USD salaries over
// the whole catalog.
func (s *Service) SalaryDistribution(ctx context.Context) (types.Distribution, error) {
	const analysis = "salary_distribution"
	records, err := s.records(ctx, analysis)
	if err != nil {
		return types.Distribution{}, err
	}
	defer s.observe(analysis)()

	salaries := stats.Extract(records, yearlySalary)
	summary, err := stats.Describe(salaries)
	if err != nil {
		return types.Distribution{}, s.fail(analysis, err)
	}
	median, err := stats.Median(salaries)
	if err != nil {
		return types.Distribution{}, s.fail(analysis, err)
	}
	return types.Distribution{
		Mean:   summary.Mean,
		Median: median,
		Min:    summary.Min,
		Max:    summary.Max,
		StdDev: summary.StdDev,
	}, nil
}

// AgeDistribution counts records per five-year age bucket.
func (s *Service) AgeDistribution(ctx context.Context) ([]types.AgeBand, error) {
	const analysis = "age_distribution"
	records, err := s.records(ctx, analysis)
	if err != nil {
		return nil, err
	}
	defer s.observe(analysis)()

	groups := grouping.GroupBy(slices.Values(records), grouping.AgeBucketKey)
	out := make([]types.AgeBand, 0, groups.Len())
	for key, bucket := range groups.All() {
		out = append(out, types.AgeBand{Bucket: key, Count: len(bucket)})
	}
	return out, nil
}

// ContractStatus reports expiry exposure for the given year. The year
// is an explicit input so the analysis stays deterministic; resolving
// "now" is the caller's concern.
func (s *Service) ContractStatus(ctx context.Context, currentYear int) (types.ContractSummary, error) {
	const analysis = "contracts"
	records, err := s.records(ctx, analysis)
	if err != nil {
		return types.ContractSummary{}, err
	}
	defer s.observe(analysis)()

	var expiring int
	for _, r := range records {
		if r.YearsRemaining == 0 {
			expiring++
		}
	}
	avgYears, err := stats.AverageField(records, func(r model.Record) float64 { return float64(r.YearsRemaining) })
	if err != nil {
		return types.ContractSummary{}, s.fail(analysis, err)
	}
	return types.ContractSummary{
		Year:                 currentYear,
		ExpiringThisYear:     expiring,
		AvgYearsRemaining:    avgYears,
		TotalFutureLiability: stats.SumField(records, func(r model.Record) float64 { return r.GrossRemainingUSD }),
	}, nil
}

// SalaryByAgeGroup aggregates salaries per five-year age bucket.
func (s *Service) SalaryByAgeGroup(ctx context.Context) ([]types.AgeGroupSalary, error) {
	const analysis = "salary_by_age"
	records, err := s.records(ctx, analysis)
	if err != nil {
		return nil, err
	}
	defer s.observe(analysis)()

	groups := grouping.GroupBy(slices.Values(records), grouping.AgeBucketKey)
	out := make([]types.AgeGroupSalary, 0, groups.Len())
	for key, bucket := range groups.All() {
		summary, err := stats.Describe(stats.Extract(bucket, yearlySalary))
		if err != nil {
			return nil, s.fail(analysis, err)
		}
		out = append(out, types.AgeGroupSalary{
			Bucket: key,
			Count:  summary.Count,
			Avg:    summary.Mean,
			Total:  summary.Sum,
		})
	}
	return out, nil
}

// CompetitionSalaryRanges reports the salary envelope per competition.
func (s *Service) CompetitionSalaryRanges(ctx context.Context) ([]types.CompetitionRange, error) {
	const analysis = "salary_ranges"
	records, err := s.records(ctx, analysis)
	if err != nil {
		return nil, err
	}
	defer s.observe(analysis)()

	groups := grouping.GroupBy(slices.Values(records), grouping.CompetitionKey)
	out := make([]types.CompetitionRange, 0, groups.Len())
	for key, bucket := range groups.All() {
		summary, err := stats.Describe(stats.Extract(bucket, yearlySalary))
		if err != nil {
			return nil, s.fail(analysis, err)
		}
		out = append(out, types.CompetitionRange{
			Competition: key,
			Min:         summary.Min,
			Max:         summary.Max,
			Avg:         summary.Mean,
			Total:       summary.Sum,
		})
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.Lock()
	started := s.started
	catalog := s.catalog
	s.mu.Unlock()

	out := map[string]any{
		"started": started,
	}
	if catalog != nil {
		out["records"] = catalog.Count(context.Background())
		out["competitions"] = len(model.Competitions())
	}
	return out
}

// records collects the full catalog for an analysis, rejecting the
// empty catalog with ErrEmptyCatalog carrying the aggregator's
// empty-input kind.
func (s *Service) records(_ context.Context, analysis string) ([]model.Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	records := slices.Collect(s.catalog.All())
	if len(records) == 0 {
		return nil, s.fail(analysis, fmt.Errorf("%w: %w", ErrEmptyCatalog, stats.ErrEmptyInput))
	}
	return records, nil
}

func (s *Service) ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.catalog == nil {
		return ErrNotStarted
	}
	return nil
}

// observe returns a closure recording the analysis duration when the
// analysis completes.
func (s *Service) observe(analysis string) func() {
	start := time.Now()
	return func() {
		metrics.RecordAnalysis(analysis, float64(time.Since(start).Microseconds())/1000.0)
	}
}

func (s *Service) fail(analysis string, err error) error {
	metrics.RecordAnalysisError(analysis)
	return err
}

func yearlySalary(r model.Record) float64 {
	return r.YearlySalaryUSD
}
