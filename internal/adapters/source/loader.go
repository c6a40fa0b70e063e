// Package source bulk-loads the salary dataset into record form.
//
// The dataset ships embedded in the binary; a config-provided path can
// substitute an external YAML file with the same layout. Loading is an
// all-or-nothing operation: one malformed record fails the whole load.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/rosterpay/rosterpay/internal/domain/model"
)

const dateLayout = "2006-01-02"

// recordSpec is the YAML-facing shape of one dataset row. The YAML
// parser resolves bare ISO dates to time.Time; quoted ones arrive as
// strings and go through the decode hook.
type recordSpec struct {
	Name                string    `koanf:"name"`
	Nationality         string    `koanf:"nationality"`
	Club                string    `koanf:"club"`
	Competition         string    `koanf:"competition"`
	Age                 int       `koanf:"age"`
	WeeklySalaryPrimary float64   `koanf:"weekly_salary_primary"`
	WeeklySalaryUSD     float64   `koanf:"weekly_salary_usd"`
	YearlySalaryUSD     float64   `koanf:"yearly_salary_usd"`
	YearlySalaryPrimary float64   `koanf:"yearly_salary_primary"`
	YearlyBonusPrimary  float64   `koanf:"yearly_bonus_primary"`
	PerMinuteUSD        float64   `koanf:"per_minute_usd"`
	GrossRemainingUSD   float64   `koanf:"gross_remaining_usd"`
	YearsRemaining      int       `koanf:"years_remaining"`
	SignedDate          time.Time `koanf:"signed_date"`
	ExpirationDate      time.Time `koanf:"expiration_date"`
}

type dataset struct {
	Players []recordSpec `koanf:"players"`
}

// Loader reads and validates the dataset.
type Loader struct {
	path string
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithPath loads the dataset from an external YAML file instead of the
// embedded one.
func WithPath(path string) Option {
	return func(l *Loader) {
		l.path = path
	}
}

// NewLoader creates a Loader over the embedded dataset unless an option
// points elsewhere.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses, converts and validates every record. Any failure aborts
// the load with ErrLoad wrapping the cause; partial catalogs are never
// returned.
func (l *Loader) Load(_ context.Context) ([]model.Record, error) {
	k := koanf.New(".")

	if l.path != "" {
		if err := k.Load(file.Provider(l.path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoad, l.path, err)
		}
	} else {
		if err := k.Load(rawbytes.Provider(embeddedDataset), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: parse embedded dataset: %w", ErrLoad, err)
		}
	}

	var ds dataset
	if err := k.UnmarshalWithConf("", &ds, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeHookFunc(dateLayout),
			Result:           &ds,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: decode dataset: %w", ErrLoad, err)
	}
	if len(ds.Players) == 0 {
		return nil, fmt.Errorf("%w: dataset holds no players", ErrLoad)
	}

	records := make([]model.Record, 0, len(ds.Players))
	for _, spec := range ds.Players {
		r := spec.toRecord()
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func (s recordSpec) toRecord() model.Record {
	return model.Record{
		Name:                s.Name,
		Nationality:         s.Nationality,
		Club:                s.Club,
		Competition:         s.Competition,
		Age:                 s.Age,
		WeeklySalaryPrimary: s.WeeklySalaryPrimary,
		WeeklySalaryUSD:     s.WeeklySalaryUSD,
		YearlySalaryUSD:     s.YearlySalaryUSD,
		YearlySalaryPrimary: s.YearlySalaryPrimary,
		YearlyBonusPrimary:  s.YearlyBonusPrimary,
		PerMinuteUSD:        s.PerMinuteUSD,
		GrossRemainingUSD:   s.GrossRemainingUSD,
		YearsRemaining:      s.YearsRemaining,
		SignedDate:          s.SignedDate,
		ExpirationDate:      s.ExpirationDate,
	}
}
