// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Competition names recognized by the catalog. The dataset is scoped to
// these eight leagues.
const (
	PremierLeague = "Premier League"
	LaLiga        = "La Liga"
	SerieA        = "Serie A"
	Bundesliga    = "Bundesliga"
	LigueUn       = "Ligue 1"
	Eredivisie    = "Eredivisie"
	PrimeiraLiga  = "Primeira Liga"
	MLS           = "MLS"
)

// Competitions lists every recognized competition.
func Competitions() []string {
	return []string{
		PremierLeague, LaLiga, SerieA, Bundesliga,
		LigueUn, Eredivisie, PrimeiraLiga, MLS,
	}
}

// Contract date bounds for the current dataset generation.
var (
	earliestContractDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	latestContractDate   = time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Record is one athlete's immutable salary entry. Instances are
// validated once, at bulk load, and never mutated afterwards.
type Record struct {
	Name        string `json:"name" validate:"required"`
	Nationality string `json:"nationality"`
	Club        string `json:"club"`
	Competition string `json:"competition" validate:"required,oneof='Premier League' 'La Liga' 'Serie A' 'Bundesliga' 'Ligue 1' 'Eredivisie' 'Primeira Liga' 'MLS'"`
	Age         int    `json:"age" validate:"gte=15,lte=44"`

	WeeklySalaryPrimary float64 `json:"weekly_salary_primary" validate:"gte=0"`
	WeeklySalaryUSD     float64 `json:"weekly_salary_usd" validate:"gte=0"`
	YearlySalaryUSD     float64 `json:"yearly_salary_usd" validate:"gte=0"`
	YearlySalaryPrimary float64 `json:"yearly_salary_primary" validate:"gte=0"`
	YearlyBonusPrimary  float64 `json:"yearly_bonus_primary" validate:"gte=0"`
	PerMinuteUSD        float64 `json:"per_minute_usd" validate:"gte=0"`
	GrossRemainingUSD   float64 `json:"gross_remaining_usd" validate:"gte=0"`

	YearsRemaining int `json:"years_remaining" validate:"gte=0,lte=7"`

	SignedDate     time.Time `json:"signed_date"`
	ExpirationDate time.Time `json:"expiration_date"`
}

var validate = validator.New() //nolint:gochecknoglobals // validator instances cache struct metadata

// Validate checks every field constraint. The tag-driven checks cover
// ranges and the competition enum; date ordering and bounds are
// cross-field and checked by hand.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: record %q: %w", ErrValidation, r.Name, err)
	}
	for _, d := range []struct {
		name string
		t    time.Time
	}{
		{"signed_date", r.SignedDate},
		{"expiration_date", r.ExpirationDate},
	} {
		if d.t.Before(earliestContractDate) || d.t.After(latestContractDate) {
			return fmt.Errorf("%w: record %q: %s %s outside 2020-2030", ErrValidation, r.Name, d.name, d.t.Format("2006-01-02"))
		}
	}
	if r.ExpirationDate.Before(r.SignedDate) {
		return fmt.Errorf("%w: record %q: expiration_date precedes signed_date", ErrValidation, r.Name)
	}
	return nil
}
