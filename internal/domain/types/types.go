// Package types contains query result shapes shared between the app
// service and the HTTP layer.
package types

// CompetitionSummary aggregates one competition's roster.
type CompetitionSummary struct {
	Competition string  `json:"competition"`
	Count       int     `json:"count"`
	TotalSalary float64 `json:"total_salary"`
	AvgSalary   float64 `json:"avg_salary"`
	AvgAge      float64 `json:"avg_age"`
}

// Distribution describes the spread of yearly salaries across the
// whole catalog. Median is the lower-middle element for even counts.
type Distribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// AgeBand is a five-year age bucket and its headcount.
type AgeBand struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// ContractSummary reports contract expiry exposure for a given year.
type ContractSummary struct {
	Year                 int     `json:"year"`
	ExpiringThisYear     int     `json:"expiring_this_year"`
	AvgYearsRemaining    float64 `json:"avg_years_remaining"`
	TotalFutureLiability float64 `json:"total_future_liability"`
}

// AgeGroupSalary aggregates salaries inside one age bucket.
type AgeGroupSalary struct {
	Bucket string  `json:"bucket"`
	Count  int     `json:"count"`
	Avg    float64 `json:"avg"`
	Total  float64 `json:"total"`
}

// CompetitionRange reports the salary envelope of one competition.
type CompetitionRange struct {
	Competition string  `json:"competition"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Avg         float64 `json:"avg"`
	Total       float64 `json:"total"`
}
