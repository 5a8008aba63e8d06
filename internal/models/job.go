package models

import "time"

// Job represents a single normalized job posting. Every adapter maps its
// source's response into this schema; the URL is the natural key used for
// deduplication across sources.
type Job struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Company      string    `json:"company"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	PostedAt     time.Time `json:"posted_at"`
	SalaryMin    float64   `json:"salary_min"`
	SalaryMax    float64   `json:"salary_max"`
	Currency     string    `json:"currency"`
	SalaryPeriod string    `json:"salary_period"`
	Industry     string    `json:"industry"`
	JobType      string    `json:"job_type"`
	JobLevel     string    `json:"job_level"`
	Tags         string    `json:"tags"`
	Source       string    `json:"source"`
}

// HasSalary reports whether the posting carries a usable salary range.
func (j Job) HasSalary() bool {
	return j.SalaryMin > 0 && j.SalaryMax > 0
}

// OutcomeStatus describes how the coordinator handled one source.
type OutcomeStatus string

const (
	StatusFetched  OutcomeStatus = "fetched"
	StatusEmpty    OutcomeStatus = "empty"
	StatusDisabled OutcomeStatus = "disabled"
	StatusUnknown  OutcomeStatus = "unknown"
	StatusError    OutcomeStatus = "error"
)

// SourceOutcome records the per-source result of a coordinator run, so
// callers do not have to scrape log output to learn what happened.
type SourceOutcome struct {
	Source string        `json:"source"`
	Status OutcomeStatus `json:"status"`
	Jobs   int           `json:"jobs"`
	Err    string        `json:"error,omitempty"`
}

// LocationSalary is one row of the salary-by-location aggregation.
type LocationSalary struct {
	Location string  `json:"location"`
	AvgMin   float64 `json:"avg_min"`
	AvgMax   float64 `json:"avg_max"`
	JobCount int     `json:"job_count"`
}

// KeywordCount is one entry of the description keyword frequency table.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// SummaryStats holds headline numbers for a combined dataset.
type SummaryStats struct {
	TotalJobs       int            `json:"total_jobs"`
	UniqueCompanies int            `json:"unique_companies"`
	UniqueLocations int            `json:"unique_locations"`
	JobsWithSalary  int            `json:"jobs_with_salary"`
	SalaryCoverage  float64        `json:"salary_coverage"`
	EarliestPosted  time.Time      `json:"earliest_posted"`
	LatestPosted    time.Time      `json:"latest_posted"`
	JobsBySource    map[string]int `json:"jobs_by_source"`
}

// AnalysisReport is the full output of the analyzer, consumed by the
// reporter and the CLI.
type AnalysisReport struct {
	GeneratedAt      time.Time        `json:"generated_at"`
	Stats            SummaryStats     `json:"stats"`
	TopKeywords      []KeywordCount   `json:"top_keywords"`
	SalaryByLocation []LocationSalary `json:"salary_by_location"`
	JobTypes         map[string]int   `json:"job_types"`
	JobLevels        map[string]int   `json:"job_levels"`
}
