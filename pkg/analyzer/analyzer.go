package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/czemtsop/data-jobs/internal/models"
	"github.com/czemtsop/data-jobs/pkg/utils"
)

// Analyzer produces summary statistics over a combined job dataset.
type Analyzer struct {
	config *Config
}

// Config holds analyzer configuration
type Config struct {
	TopKeywords     int
	AnalyzeSalaries bool
	AnalyzeKeywords bool
	AnalyzeJobTypes bool
}

// New creates an Analyzer with default configuration
func New() *Analyzer {
	return &Analyzer{
		config: &Config{
			TopKeywords:     20,
			AnalyzeSalaries: true,
			AnalyzeKeywords: true,
			AnalyzeJobTypes: true,
		},
	}
}

// NewWithConfig creates an Analyzer with custom configuration
func NewWithConfig(config *Config) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze computes the full report for a dataset. An empty dataset yields a
// report with zeroed stats, never an error.
func (a *Analyzer) Analyze(jobs []models.Job) (*models.AnalysisReport, error) {
	report := &models.AnalysisReport{
		GeneratedAt: time.Now(),
		Stats:       a.summaryStats(jobs),
	}

	if a.config.AnalyzeKeywords {
		report.TopKeywords = a.topKeywords(jobs, a.config.TopKeywords)
	}
	if a.config.AnalyzeSalaries {
		report.SalaryByLocation = a.salaryByLocation(jobs)
	}
	if a.config.AnalyzeJobTypes {
		report.JobTypes = countField(jobs, func(j models.Job) string { return j.JobType })
		report.JobLevels = countField(jobs, func(j models.Job) string { return j.JobLevel })
	}

	return report, nil
}

func (a *Analyzer) summaryStats(jobs []models.Job) models.SummaryStats {
	stats := models.SummaryStats{
		TotalJobs:    len(jobs),
		JobsBySource: make(map[string]int),
	}

	companies := make(map[string]bool)
	locations := make(map[string]bool)

	for _, j := range jobs {
		if c := strings.TrimSpace(j.Company); c != "" {
			companies[strings.ToLower(c)] = true
		}
		if l := strings.TrimSpace(j.Location); l != "" {
			locations[strings.ToLower(l)] = true
		}
		if j.HasSalary() {
			stats.JobsWithSalary++
		}
		if j.Source != "" {
			stats.JobsBySource[j.Source]++
		}
		if !j.PostedAt.IsZero() {
			if stats.EarliestPosted.IsZero() || j.PostedAt.Before(stats.EarliestPosted) {
				stats.EarliestPosted = j.PostedAt
			}
			if j.PostedAt.After(stats.LatestPosted) {
				stats.LatestPosted = j.PostedAt
			}
		}
	}

	stats.UniqueCompanies = len(companies)
	stats.UniqueLocations = len(locations)
	if stats.TotalJobs > 0 {
		stats.SalaryCoverage = float64(stats.JobsWithSalary) / float64(stats.TotalJobs) * 100
	}

	return stats
}

// topKeywords extracts the most frequent stop-word-filtered terms across
// all descriptions. This is the tabular form of a skills word cloud.
func (a *Analyzer) topKeywords(jobs []models.Job, limit int) []models.KeywordCount {
	var b strings.Builder
	for _, j := range jobs {
		b.WriteString(j.Description)
		b.WriteString(" ")
		b.WriteString(j.Tags)
		b.WriteString(" ")
	}

	freqs := utils.KeywordFrequencies(b.String())
	top := utils.TopKeywords(freqs, limit)

	out := make([]models.KeywordCount, 0, len(top))
	for _, kw := range top {
		out = append(out, models.KeywordCount{Keyword: kw, Count: freqs[kw]})
	}
	return out
}

// salaryByLocation averages salary ranges per location, highest maximum
// first. Rows without both salary figures or a location are excluded.
func (a *Analyzer) salaryByLocation(jobs []models.Job) []models.LocationSalary {
	type acc struct {
		minSum, maxSum float64
		count          int
		label          string
	}
	grouped := make(map[string]*acc)

	for _, j := range jobs {
		loc := strings.TrimSpace(j.Location)
		if loc == "" || !j.HasSalary() {
			continue
		}
		key := strings.ToLower(loc)
		g, ok := grouped[key]
		if !ok {
			g = &acc{label: loc}
			grouped[key] = g
		}
		g.minSum += j.SalaryMin
		g.maxSum += j.SalaryMax
		g.count++
	}

	out := make([]models.LocationSalary, 0, len(grouped))
	for _, g := range grouped {
		out = append(out, models.LocationSalary{
			Location: g.label,
			AvgMin:   g.minSum / float64(g.count),
			AvgMax:   g.maxSum / float64(g.count),
			JobCount: g.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgMax == out[j].AvgMax {
			return out[i].Location < out[j].Location
		}
		return out[i].AvgMax > out[j].AvgMax
	})
	return out
}

func countField(jobs []models.Job, field func(models.Job) string) map[string]int {
	counts := make(map[string]int)
	for _, j := range jobs {
		v := strings.TrimSpace(field(j))
		if v == "" {
			continue
		}
		counts[v]++
	}
	return counts
}
