package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/czemtsop/data-jobs/internal/config"
	"github.com/czemtsop/data-jobs/internal/models"
	"github.com/czemtsop/data-jobs/pkg/extractor"
)

const defaultJobicyURL = "https://jobicy.com/api/v2/remote-jobs"

// Jobicy scrapes the Jobicy remote-jobs API. The API filters server-side by
// a single tag, so the adapter issues one request per configured keyword
// and consolidates the responses.
type Jobicy struct {
	name   string
	apiURL string
	client *client
	ex     *extractor.Extractor
}

// NewJobicy constructs the Jobicy adapter.
func NewJobicy(name string, cfg config.SourceConfig) (Scraper, error) {
	apiURL := cfg.URL
	if apiURL == "" {
		apiURL = defaultJobicyURL
	}
	return &Jobicy{
		name:   name,
		apiURL: apiURL,
		client: newClient(cfg),
		ex:     extractor.New(),
	}, nil
}

func (j *Jobicy) Name() string { return j.name }

type jobicyResponse struct {
	FriendlyNotice string      `json:"friendlyNotice"`
	JobCount       int         `json:"jobCount"`
	Jobs           []jobicyJob `json:"jobs"`
}

type jobicyJob struct {
	ID             json.Number `json:"id"`
	URL            string      `json:"url"`
	JobTitle       string      `json:"jobTitle"`
	CompanyName    string      `json:"companyName"`
	JobIndustry    []string    `json:"jobIndustry"`
	JobType        []string    `json:"jobType"`
	JobGeo         string      `json:"jobGeo"`
	JobLevel       string      `json:"jobLevel"`
	JobDescription string      `json:"jobDescription"`
	PubDate        string      `json:"pubDate"`
	SalaryMin      float64     `json:"salaryMin"`
	SalaryMax      float64     `json:"salaryMax"`
	SalaryCurrency string      `json:"salaryCurrency"`
	SalaryPeriod   string      `json:"salaryPeriod"`
}

// ScrapeJobs fetches postings per keyword and returns the consolidated,
// per-source-deduplicated result. Zero matches across all keywords is not
// an error.
func (j *Jobicy) ScrapeJobs(ctx context.Context, filters config.Filters) ([]models.Job, error) {
	keywords := filters.Keywords
	if len(keywords) == 0 {
		// no keyword constraint: a single untagged request returns the feed
		keywords = []string{""}
	}

	var raw []jobicyJob
	for _, keyword := range keywords {
		resp, err := j.fetchTag(ctx, keyword)
		if err != nil {
			return nil, err
		}
		raw = append(raw, resp.Jobs...)
	}

	// The same posting can match several tags; collapse by source job id.
	seen := make(map[string]bool, len(raw))
	jobs := make([]models.Job, 0, len(raw))
	for _, rj := range raw {
		id := rj.ID.String()
		if id != "" && seen[id] {
			continue
		}
		seen[id] = true

		level := rj.JobLevel
		if level == "Any" {
			level = ""
		}

		jobs = append(jobs, models.Job{
			ID:           id,
			URL:          rj.URL,
			Company:      rj.CompanyName,
			Title:        rj.JobTitle,
			Description:  j.ex.CleanDescription(rj.JobDescription),
			Location:     rj.JobGeo,
			PostedAt:     j.ex.ParseDate(rj.PubDate),
			SalaryMin:    rj.SalaryMin,
			SalaryMax:    rj.SalaryMax,
			Currency:     rj.SalaryCurrency,
			SalaryPeriod: rj.SalaryPeriod,
			Industry:     j.ex.JoinList(rj.JobIndustry),
			JobType:      j.ex.JoinList(rj.JobType),
			JobLevel:     level,
			Source:       "Jobicy",
		})
	}

	// The keyword criterion was applied server-side via the tag parameter;
	// only the remaining categories are checked here.
	rest := filters
	rest.Keywords = nil
	return applyFilters(jobs, rest), nil
}

func (j *Jobicy) fetchTag(ctx context.Context, keyword string) (*jobicyResponse, error) {
	reqURL := j.apiURL
	if keyword != "" {
		reqURL = fmt.Sprintf("%s?tag=%s", j.apiURL, url.QueryEscape(keyword))
	}

	var resp jobicyResponse
	if err := j.client.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
