package scraper

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/czemtsop/data-jobs/internal/config"
	"github.com/czemtsop/data-jobs/internal/models"
	"github.com/czemtsop/data-jobs/pkg/extractor"
)

const (
	defaultJoobleURL      = "https://jooble.org/api/"
	defaultJoobleMaxPages = 3
)

// Jooble scrapes the Jooble search API. Requests are POSTs with the API key
// appended to the endpoint URL; results are paginated and salary comes back
// as free text.
type Jooble struct {
	name     string
	apiURL   string
	apiKey   string
	maxPages int
	client   *client
	ex       *extractor.Extractor
}

// NewJooble constructs the Jooble adapter.
func NewJooble(name string, cfg config.SourceConfig) (Scraper, error) {
	apiURL := cfg.URL
	if apiURL == "" {
		apiURL = defaultJoobleURL
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultJoobleMaxPages
	}
	return &Jooble{
		name:     name,
		apiURL:   apiURL,
		apiKey:   cfg.APIKey,
		maxPages: maxPages,
		client:   newClient(cfg),
		ex:       extractor.New(),
	}, nil
}

func (s *Jooble) Name() string { return s.name }

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	Page     int    `json:"page"`
}

type joobleResponse struct {
	TotalCount int         `json:"totalCount"`
	Jobs       []joobleJob `json:"jobs"`
}

type joobleJob struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Location string      `json:"location"`
	Snippet  string      `json:"snippet"`
	Salary   string      `json:"salary"`
	Type     string      `json:"type"`
	Link     string      `json:"link"`
	Company  string      `json:"company"`
	Updated  string      `json:"updated"`
}

// ScrapeJobs pages through search results up to the configured bound. The
// keyword and location criteria go into the search query itself; an
// exhausted result set ends pagination early.
func (s *Jooble) ScrapeJobs(ctx context.Context, filters config.Filters) ([]models.Job, error) {
	endpoint := s.apiURL + s.apiKey

	search := joobleRequest{
		Keywords: strings.Join(filters.Keywords, " "),
	}
	if len(filters.Locations) > 0 {
		search.Location = filters.Locations[0]
	}

	var jobs []models.Job
	for page := 1; page <= s.maxPages; page++ {
		search.Page = page

		var resp joobleResponse
		if err := s.client.postJSON(ctx, endpoint, search, &resp); err != nil {
			return nil, err
		}
		if len(resp.Jobs) == 0 {
			break
		}

		for _, rj := range resp.Jobs {
			min, max, ok := s.ex.ParseSalary(rj.Salary)
			if !ok {
				min, max = 0, 0
			}
			jobs = append(jobs, models.Job{
				ID:          rj.ID.String(),
				URL:         rj.Link,
				Company:     rj.Company,
				Title:       rj.Title,
				Description: s.ex.CleanDescription(rj.Snippet),
				Location:    rj.Location,
				PostedAt:    s.ex.ParseDate(rj.Updated),
				SalaryMin:   min,
				SalaryMax:   max,
				JobType:     rj.Type,
				Source:      "Jooble",
			})
		}
	}

	// Keywords and the primary location were part of the query; apply the
	// categories the API cannot express.
	rest := filters
	rest.Keywords = nil
	return applyFilters(jobs, rest), nil
}
