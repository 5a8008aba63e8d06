package scraper

import (
	"context"
	"encoding/json"

	"github.com/czemtsop/data-jobs/internal/config"
	"github.com/czemtsop/data-jobs/internal/models"
	"github.com/czemtsop/data-jobs/pkg/extractor"
)

const defaultRemoteOKURL = "https://remoteok.com/api"

// RemoteOK scrapes the RemoteOK JSON API. The feed is a single array whose
// first element is a legal-notice header rather than a posting.
type RemoteOK struct {
	name   string
	apiURL string
	client *client
	ex     *extractor.Extractor
}

// NewRemoteOK constructs the RemoteOK adapter.
func NewRemoteOK(name string, cfg config.SourceConfig) (Scraper, error) {
	apiURL := cfg.URL
	if apiURL == "" {
		apiURL = defaultRemoteOKURL
	}
	return &RemoteOK{
		name:   name,
		apiURL: apiURL,
		client: newClient(cfg),
		ex:     extractor.New(),
	}, nil
}

func (r *RemoteOK) Name() string { return r.name }

type remoteOKJob struct {
	ID          json.Number `json:"id"`
	URL         string      `json:"url"`
	Company     string      `json:"company"`
	Position    string      `json:"position"`
	Tags        []string    `json:"tags"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	SalaryMin   float64     `json:"salary_min"`
	SalaryMax   float64     `json:"salary_max"`
	Epoch       int64       `json:"epoch"`
	Legal       string      `json:"legal"`
}

// ScrapeJobs fetches the full feed and returns the postings that pass the
// shared filter criteria. An empty feed is not an error.
func (r *RemoteOK) ScrapeJobs(ctx context.Context, filters config.Filters) ([]models.Job, error) {
	var feed []remoteOKJob
	if err := r.client.getJSON(ctx, r.apiURL, &feed); err != nil {
		return nil, err
	}

	if len(feed) > 0 && feed[0].Legal != "" {
		feed = feed[1:]
	}

	jobs := make([]models.Job, 0, len(feed))
	for _, raw := range feed {
		jobs = append(jobs, models.Job{
			ID:          raw.ID.String(),
			URL:         raw.URL,
			Company:     raw.Company,
			Title:       raw.Position,
			Description: r.ex.CleanDescription(raw.Description),
			Location:    raw.Location,
			PostedAt:    r.ex.ParseEpoch(raw.Epoch),
			SalaryMin:   raw.SalaryMin,
			SalaryMax:   raw.SalaryMax,
			Tags:        r.ex.JoinList(raw.Tags),
			Source:      "Remote OK",
		})
	}

	return applyFilters(jobs, filters), nil
}
