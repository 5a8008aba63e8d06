package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czemtsop/data-jobs/internal/config"
)

const remoteOKFeed = `[
  {"legal": "API terms of use: ..."},
  {
    "id": "101",
    "url": "https://remoteok.com/jobs/101",
    "company": "Acme",
    "position": "Senior Data Engineer",
    "tags": ["python", "sql"],
    "location": "Worldwide",
    "description": "<p>Build pipelines.</p>Please mention the word BANANA when applying.",
    "salary_min": 90000,
    "salary_max": 130000,
    "epoch": 1714521600
  },
  {
    "id": "102",
    "url": "https://remoteok.com/jobs/102",
    "company": "Globex",
    "position": "Frontend Developer",
    "tags": ["react"],
    "location": "Europe",
    "description": "<p>Ship UI.</p>",
    "epoch": 1714521600
  },
  {
    "id": "103",
    "url": "",
    "company": "NoLink",
    "position": "Data Analyst",
    "tags": ["data"],
    "location": "Worldwide",
    "description": "record without a url"
  }
]`

func TestRemoteOKScrapeJobs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(remoteOKFeed))
	}))
	defer server.Close()

	s, err := NewRemoteOK("remoteok", config.SourceConfig{URL: server.URL})
	require.NoError(t, err)

	filters := config.Filters{Keywords: []string{"data"}}
	jobs, err := s.ScrapeJobs(context.Background(), filters)
	require.NoError(t, err)

	// The legal-notice header is skipped, the frontend job fails the
	// keyword filter, and the record without a url is dropped.
	require.Len(t, jobs, 1)

	j := jobs[0]
	assert.Equal(t, "101", j.ID)
	assert.Equal(t, "https://remoteok.com/jobs/101", j.URL)
	assert.Equal(t, "Acme", j.Company)
	assert.Equal(t, "Senior Data Engineer", j.Title)
	assert.Equal(t, "python, sql", j.Tags)
	assert.Equal(t, "Remote OK", j.Source)
	assert.Equal(t, float64(90000), j.SalaryMin)
	assert.Equal(t, float64(130000), j.SalaryMax)
	assert.Equal(t, 2024, j.PostedAt.Year())

	// HTML and the robot-check suffix are stripped
	assert.Equal(t, "Build pipelines.", j.Description)
}

func TestRemoteOKEmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"legal": "API terms of use: ..."}]`))
	}))
	defer server.Close()

	s, err := NewRemoteOK("remoteok", config.SourceConfig{URL: server.URL})
	require.NoError(t, err)

	jobs, err := s.ScrapeJobs(context.Background(), config.Filters{})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestRemoteOKServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s, err := NewRemoteOK("remoteok", config.SourceConfig{URL: server.URL})
	require.NoError(t, err)

	_, err = s.ScrapeJobs(context.Background(), config.Filters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestRemoteOKMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	s, err := NewRemoteOK("remoteok", config.SourceConfig{URL: server.URL})
	require.NoError(t, err)

	_, err = s.ScrapeJobs(context.Background(), config.Filters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
