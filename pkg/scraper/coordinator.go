package scraper

import (
	"context"
	"log"
	"os"

	"github.com/czemtsop/data-jobs/internal/config"
	"github.com/czemtsop/data-jobs/internal/models"
)

// Coordinator fans a fetch request out to the configured sources, one at a
// time, and merges their results into a single deduplicated dataset. A
// failing source never aborts the run; each source's fate is recorded in a
// SourceOutcome and logged.
type Coordinator struct {
	scrapers map[string]config.SourceConfig
	filters  config.Filters
	registry *Registry
	logger   *log.Logger
}

// NewCoordinator builds a coordinator over cfg's sources and filters. A nil
// registry gets the built-in adapters; a nil logger logs to stderr.
func NewCoordinator(cfg *config.Config, registry *Registry, logger *log.Logger) *Coordinator {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Coordinator{
		scrapers: cfg.Scrapers,
		filters:  cfg.Filters,
		registry: registry,
		logger:   logger,
	}
}

// FetchAllJobs collects postings from the requested sources, or from every
// enabled source when names is empty. Sources run sequentially in the given
// (or sorted-config) order; the combined result is deduplicated by URL with
// the first occurrence winning. The call never fails: total absence of data
// shows up as an empty slice, and the outcomes say why.
func (c *Coordinator) FetchAllJobs(ctx context.Context, names []string) ([]models.Job, []models.SourceOutcome) {
	if len(names) == 0 {
		names = c.EnabledScrapers()
	}
	if len(names) == 0 {
		c.logger.Printf("warning: no scrapers enabled or specified")
		return []models.Job{}, nil
	}

	c.logger.Printf("starting job collection from scrapers: %v", names)

	var all []models.Job
	outcomes := make([]models.SourceOutcome, 0, len(names))
	fetchedSources := 0

	for _, name := range names {
		sc, ok := c.scrapers[name]
		if !ok {
			c.logger.Printf("error: scraper %q not found in configuration", name)
			outcomes = append(outcomes, models.SourceOutcome{
				Source: name, Status: models.StatusUnknown, Err: "not found in configuration",
			})
			continue
		}
		if !sc.Enabled {
			c.logger.Printf("skipping disabled scraper: %s", name)
			outcomes = append(outcomes, models.SourceOutcome{
				Source: name, Status: models.StatusDisabled,
			})
			continue
		}

		s, err := c.registry.Create(name, sc)
		if err != nil {
			c.logger.Printf("error creating scraper %q: %v", name, err)
			outcomes = append(outcomes, models.SourceOutcome{
				Source: name, Status: models.StatusError, Err: err.Error(),
			})
			continue
		}

		c.logger.Printf("fetching jobs from %s", name)
		jobs, err := s.ScrapeJobs(ctx, c.filters)
		if err != nil {
			c.logger.Printf("error scraping from %s: %v", name, err)
			outcomes = append(outcomes, models.SourceOutcome{
				Source: name, Status: models.StatusError, Err: err.Error(),
			})
			continue
		}
		if len(jobs) == 0 {
			c.logger.Printf("warning: no jobs returned from %s", name)
			outcomes = append(outcomes, models.SourceOutcome{
				Source: name, Status: models.StatusEmpty,
			})
			continue
		}

		c.logger.Printf("successfully fetched %d jobs from %s", len(jobs), name)
		all = append(all, jobs...)
		fetchedSources++
		outcomes = append(outcomes, models.SourceOutcome{
			Source: name, Status: models.StatusFetched, Jobs: len(jobs),
		})
	}

	if len(all) == 0 {
		c.logger.Printf("warning: no jobs were successfully scraped from any source")
		return []models.Job{}, outcomes
	}

	before := len(all)
	combined := dedupeByURL(all)
	if removed := before - len(combined); removed > 0 {
		c.logger.Printf("removed %d duplicate jobs", removed)
	}

	c.logger.Printf("successfully collected %d unique jobs from %d sources", len(combined), fetchedSources)
	return combined, outcomes
}

// AvailableScrapers returns every configured source name, sorted.
func (c *Coordinator) AvailableScrapers() []string {
	cfg := config.Config{Scrapers: c.scrapers}
	return cfg.SourceNames()
}

// EnabledScrapers returns the sorted names of sources with enabled = true.
func (c *Coordinator) EnabledScrapers() []string {
	cfg := config.Config{Scrapers: c.scrapers}
	return cfg.EnabledSourceNames()
}

// dedupeByURL keeps the first posting seen for each URL, preserving input
// order. Records with an empty URL should not reach this point; any that do
// are kept as-is.
func dedupeByURL(jobs []models.Job) []models.Job {
	seen := make(map[string]bool, len(jobs))
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.URL != "" {
			if seen[j.URL] {
				continue
			}
			seen[j.URL] = true
		}
		out = append(out, j)
	}
	return out
}
