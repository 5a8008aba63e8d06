package scraper

import (
	"github.com/czemtsop/data-jobs/internal/config"
	"github.com/czemtsop/data-jobs/internal/models"
	"github.com/czemtsop/data-jobs/pkg/utils"
)

// MatchesFilters reports whether a posting passes the shared filter
// criteria. An empty list for a category imposes no constraint. Keywords
// are OR-matched against title, tags and description; the remaining
// categories match their own field.
func MatchesFilters(j models.Job, f config.Filters) bool {
	if len(f.Keywords) > 0 {
		haystack := j.Title + " " + j.Tags + " " + j.Description
		if !utils.ContainsAny(haystack, f.Keywords) {
			return false
		}
	}
	if len(f.JobTitles) > 0 && !utils.ContainsAny(j.Title, f.JobTitles) {
		return false
	}
	if len(f.Locations) > 0 && !utils.ContainsAny(j.Location, f.Locations) {
		return false
	}
	if len(f.ExperienceLevels) > 0 && !utils.ContainsAny(j.JobLevel, f.ExperienceLevels) {
		return false
	}
	return true
}

// applyFilters keeps the postings that pass the criteria and drops any
// record without a URL, since the URL is the dedup key downstream.
func applyFilters(jobs []models.Job, f config.Filters) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.URL == "" {
			continue
		}
		if MatchesFilters(j, f) {
			out = append(out, j)
		}
	}
	return out
}
