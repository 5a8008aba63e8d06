package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/czemtsop/data-jobs/pkg/utils"
)

// Extractor normalizes the raw fields job-board APIs hand back: HTML
// descriptions, free-text salary strings, tag lists and assorted date
// encodings.
type Extractor struct {
	robotCheckRegex *regexp.Regexp
	salaryRegex     *regexp.Regexp
}

// New creates a new Extractor instance
func New() *Extractor {
	return &Extractor{
		// RemoteOK appends an anti-scraping paragraph to every description
		robotCheckRegex: regexp.MustCompile(`(?s)Please mention the word.*`),
		salaryRegex:     regexp.MustCompile(`(?i)([\d][\d,.]*)\s*(k)?`),
	}
}

// StripHTML extracts plain text from an HTML fragment. Invalid markup
// degrades to whatever text goquery can recover, never an error.
func (e *Extractor) StripHTML(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return utils.CleanText(htmlContent)
	}
	return utils.CleanText(doc.Text())
}

// CleanDescription strips markup and the RemoteOK robot-check suffix.
func (e *Extractor) CleanDescription(htmlContent string) string {
	text := e.StripHTML(htmlContent)
	text = e.robotCheckRegex.ReplaceAllString(text, "")
	return utils.CleanText(text)
}

// ParseSalary parses a free-text salary string such as "$80k - $120k",
// "60,000 - 90,000 USD" or "€75000" into a numeric range. A single figure
// is used for both ends. Unparseable text returns ok = false; callers keep
// the record with zero-valued salary fields.
func (e *Extractor) ParseSalary(s string) (min, max float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}

	matches := e.salaryRegex.FindAllStringSubmatch(s, -1)
	var values []float64
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if strings.EqualFold(m[2], "k") {
			v *= 1000
		}
		// Ignore stray small numbers ("40 hours", "5 years")
		if v < 1000 {
			continue
		}
		values = append(values, v)
	}

	switch len(values) {
	case 0:
		return 0, 0, false
	case 1:
		return values[0], values[0], true
	default:
		min, max = values[0], values[1]
		if min > max {
			min, max = max, min
		}
		return min, max, true
	}
}

// JoinList flattens a string list into the comma-separated form used by the
// combined dataset, dropping empties and HTML entity leftovers.
func (e *Extractor) JoinList(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.ReplaceAll(it, "&amp;", "&")
		it = utils.CleanText(it)
		if it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, ", ")
}

// ParseEpoch converts a unix timestamp in seconds to a date. RemoteOK
// publishes posting times this way.
func (e *Extractor) ParseEpoch(epoch int64) time.Time {
	if epoch <= 0 {
		return time.Time{}
	}
	return time.Unix(epoch, 0).UTC()
}

// ParseDate parses the date formats seen across the boards' feeds,
// returning the zero time when nothing matches.
func (e *Extractor) ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	layouts := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// Fall back to the leading date portion ("2024-05-01T..." variants)
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t
		}
	}
	return time.Time{}
}
