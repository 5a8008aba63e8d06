package utils

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Common stop words for keyword extraction. The last row carries terms that
// dominate job descriptions without saying anything about the role.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "will": true, "with": true,
	"this": true, "but": true, "they": true, "have": true, "had": true,
	"were": true, "been": true, "their": true, "she": true, "which": true, "do": true,
	"or": true, "if": true, "not": true, "what": true, "there": true, "can": true,
	"out": true, "up": true, "one": true, "about": true, "more": true, "so": true,
	"said": true, "when": true, "some": true, "into": true, "them": true, "then": true,
	"two": true, "how": true, "her": true, "than": true, "first": true, "way": true,
	"even": true, "back": true, "any": true, "over": true, "where": true, "just": true,
	"you": true, "your": true, "our": true, "we": true, "us": true, "all": true,
	"across": true, "help": true, "skills": true, "work": true, "team": true,
}

var spaceRegex = regexp.MustCompile(`\s+`)

// CleanText removes extra whitespace and normalizes text
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = spaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// RemoveStopWords filters out common stop words from text
func RemoveStopWords(text string) string {
	words := strings.Fields(strings.ToLower(text))
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		word = strings.Trim(word, ".,!?;:'\"()")
		if !stopWords[word] && len(word) > 0 {
			filtered = append(filtered, word)
		}
	}

	return strings.Join(filtered, " ")
}

// ExtractKeywords extracts the most frequent keywords from text
func ExtractKeywords(text string, limit int) []string {
	cleaned := RemoveStopWords(text)

	wordCount := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(cleaned)) {
		word = strings.Trim(word, ".,!?;:'\"()")
		if len(word) > 2 && isAlpha(word) {
			wordCount[word]++
		}
	}

	return TopKeywords(wordCount, limit)
}

// KeywordFrequencies counts stop-word-filtered word occurrences in text.
func KeywordFrequencies(text string) map[string]int {
	wordCount := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(RemoveStopWords(text))) {
		word = strings.Trim(word, ".,!?;:'\"()")
		if len(word) > 2 && isAlpha(word) {
			wordCount[word]++
		}
	}
	return wordCount
}

// TopKeywords returns the limit most frequent keys of a frequency map,
// breaking count ties alphabetically so output is stable.
func TopKeywords(wordCount map[string]int, limit int) []string {
	type kv struct {
		Key   string
		Value int
	}

	sorted := make([]kv, 0, len(wordCount))
	for k, v := range wordCount {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Value == sorted[j].Value {
			return sorted[i].Key < sorted[j].Key
		}
		return sorted[i].Value > sorted[j].Value
	})

	keywords := make([]string, 0, limit)
	for i := 0; i < limit && i < len(sorted); i++ {
		keywords = append(keywords, sorted[i].Key)
	}
	return keywords
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

// TruncateText truncates text to a maximum length, preserving word boundaries
func TruncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	truncated := text[:maxLength]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}

// SanitizeFilename removes invalid characters from a filename
func SanitizeFilename(filename string) string {
	invalid := regexp.MustCompile(`[<>:"/\\|?*]`)
	filename = invalid.ReplaceAllString(filename, "_")

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, filename)

	if len(cleaned) > 255 {
		cleaned = cleaned[:255]
	}

	return cleaned
}

// ContainsAny reports whether text contains any of the needles,
// case-insensitively. An empty needle list never matches.
func ContainsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
