package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "a  b\n\tc", "a b c"},
		{"trims", "  hello  ", "hello"},
		{"nbsp", "hello\u00a0world", "hello world"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestRemoveStopWords(t *testing.T) {
	got := RemoveStopWords("the quick brown fox jumps over the lazy dog")
	assert.Equal(t, "quick brown fox jumps lazy dog", got)
}

func TestExtractKeywords(t *testing.T) {
	text := "python python python sql sql airflow the and with 42"
	got := ExtractKeywords(text, 2)
	assert.Equal(t, []string{"python", "sql"}, got)
}

func TestTopKeywordsTieBreaksAlphabetically(t *testing.T) {
	freqs := map[string]int{"zeta": 2, "alpha": 2, "mid": 5}
	assert.Equal(t, []string{"mid", "alpha", "zeta"}, TopKeywords(freqs, 3))
}

func TestKeywordFrequencies(t *testing.T) {
	freqs := KeywordFrequencies("data, data; engineer!")
	assert.Equal(t, 2, freqs["data"])
	assert.Equal(t, 1, freqs["engineer"])
	// stop words and numbers never count
	assert.NotContains(t, freqs, "the")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 100))
	assert.Equal(t, "one two...", TruncateText("one two three four", 9))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report_2024_final", SanitizeFilename("report/2024:final"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Senior Data Engineer", []string{"data"}))
	assert.True(t, ContainsAny("machine learning role", []string{"nosuch", "Machine Learning"}))
	assert.False(t, ContainsAny("Frontend Developer", []string{"data"}))
	assert.False(t, ContainsAny("anything", nil))
	assert.False(t, ContainsAny("anything", []string{"", "  "}))
}
