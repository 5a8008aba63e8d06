package reporter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/czemtsop/data-jobs/internal/models"
)

func testReporter(t *testing.T) *Reporter {
	t.Helper()
	r := New(t.TempDir(), "test_report")
	r.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	}
	return r
}

func testJobs() []models.Job {
	return []models.Job{
		{
			ID: "1", URL: "https://example.com/1", Company: "Hooli",
			Title: "Data Engineer", Location: "Berlin",
			Description: "Build pipelines", SalaryMin: 80000, SalaryMax: 110000,
			Currency: "USD", SalaryPeriod: "yearly", JobType: "full-time",
			Source: "Remote OK", PostedAt: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", URL: "https://example.com/2", Company: "Initech",
			Title: "Data Analyst", Location: "Remote",
			Description: "Dashboards", Source: "Jobicy",
		},
	}
}

func testReport() *models.AnalysisReport {
	return &models.AnalysisReport{
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Stats: models.SummaryStats{
			TotalJobs: 2, UniqueCompanies: 2, UniqueLocations: 2,
			JobsWithSalary: 1, SalaryCoverage: 50,
			JobsBySource: map[string]int{"Remote OK": 1, "Jobicy": 1},
		},
		TopKeywords: []models.KeywordCount{{Keyword: "pipelines", Count: 1}},
		SalaryByLocation: []models.LocationSalary{
			{Location: "Berlin", AvgMin: 80000, AvgMax: 110000, JobCount: 1},
		},
	}
}

func TestExportCSV(t *testing.T) {
	r := testReporter(t)

	path, err := r.ExportCSV(testJobs())
	require.NoError(t, err)
	assert.Equal(t, "test_report_20240501_123045.csv", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])

	first := records[1]
	assert.Equal(t, "https://example.com/1", first[1])
	assert.Equal(t, "Hooli", first[2])
	assert.Equal(t, "80000", first[5])
	assert.Equal(t, "2024-04-10", first[13])

	// zero salary and zero date render as empty cells
	second := records[2]
	assert.Equal(t, "", second[5])
	assert.Equal(t, "", second[13])
}

func TestExportCSVEmptyDataset(t *testing.T) {
	r := testReporter(t)

	path, err := r.ExportCSV(nil)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}

func TestExportJSON(t *testing.T) {
	r := testReporter(t)

	path, err := r.ExportJSON(testJobs(), testReport())
	require.NoError(t, err)
	assert.Equal(t, "test_report_20240501_123045.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc jsonExport
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Jobs, 2)
	assert.Equal(t, "Data Engineer", doc.Jobs[0].Title)
	require.NotNil(t, doc.Analysis)
	assert.Equal(t, 2, doc.Analysis.Stats.TotalJobs)
}

func TestExportJSONNilJobsEncodesEmptyArray(t *testing.T) {
	r := testReporter(t)

	path, err := r.ExportJSON(nil, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"jobs": []`)
}

func TestExportExcel(t *testing.T) {
	r := testReporter(t)

	path, err := r.ExportExcel(testJobs(), testReport())
	require.NoError(t, err)
	assert.Equal(t, "test_report_20240501_123045.xlsx", filepath.Base(path))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.ElementsMatch(t, []string{"Jobs", "Summary", "Salary by Location"}, wb.GetSheetList())

	title, err := wb.GetCellValue("Jobs", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", title)

	total, err := wb.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	loc, err := wb.GetCellValue("Salary by Location", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", loc)
}

func TestExportHTML(t *testing.T) {
	r := testReporter(t)

	path, err := r.ExportHTML(testJobs(), testReport())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Remote Job Market Report")
	assert.Contains(t, html, "Data Engineer")
	assert.Contains(t, html, `href="https://example.com/1"`)
	assert.Contains(t, html, "pipelines (1)")
	assert.Contains(t, html, "50.0%")
}

func TestExportAll(t *testing.T) {
	r := testReporter(t)

	paths, err := r.ExportAll(testJobs(), testReport(), nil)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, format := range []string{"csv", "json", "excel", "html"} {
		path, ok := paths[format]
		require.True(t, ok, format)
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, format)
	}
}

func TestExportAllUnsupportedFormatContinues(t *testing.T) {
	r := testReporter(t)

	paths, err := r.ExportAll(testJobs(), testReport(), []string{"pdf", "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: pdf")

	// the good format still went through
	require.Contains(t, paths, "csv")
	assert.True(t, strings.HasSuffix(paths["csv"], ".csv"))
}

func TestNewSanitizesBaseName(t *testing.T) {
	r := New(t.TempDir(), "my/report:2024")
	assert.Equal(t, "my_report_2024", r.baseName)
}
