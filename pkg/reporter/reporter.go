package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/czemtsop/data-jobs/internal/models"
	"github.com/czemtsop/data-jobs/pkg/utils"
)

// Reporter writes the combined dataset and its analysis to export artifacts
// in an output directory. Every exporter tolerates an empty dataset.
type Reporter struct {
	outputDir string
	baseName  string
	now       func() time.Time
}

// New creates a Reporter writing into outputDir with baseName-prefixed,
// timestamped filenames.
func New(outputDir, baseName string) *Reporter {
	if baseName == "" {
		baseName = "data_jobs_market_analysis"
	}
	return &Reporter{
		outputDir: outputDir,
		baseName:  utils.SanitizeFilename(baseName),
		now:       time.Now,
	}
}

var csvHeader = []string{
	"id", "url", "company", "title", "location", "salary_min", "salary_max",
	"currency", "salary_period", "job_type", "job_level", "industry", "tags",
	"posted_at", "source", "description",
}

// ExportCSV writes the full dataset as CSV and returns the file path.
func (r *Reporter) ExportCSV(jobs []models.Job) (string, error) {
	path, err := r.preparePath("csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, j := range jobs {
		record := []string{
			j.ID, j.URL, j.Company, j.Title, j.Location,
			formatSalary(j.SalaryMin), formatSalary(j.SalaryMax),
			j.Currency, j.SalaryPeriod, j.JobType, j.JobLevel, j.Industry, j.Tags,
			formatDate(j.PostedAt), j.Source, j.Description,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}

// jsonExport is the document written by ExportJSON.
type jsonExport struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Analysis    *models.AnalysisReport `json:"analysis,omitempty"`
	Jobs        []models.Job           `json:"jobs"`
}

// ExportJSON writes the dataset and analysis as indented JSON.
func (r *Reporter) ExportJSON(jobs []models.Job, report *models.AnalysisReport) (string, error) {
	path, err := r.preparePath("json")
	if err != nil {
		return "", err
	}

	doc := jsonExport{GeneratedAt: r.now(), Analysis: report, Jobs: jobs}
	if doc.Jobs == nil {
		doc.Jobs = []models.Job{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportExcel writes a workbook with Jobs, Summary and Salary by Location
// sheets.
func (r *Reporter) ExportExcel(jobs []models.Job, report *models.AnalysisReport) (string, error) {
	path, err := r.preparePath("xlsx")
	if err != nil {
		return "", err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	const jobsSheet = "Jobs"
	wb.SetSheetName(wb.GetSheetName(0), jobsSheet)

	for col, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		wb.SetCellValue(jobsSheet, cell, h)
	}
	for row, j := range jobs {
		values := []any{
			j.ID, j.URL, j.Company, j.Title, j.Location,
			j.SalaryMin, j.SalaryMax,
			j.Currency, j.SalaryPeriod, j.JobType, j.JobLevel, j.Industry, j.Tags,
			formatDate(j.PostedAt), j.Source, utils.TruncateText(j.Description, 2000),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			wb.SetCellValue(jobsSheet, cell, v)
		}
	}

	if report != nil {
		const summarySheet = "Summary"
		wb.NewSheet(summarySheet)
		summary := [][]any{
			{"Metric", "Value"},
			{"Total jobs", report.Stats.TotalJobs},
			{"Unique companies", report.Stats.UniqueCompanies},
			{"Unique locations", report.Stats.UniqueLocations},
			{"Jobs with salary", report.Stats.JobsWithSalary},
			{"Salary coverage (%)", report.Stats.SalaryCoverage},
		}
		for row, pair := range summary {
			cellA, _ := excelize.CoordinatesToCellName(1, row+1)
			cellB, _ := excelize.CoordinatesToCellName(2, row+1)
			wb.SetCellValue(summarySheet, cellA, pair[0])
			wb.SetCellValue(summarySheet, cellB, pair[1])
		}

		const salarySheet = "Salary by Location"
		wb.NewSheet(salarySheet)
		wb.SetCellValue(salarySheet, "A1", "Location")
		wb.SetCellValue(salarySheet, "B1", "Avg min")
		wb.SetCellValue(salarySheet, "C1", "Avg max")
		wb.SetCellValue(salarySheet, "D1", "Jobs")
		for row, ls := range report.SalaryByLocation {
			wb.SetCellValue(salarySheet, fmt.Sprintf("A%d", row+2), ls.Location)
			wb.SetCellValue(salarySheet, fmt.Sprintf("B%d", row+2), ls.AvgMin)
			wb.SetCellValue(salarySheet, fmt.Sprintf("C%d", row+2), ls.AvgMax)
			wb.SetCellValue(salarySheet, fmt.Sprintf("D%d", row+2), ls.JobCount)
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// ExportHTML renders the analysis report as a standalone HTML page.
func (r *Reporter) ExportHTML(jobs []models.Job, report *models.AnalysisReport) (string, error) {
	path, err := r.preparePath("html")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	data := struct {
		GeneratedAt time.Time
		Report      *models.AnalysisReport
		Jobs        []models.Job
	}{r.now(), report, jobs}

	if err := htmlTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return path, nil
}

// ExportAll writes every requested format and returns format -> path. A
// failing format is reported in the error but does not stop the others.
func (r *Reporter) ExportAll(jobs []models.Job, report *models.AnalysisReport, formats []string) (map[string]string, error) {
	if len(formats) == 0 {
		formats = []string{"csv", "json", "excel", "html"}
	}

	paths := make(map[string]string, len(formats))
	var firstErr error
	for _, format := range formats {
		var (
			path string
			err  error
		)
		switch format {
		case "csv":
			path, err = r.ExportCSV(jobs)
		case "json":
			path, err = r.ExportJSON(jobs, report)
		case "excel", "xlsx":
			path, err = r.ExportExcel(jobs, report)
		case "html":
			path, err = r.ExportHTML(jobs, report)
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("export %s: %w", format, err)
			}
			continue
		}
		paths[format] = path
	}
	return paths, firstErr
}

func (r *Reporter) preparePath(ext string) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", r.outputDir, err)
	}
	name := fmt.Sprintf("%s_%s.%s", r.baseName, r.now().Format("20060102_150405"), ext)
	return filepath.Join(r.outputDir, name), nil
}

func formatSalary(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Remote Job Market Report</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1100px;
            margin: 0 auto;
            padding: 20px;
            background: #f5f5f5;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 2rem;
            border-radius: 10px;
            margin-bottom: 2rem;
        }
        .card {
            background: white;
            border-radius: 10px;
            padding: 1.5rem;
            margin-bottom: 1.5rem;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        .stat-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 1rem;
            margin: 1rem 0;
        }
        .stat-item {
            text-align: center;
            padding: 1rem;
            background: #f8f9fa;
            border-radius: 8px;
        }
        .stat-value {
            font-size: 2rem;
            font-weight: bold;
            color: #667eea;
        }
        .stat-label {
            color: #666;
            font-size: 0.9rem;
            margin-top: 0.5rem;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin: 1rem 0;
        }
        th, td {
            text-align: left;
            padding: 0.5rem 0.75rem;
            border-bottom: 1px solid #eee;
        }
        th {
            background: #f8f9fa;
        }
        .keyword {
            display: inline-block;
            background: #eef;
            border-radius: 4px;
            padding: 0.2rem 0.6rem;
            margin: 0.15rem;
            font-size: 0.9rem;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Remote Job Market Report</h1>
        <p>Generated on {{.GeneratedAt.Format "January 2, 2006 15:04"}}</p>
    </div>

    {{with .Report}}
    <div class="card">
        <h2>Summary</h2>
        <div class="stat-grid">
            <div class="stat-item">
                <div class="stat-value">{{.Stats.TotalJobs}}</div>
                <div class="stat-label">Jobs collected</div>
            </div>
            <div class="stat-item">
                <div class="stat-value">{{.Stats.UniqueCompanies}}</div>
                <div class="stat-label">Companies</div>
            </div>
            <div class="stat-item">
                <div class="stat-value">{{.Stats.UniqueLocations}}</div>
                <div class="stat-label">Locations</div>
            </div>
            <div class="stat-item">
                <div class="stat-value">{{printf "%.1f%%" .Stats.SalaryCoverage}}</div>
                <div class="stat-label">Salary coverage</div>
            </div>
        </div>
        {{if .Stats.JobsBySource}}
        <h3>Jobs by source</h3>
        <table>
            <tr><th>Source</th><th>Jobs</th></tr>
            {{range $source, $count := .Stats.JobsBySource}}
            <tr><td>{{$source}}</td><td>{{$count}}</td></tr>
            {{end}}
        </table>
        {{end}}
    </div>

    {{if .TopKeywords}}
    <div class="card">
        <h2>In-demand keywords</h2>
        {{range .TopKeywords}}<span class="keyword">{{.Keyword}} ({{.Count}})</span>{{end}}
    </div>
    {{end}}

    {{if .SalaryByLocation}}
    <div class="card">
        <h2>Average salary by location</h2>
        <table>
            <tr><th>Location</th><th>Avg min</th><th>Avg max</th><th>Jobs</th></tr>
            {{range .SalaryByLocation}}
            <tr>
                <td>{{.Location}}</td>
                <td>{{printf "%.0f" .AvgMin}}</td>
                <td>{{printf "%.0f" .AvgMax}}</td>
                <td>{{.JobCount}}</td>
            </tr>
            {{end}}
        </table>
    </div>
    {{end}}
    {{end}}

    <div class="card">
        <h2>Postings ({{len .Jobs}})</h2>
        <table>
            <tr><th>Title</th><th>Company</th><th>Location</th><th>Source</th></tr>
            {{range .Jobs}}
            <tr>
                <td><a href="{{.URL}}">{{.Title}}</a></td>
                <td>{{.Company}}</td>
                <td>{{.Location}}</td>
                <td>{{.Source}}</td>
            </tr>
            {{end}}
        </table>
    </div>
</body>
</html>
`))
