package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/czemtsop/data-jobs/internal/config"
	"github.com/czemtsop/data-jobs/internal/models"
	"github.com/czemtsop/data-jobs/pkg/analyzer"
	"github.com/czemtsop/data-jobs/pkg/reporter"
	"github.com/czemtsop/data-jobs/pkg/scraper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "datajobs",
	Short: "datajobs - remote job market collection and analysis",
	Long: `datajobs collects job postings from multiple remote-job-board APIs,
merges and deduplicates them, and produces summary statistics and export
artifacts (CSV, JSON, Excel, HTML).`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Collect job postings from the configured sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		sources, _ := cmd.Flags().GetStringSlice("sources")
		output, _ := cmd.Flags().GetString("output")

		coord := scraper.NewCoordinator(cfg, nil, logger)
		jobs, outcomes := coord.FetchAllJobs(cmd.Context(), sources)

		printOutcomes(cmd, outcomes)
		cmd.Printf("Collected %d unique jobs\n", len(jobs))

		if output != "" {
			r := reporter.New(output, cfg.Output.Filename)
			path, err := r.ExportCSV(jobs)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			cmd.Printf("Dataset saved to %s\n", path)
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Collect postings and print market analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		sources, _ := cmd.Flags().GetStringSlice("sources")

		coord := scraper.NewCoordinator(cfg, nil, logger)
		jobs, outcomes := coord.FetchAllJobs(cmd.Context(), sources)
		printOutcomes(cmd, outcomes)

		report, err := analyzer.New().Analyze(jobs)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		printReport(cmd, report)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full pipeline and export artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		sources, _ := cmd.Flags().GetStringSlice("sources")
		formats, _ := cmd.Flags().GetStringSlice("format")
		outputDir, _ := cmd.Flags().GetString("output-dir")

		if len(formats) == 0 {
			formats = cfg.Output.Formats
		}
		if outputDir == "" {
			outputDir = cfg.Output.Dir
		}

		coord := scraper.NewCoordinator(cfg, nil, logger)
		jobs, outcomes := coord.FetchAllJobs(cmd.Context(), sources)
		printOutcomes(cmd, outcomes)

		report, err := analyzer.New().Analyze(jobs)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		printReport(cmd, report)

		r := reporter.New(outputDir, cfg.Output.Filename)
		paths, err := r.ExportAll(jobs, report, formats)
		for format, path := range paths {
			cmd.Printf("Exported %s: %s\n", format, path)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured and enabled job board sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		coord := scraper.NewCoordinator(cfg, nil, logger)
		cmd.Printf("Configured: %s\n", strings.Join(coord.AvailableScrapers(), ", "))
		cmd.Printf("Enabled:    %s\n", strings.Join(coord.EnabledScrapers(), ", "))
		return nil
	},
}

func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	out := cmd.ErrOrStderr()
	flags := 0
	if verbose {
		flags = log.LstdFlags
	}
	logger := log.New(out, cfg.Logging.Prefix, flags)
	return cfg, logger, nil
}

func printOutcomes(cmd *cobra.Command, outcomes []models.SourceOutcome) {
	for _, o := range outcomes {
		switch o.Status {
		case models.StatusFetched:
			cmd.Printf("  %-10s %s (%d jobs)\n", o.Source, o.Status, o.Jobs)
		case models.StatusError, models.StatusUnknown:
			cmd.Printf("  %-10s %s: %s\n", o.Source, o.Status, o.Err)
		default:
			cmd.Printf("  %-10s %s\n", o.Source, o.Status)
		}
	}
}

func printReport(cmd *cobra.Command, report *models.AnalysisReport) {
	cmd.Printf("\nJobs analyzed:    %d\n", report.Stats.TotalJobs)
	cmd.Printf("Companies:        %d\n", report.Stats.UniqueCompanies)
	cmd.Printf("Locations:        %d\n", report.Stats.UniqueLocations)
	cmd.Printf("Jobs with salary: %d (%.1f%%)\n", report.Stats.JobsWithSalary, report.Stats.SalaryCoverage)

	if len(report.TopKeywords) > 0 {
		cmd.Printf("\nTop keywords:\n")
		for _, kw := range report.TopKeywords {
			cmd.Printf("  %-20s %d\n", kw.Keyword, kw.Count)
		}
	}
	if len(report.SalaryByLocation) > 0 {
		cmd.Printf("\nAverage salary by location:\n")
		for _, ls := range report.SalaryByLocation {
			cmd.Printf("  %-30s %.0f - %.0f (%d jobs)\n", ls.Location, ls.AvgMin, ls.AvgMax, ls.JobCount)
		}
	}
}

func init() {
	scrapeCmd.Flags().StringSlice("sources", nil, "Source names to scrape (default: all enabled)")
	scrapeCmd.Flags().String("output", "", "Directory to save the collected dataset as CSV")

	analyzeCmd.Flags().StringSlice("sources", nil, "Source names to scrape (default: all enabled)")

	reportCmd.Flags().StringSlice("sources", nil, "Source names to scrape (default: all enabled)")
	reportCmd.Flags().StringSlice("format", nil, "Export formats (csv, json, excel, html)")
	reportCmd.Flags().String("output-dir", "", "Output directory for exported files")

	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sourcesCmd)

	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose log output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
