package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/catalogchecker/catalog-quality-checker/internal/analyzer"
	"github.com/catalogchecker/catalog-quality-checker/internal/catalog"
	"github.com/catalogchecker/catalog-quality-checker/internal/config"
	"github.com/catalogchecker/catalog-quality-checker/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check <csv-file>",
	Short: "Analyze a product catalog export for quality issues",
	Long: `Analyze a product catalog CSV export against the built-in quality rules
and print a grouped, scored report.

Use --rules to run a subset of rules ("default", "critical", or a
substring of an issue-type name such as "stock"), and --severity to
restrict the report to one severity after aggregation.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	ruleSelector   string
	severityFilter string
	failOnIssues   bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&ruleSelector, "rules", "default", "rule set to run (default, critical, or issue-type substring)")
	checkCmd.Flags().StringVar(&severityFilter, "severity", "", "only report issues of this severity (critical, warning, info)")
	checkCmd.Flags().BoolVar(&failOnIssues, "fail-on-issues", false, "exit with non-zero code if issues found")
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	products, err := catalog.LoadCSV(args[0])
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d products from %s\n", len(products), args[0])
	}

	rules := selectRules(cfg)
	engine, err := analyzer.New(rules, analyzer.WithChunkSize(cfg.Analysis.ChunkSize))
	if err != nil {
		return fmt.Errorf("failed to build analyzer: %w", err)
	}

	qualityReport := engine.AnalyzeAndReport(products)
	qualityReport = applySeverityFilter(qualityReport)

	if err := outputResults(cmd, qualityReport, verbose); err != nil {
		return err
	}

	if failOnIssues && qualityReport.TotalIssues > 0 {
		os.Exit(1)
	}
	return nil
}

// selectRules resolves the --rules flag. An unknown selector is a
// recoverable configuration fault: warn and fall back to the default set
// so the run still produces a report.
func selectRules(cfg *config.Config) []analyzer.Rule {
	rules, err := analyzer.SelectRules(&cfg.Rules, ruleSelector)
	if err != nil {
		log.Warn().Err(err).Msg("Unknown rule selector, running the default rule set")
		return analyzer.DefaultRules(&cfg.Rules)
	}
	return rules
}

// applySeverityFilter resolves the --severity flag. An unknown severity
// name is warned about and the unfiltered report is kept.
func applySeverityFilter(qualityReport *report.Report) *report.Report {
	if severityFilter == "" {
		return qualityReport
	}

	severity, err := report.ParseSeverity(severityFilter)
	if err != nil {
		log.Warn().Err(err).Msg("Unknown severity filter, reporting all severities")
		return qualityReport
	}
	return qualityReport.FilterBySeverity(severity)
}

func outputResults(cmd *cobra.Command, qualityReport *report.Report, verbose bool) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	formatter := report.GetFormatter(formatFlag)

	output, err := formatter.Format(qualityReport)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		if err := writeOutputToFile(output, outputPath); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Report written to: %s\n", outputPath)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

func writeOutputToFile(content, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0644)
}
