package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

type Formatter interface {
	Format(report *Report) (string, error)
}

type TableFormatter struct {
	colorize bool
}

func NewTableFormatter(colorize bool) *TableFormatter {
	return &TableFormatter{colorize: colorize}
}

func (f *TableFormatter) Format(report *Report) (string, error) {
	var output strings.Builder

	if f.colorize {
		color.Set(color.FgCyan, color.Bold)
	}
	output.WriteString("Catalog Quality Report\n")
	output.WriteString(fmt.Sprintf("Products analyzed: %d\n\n", report.TotalProducts))
	if f.colorize {
		color.Unset()
	}

	f.writeSummary(&output, report)

	if report.TotalIssues > 0 {
		output.WriteString("\nSample Issues:\n")
		f.writeSamples(&output, report)
	} else {
		output.WriteString("\n")
		if f.colorize {
			color.Set(color.FgGreen, color.Bold)
		}
		output.WriteString("✅ No issues found! Catalog is healthy.\n")
		if f.colorize {
			color.Unset()
		}
	}

	return output.String(), nil
}

func (f *TableFormatter) writeSummary(output *strings.Builder, report *Report) {
	if f.colorize {
		color.Set(color.FgYellow, color.Bold)
	}
	output.WriteString("Summary:\n")
	if f.colorize {
		color.Unset()
	}

	output.WriteString(fmt.Sprintf("  Total Issues: %d (%.1f%% of products)\n", report.TotalIssues, report.IssuePercentage()))
	output.WriteString(fmt.Sprintf("  Quality Score: %.1f/100\n", report.QualityScore))

	verdict := "FAIL"
	if report.IsQualityAcceptable() {
		verdict = "PASS"
	}
	output.WriteString(fmt.Sprintf("  Acceptance: %s\n", verdict))

	if report.TotalIssues > 0 {
		stats := report.SeverityStatistics()
		for _, severity := range Severities {
			stat, ok := stats[severity]
			if !ok || stat.Count == 0 {
				continue
			}
			line := fmt.Sprintf("    %s: %d (%.1f%%)\n", titleCase(severity.String()), stat.Count, stat.Percentage)
			if severityColor := f.getSeverityColor(severity); f.colorize && severityColor != nil {
				line = severityColor.Sprint(line)
			}
			output.WriteString(line)
		}
	}
}

func (f *TableFormatter) writeSamples(output *strings.Builder, report *Report) {
	first := true
	for _, issueType := range IssueTypes {
		samples, ok := report.SampleIssues[issueType]
		if !ok || len(samples) == 0 {
			continue
		}

		if !first {
			output.WriteString("\n")
		}
		first = false

		total := len(report.IssuesByType[issueType])
		output.WriteString(fmt.Sprintf("  %s (%d total, showing %d):\n", issueType.DisplayName(), total, len(samples)))

		for _, issue := range samples {
			severity := strings.ToUpper(issue.Severity.String())
			if f.colorize {
				if severityColor := f.getSeverityColor(issue.Severity); severityColor != nil {
					severity = severityColor.Sprint(severity)
				}
			}

			output.WriteString(fmt.Sprintf("    [%s] %s\n", severity, issue.ProductID))
			output.WriteString(fmt.Sprintf("      Issue: %s\n", issue.Description))
			if issue.SuggestedAction != "" {
				output.WriteString(fmt.Sprintf("      Fix:   %s\n", issue.SuggestedAction))
			}
		}
	}
}

func (f *TableFormatter) getSeverityColor(severity Severity) *color.Color {
	switch severity {
	case SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case SeverityWarning:
		return color.New(color.FgYellow)
	case SeverityInfo:
		return color.New(color.FgBlue)
	default:
		return nil
	}
}

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return string(data), nil
}

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (f *MarkdownFormatter) Format(report *Report) (string, error) {
	var output strings.Builder

	output.WriteString("# Catalog Quality Report\n\n")
	output.WriteString(fmt.Sprintf("**Products analyzed:** %d\n\n", report.TotalProducts))

	output.WriteString("## Summary\n\n")
	output.WriteString(fmt.Sprintf("- **Total Issues:** %d (%.1f%% of products)\n", report.TotalIssues, report.IssuePercentage()))
	output.WriteString(fmt.Sprintf("- **Quality Score:** %.1f/100\n", report.QualityScore))
	if report.IsQualityAcceptable() {
		output.WriteString("- **Acceptance:** PASS\n\n")
	} else {
		output.WriteString("- **Acceptance:** FAIL\n\n")
	}

	if report.TotalIssues > 0 {
		f.writeSeverityBreakdown(&output, report)
		f.writeIssuesMarkdown(&output, report)
	} else {
		output.WriteString("## ✅ No Issues Found\n\nCatalog is healthy!\n")
	}

	return output.String(), nil
}

func (f *MarkdownFormatter) writeSeverityBreakdown(output *strings.Builder, report *Report) {
	output.WriteString("### Issues by Severity\n\n")
	stats := report.SeverityStatistics()
	for _, severity := range Severities {
		stat, ok := stats[severity]
		if !ok || stat.Count == 0 {
			continue
		}
		output.WriteString(fmt.Sprintf("- **%s:** %d (%.1f%%)\n", titleCase(severity.String()), stat.Count, stat.Percentage))
	}
	output.WriteString("\n")
}

func (f *MarkdownFormatter) writeIssuesMarkdown(output *strings.Builder, report *Report) {
	output.WriteString("## Issues Found\n\n")

	typeStats := report.IssueTypeStatistics()
	for _, issueType := range IssueTypes {
		issues, ok := report.IssuesByType[issueType]
		if !ok || len(issues) == 0 {
			continue
		}

		stat := typeStats[issueType]
		output.WriteString(fmt.Sprintf("### %s\n\n", issueType.DisplayName()))
		if description, ok := report.RuleDescriptions[issueType]; ok {
			output.WriteString(fmt.Sprintf("%s\n\n", description))
		}
		output.WriteString(fmt.Sprintf("**Affected:** %d products (%.1f%%)\n\n", stat.Count, stat.Percentage))

		for _, issue := range report.SampleIssues[issueType] {
			output.WriteString(fmt.Sprintf("#### %s `%s`\n\n", f.getSeverityBadge(issue.Severity), issue.ProductID))
			output.WriteString(fmt.Sprintf("**Description:** %s\n\n", issue.Description))
			output.WriteString(fmt.Sprintf("**Expected:** %s | **Actual:** %s\n\n", issue.ExpectedValue, issue.ActualValue))
			if issue.SuggestedAction != "" {
				output.WriteString(fmt.Sprintf("**Suggested Fix:** %s\n\n", issue.SuggestedAction))
			}
			output.WriteString("---\n\n")
		}

		if len(issues) > len(report.SampleIssues[issueType]) {
			output.WriteString(fmt.Sprintf("*... and %d more*\n\n", len(issues)-len(report.SampleIssues[issueType])))
		}
	}
}

func (f *MarkdownFormatter) getSeverityBadge(severity Severity) string {
	switch severity {
	case SeverityCritical:
		return "🔴 **CRITICAL**"
	case SeverityWarning:
		return "🟡 **WARNING**"
	case SeverityInfo:
		return "🔵 **INFO**"
	default:
		return "⚪ **UNKNOWN**"
	}
}

// CSVFormatter emits one row per issue for spreadsheet analysis.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(report *Report) (string, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)

	header := []string{"product_id", "issue_type", "severity", "description", "actual_value", "expected_value", "suggested_action"}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, issueType := range IssueTypes {
		for _, issue := range report.IssuesByType[issueType] {
			row := []string{
				issue.ProductID,
				string(issue.Type),
				issue.Severity.String(),
				issue.Description,
				issue.ActualValue,
				issue.ExpectedValue,
				issue.SuggestedAction,
			}
			if err := writer.Write(row); err != nil {
				return "", fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return output.String(), nil
}

func GetFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONFormatter()
	case "markdown", "md":
		return NewMarkdownFormatter()
	case "csv":
		return NewCSVFormatter()
	case "table":
		fallthrough
	default:
		return NewTableFormatter(isTerminal())
	}
}

func titleCase(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return fileInfo.Mode()&os.ModeCharDevice != 0
}
