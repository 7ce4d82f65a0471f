package report

// Acceptance thresholds for IsQualityAcceptable.
const (
	maxCriticalRatePercent = 5.0
	minAcceptableScore     = 80.0
)

// TypeStatistic summarizes one issue type across the catalog.
type TypeStatistic struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SeverityStatistic summarizes one severity tier across all issues.
type SeverityStatistic struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// IssuePercentage returns total issues as a percentage of total products.
// The rate can exceed 100 when products carry multiple issues.
func (r *Report) IssuePercentage() float64 {
	if r.TotalProducts == 0 {
		return 0
	}
	return float64(r.TotalIssues) / float64(r.TotalProducts) * 100.0
}

// IssueTypeStatistics returns per-type counts and their percentage of the
// product total.
func (r *Report) IssueTypeStatistics() map[IssueType]TypeStatistic {
	stats := make(map[IssueType]TypeStatistic, len(r.IssuesByType))
	for issueType, issues := range r.IssuesByType {
		percentage := 0.0
		if r.TotalProducts > 0 {
			percentage = float64(len(issues)) / float64(r.TotalProducts) * 100.0
		}
		stats[issueType] = TypeStatistic{Count: len(issues), Percentage: percentage}
	}
	return stats
}

// SeverityStatistics returns per-severity counts and their percentage of
// the issue total.
func (r *Report) SeverityStatistics() map[Severity]SeverityStatistic {
	stats := make(map[Severity]SeverityStatistic, len(r.IssuesBySeverity))
	for severity, issues := range r.IssuesBySeverity {
		percentage := 0.0
		if r.TotalIssues > 0 {
			percentage = float64(len(issues)) / float64(r.TotalIssues) * 100.0
		}
		stats[severity] = SeverityStatistic{Count: len(issues), Percentage: percentage}
	}
	return stats
}

// IsQualityAcceptable reports whether the catalog passes the acceptance
// gate: critical issues affect fewer than 5% of products and the quality
// score is at least 80. An empty catalog passes.
func (r *Report) IsQualityAcceptable() bool {
	criticalRate := 0.0
	if r.TotalProducts > 0 {
		criticalCount := len(r.IssuesBySeverity[SeverityCritical])
		criticalRate = float64(criticalCount) / float64(r.TotalProducts) * 100.0
	}
	return criticalRate < maxCriticalRatePercent && r.QualityScore >= minAcceptableScore
}

// FilterBySeverity returns a new Report restricted to issues of the given
// severity. Types with no remaining issues are dropped, samples are
// recomputed from the filtered lists, and TotalIssues is recomputed.
// TotalProducts, QualityScore, and RuleDescriptions pass through unchanged.
// The receiver is never mutated.
func (r *Report) FilterBySeverity(severity Severity) *Report {
	filtered := &Report{
		TotalProducts:    r.TotalProducts,
		IssuesByType:     make(map[IssueType][]QualityIssue),
		IssuesBySeverity: make(map[Severity][]QualityIssue),
		SampleIssues:     make(map[IssueType][]QualityIssue),
		QualityScore:     r.QualityScore,
		RuleDescriptions: r.RuleDescriptions,
	}

	total := 0
	for issueType, issues := range r.IssuesByType {
		var kept []QualityIssue
		for _, issue := range issues {
			if issue.Severity == severity {
				kept = append(kept, issue)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered.IssuesByType[issueType] = kept
		filtered.SampleIssues[issueType] = kept[:min(SampleSize, len(kept))]
		total += len(kept)
	}

	if issues, ok := r.IssuesBySeverity[severity]; ok && len(issues) > 0 {
		filtered.IssuesBySeverity[severity] = issues
	}
	filtered.TotalIssues = total

	return filtered
}
