package report

import "fmt"

// Severity is the priority tier of an issue. Lower value = higher priority.
type Severity int

const (
	SeverityCritical Severity = 1
	SeverityWarning  Severity = 2
	SeverityInfo     Severity = 3
)

// Severities lists all severities in priority order.
var Severities = []Severity{SeverityCritical, SeverityWarning, SeverityInfo}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity resolves a severity name as supplied on the command line.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "critical":
		return SeverityCritical, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (expected critical, warning, or info)", name)
	}
}

// IssueType identifies which built-in rule produced an issue.
type IssueType string

const (
	IssueCostHigherThanPrice  IssueType = "cost_higher_than_price"
	IssueRatingReviewMismatch IssueType = "rating_review_mismatch"
	IssueInactiveWithDiscount IssueType = "inactive_with_discount"
	IssueOutOfStock           IssueType = "out_of_stock"
	IssueFutureRestockDate    IssueType = "future_restock_date"
	IssueDeadStock            IssueType = "dead_stock"
)

// DisplayName returns the human-readable name used in report headings.
func (t IssueType) DisplayName() string {
	switch t {
	case IssueCostHigherThanPrice:
		return "Cost Higher Than Price"
	case IssueRatingReviewMismatch:
		return "Rating/Review Mismatch"
	case IssueInactiveWithDiscount:
		return "Inactive With Discount"
	case IssueOutOfStock:
		return "Out Of Stock"
	case IssueFutureRestockDate:
		return "Future Restock Date"
	case IssueDeadStock:
		return "Dead Stock"
	default:
		return string(t)
	}
}

// QualityIssue records one violation of one rule by one product.
// It is immutable once created; issues are never merged or updated.
type QualityIssue struct {
	ProductID       string    `json:"product_id"`
	Type            IssueType `json:"type"`
	Severity        Severity  `json:"severity"`
	Description     string    `json:"description"`
	ActualValue     string    `json:"actual_value"`
	ExpectedValue   string    `json:"expected_value"`
	SuggestedAction string    `json:"suggested_action,omitempty"`
}

// SampleSize is the number of issues per type retained for display.
const SampleSize = 5

// IssueTypes lists all issue types in rule-table order, used for
// deterministic display sequencing.
var IssueTypes = []IssueType{
	IssueCostHigherThanPrice,
	IssueRatingReviewMismatch,
	IssueInactiveWithDiscount,
	IssueOutOfStock,
	IssueFutureRestockDate,
	IssueDeadStock,
}

// Report aggregates a single analysis run. Issue slices preserve
// discovery order: product order outer, rule order inner.
type Report struct {
	TotalProducts    int                          `json:"total_products"`
	TotalIssues      int                          `json:"total_issues"`
	IssuesByType     map[IssueType][]QualityIssue `json:"issues_by_type"`
	IssuesBySeverity map[Severity][]QualityIssue  `json:"issues_by_severity"`
	SampleIssues     map[IssueType][]QualityIssue `json:"sample_issues"`
	QualityScore     float64                      `json:"quality_score"`
	RuleDescriptions map[IssueType]string         `json:"rule_descriptions"`
}
