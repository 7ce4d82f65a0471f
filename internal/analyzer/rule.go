// Package analyzer evaluates catalog products against business-quality
// rules and aggregates the violations into a report.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/catalogchecker/catalog-quality-checker/internal/catalog"
	"github.com/catalogchecker/catalog-quality-checker/internal/config"
	"github.com/catalogchecker/catalog-quality-checker/internal/report"
)

// Rule inspects one product and optionally emits one issue. Analyze must
// be a pure function of its input: no shared mutable state, no I/O. The
// returned bool is false when the product passes; a rule never returns a
// sentinel issue for a passing product. The emitted severity may differ
// from DefaultSeverity for rules with per-instance overrides.
type Rule interface {
	IssueType() report.IssueType
	DefaultSeverity() report.Severity
	Description() string
	Analyze(product catalog.Product) (report.QualityIssue, bool)
}

// DefaultRules returns a fresh list of all six built-in rules in their
// canonical order. Callers own the slice and may filter it freely.
func DefaultRules(cfg *config.RulesConfig) []Rule {
	return []Rule{
		NewCostHigherThanPriceRule(),
		NewRatingReviewMismatchRule(),
		NewInactiveWithDiscountRule(),
		NewOutOfStockRule(),
		NewFutureRestockDateRule(),
		NewDeadStockRule(cfg.DeadStockDays, cfg.DeadStockWarningQuantity),
	}
}

// CriticalRules returns the built-in rules whose declared default severity
// is critical. The filter looks at the declared default only, not at
// per-instance overrides.
func CriticalRules(cfg *config.RulesConfig) []Rule {
	var critical []Rule
	for _, rule := range DefaultRules(cfg) {
		if rule.DefaultSeverity() == report.SeverityCritical {
			critical = append(critical, rule)
		}
	}
	return critical
}

// SelectRules resolves a rule-set selector: "default" (or empty) for all
// rules, "critical" for critical-only, anything else is a substring match
// on issue-type names. An error is returned when nothing matches; callers
// are expected to warn and fall back to the default set.
func SelectRules(cfg *config.RulesConfig, selector string) ([]Rule, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "", "default", "all":
		return DefaultRules(cfg), nil
	case "critical", "critical-only":
		return CriticalRules(cfg), nil
	}

	needle := strings.ToLower(strings.TrimSpace(selector))
	var matched []Rule
	for _, rule := range DefaultRules(cfg) {
		if strings.Contains(string(rule.IssueType()), needle) {
			matched = append(matched, rule)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no rules match selector %q", selector)
	}
	return matched, nil
}
