package analyzer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/catalogchecker/catalog-quality-checker/internal/catalog"
	"github.com/catalogchecker/catalog-quality-checker/internal/report"
)

const defaultChunkSize = 1000

// Analyzer runs a fixed rule set over a product catalog. Chunks of
// products are evaluated concurrently; the final issue sequence always
// follows product order (outer) and rule order (inner) regardless of
// chunking.
type Analyzer struct {
	rules     []Rule
	chunkSize int
}

type Option func(*Analyzer)

// WithChunkSize sets the number of products evaluated per worker task.
// Non-positive values keep the default.
func WithChunkSize(size int) Option {
	return func(a *Analyzer) {
		if size > 0 {
			a.chunkSize = size
		}
	}
}

// New builds an Analyzer. An empty rule set is a configuration error the
// caller cannot recover from, so no Analyzer is returned.
func New(rules []Rule, opts ...Option) (*Analyzer, error) {
	if len(rules) == 0 {
		return nil, errors.New("analyzer requires at least one rule")
	}

	analyzer := &Analyzer{
		rules:     rules,
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(analyzer)
	}

	return analyzer, nil
}

// Analyze applies every rule to every product and collects the violations.
// A rule that panics on one product contributes nothing for that pair and
// the run continues; the fault is logged as a diagnostic only.
func (a *Analyzer) Analyze(products []catalog.Product) []report.QualityIssue {
	if len(products) == 0 {
		return nil
	}

	chunks := chunkProducts(products, a.chunkSize)
	results := make([][]report.QualityIssue, len(chunks))

	var wg sync.WaitGroup
	workers := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			workers <- struct{}{}
			defer func() { <-workers }()
			results[i] = a.analyzeChunk(chunks[i])
		}(i)
	}
	wg.Wait()

	// Merge keyed by chunk index, never by completion order.
	var issues []report.QualityIssue
	for _, chunkIssues := range results {
		issues = append(issues, chunkIssues...)
	}
	return issues
}

// Aggregate turns a flat issue list into a grouped, scored report. It is a
// pure function of its inputs plus the configured rule descriptions.
func (a *Analyzer) Aggregate(products []catalog.Product, issues []report.QualityIssue) *report.Report {
	result := &report.Report{
		TotalProducts:    len(products),
		TotalIssues:      len(issues),
		IssuesByType:     make(map[report.IssueType][]report.QualityIssue),
		IssuesBySeverity: make(map[report.Severity][]report.QualityIssue),
		SampleIssues:     make(map[report.IssueType][]report.QualityIssue),
		RuleDescriptions: make(map[report.IssueType]string, len(a.rules)),
	}

	for _, rule := range a.rules {
		result.RuleDescriptions[rule.IssueType()] = rule.Description()
	}

	for _, issue := range issues {
		result.IssuesByType[issue.Type] = append(result.IssuesByType[issue.Type], issue)
		result.IssuesBySeverity[issue.Severity] = append(result.IssuesBySeverity[issue.Severity], issue)
	}

	for issueType, typeIssues := range result.IssuesByType {
		result.SampleIssues[issueType] = typeIssues[:min(report.SampleSize, len(typeIssues))]
	}

	result.QualityScore = qualityScore(len(issues), len(products))

	return result
}

// AnalyzeAndReport is the Analyze + Aggregate composition.
func (a *Analyzer) AnalyzeAndReport(products []catalog.Product) *report.Report {
	return a.Aggregate(products, a.Analyze(products))
}

func (a *Analyzer) analyzeChunk(products []catalog.Product) []report.QualityIssue {
	var issues []report.QualityIssue
	for _, product := range products {
		for _, rule := range a.rules {
			if issue, ok := a.evaluate(rule, product); ok {
				issues = append(issues, issue)
			}
		}
	}
	return issues
}

// evaluate isolates a single (product, rule) fault: a panic is recovered,
// logged to the diagnostics side-channel, and treated as "no issue".
func (a *Analyzer) evaluate(rule Rule, product catalog.Product) (issue report.QualityIssue, ok bool) {
	defer func() {
		if fault := recover(); fault != nil {
			log.Warn().
				Str("product_id", product.ID).
				Str("issue_type", string(rule.IssueType())).
				Str("fault", fmt.Sprint(fault)).
				Msg("Rule evaluation failed, skipping product")
			issue = report.QualityIssue{}
			ok = false
		}
	}()

	return rule.Analyze(product)
}

func chunkProducts(products []catalog.Product, size int) [][]catalog.Product {
	var chunks [][]catalog.Product
	for start := 0; start < len(products); start += size {
		end := min(start+size, len(products))
		chunks = append(chunks, products[start:end])
	}
	return chunks
}

// qualityScore is 100 minus the issue rate as a percentage of products,
// clamped at 0. Products with multiple issues count multiple times, so the
// raw rate can exceed 100.
func qualityScore(totalIssues, totalProducts int) float64 {
	if totalProducts == 0 {
		return 100.0
	}
	score := 100.0 - float64(totalIssues)/float64(totalProducts)*100.0
	if score < 0 {
		return 0.0
	}
	return score
}
