package analyzer

import (
	"fmt"
	"time"

	"github.com/catalogchecker/catalog-quality-checker/internal/catalog"
	"github.com/catalogchecker/catalog-quality-checker/internal/report"
)

// OutOfStockRule flags products with no units on hand. Active products get
// a warning; inactive ones are informational only.
type OutOfStockRule struct{}

func NewOutOfStockRule() *OutOfStockRule {
	return &OutOfStockRule{}
}

func (r *OutOfStockRule) IssueType() report.IssueType {
	return report.IssueOutOfStock
}

func (r *OutOfStockRule) DefaultSeverity() report.Severity {
	return report.SeverityWarning
}

func (r *OutOfStockRule) Description() string {
	return "Detects products with zero stock; active products lose sales while out of stock"
}

func (r *OutOfStockRule) Analyze(product catalog.Product) (report.QualityIssue, bool) {
	if !product.IsOutOfStock() {
		return report.QualityIssue{}, false
	}

	severity := report.SeverityWarning
	action := "Restock the product or mark it inactive"
	if !product.IsActive {
		severity = report.SeverityInfo
		action = "No action needed unless the product is reactivated"
	}

	return report.QualityIssue{
		ProductID:       product.ID,
		Type:            r.IssueType(),
		Severity:        severity,
		Description:     "Product has zero units in stock",
		ActualValue:     "stock_quantity=0",
		ExpectedValue:   "stock_quantity > 0",
		SuggestedAction: action,
	}, true
}

// FutureRestockDateRule flags restock dates that lie after the analysis
// date, which indicates a data-entry error. The clock is injectable so
// tests can pin the analysis date.
type FutureRestockDateRule struct {
	now func() time.Time
}

func NewFutureRestockDateRule() *FutureRestockDateRule {
	return &FutureRestockDateRule{now: time.Now}
}

func (r *FutureRestockDateRule) IssueType() report.IssueType {
	return report.IssueFutureRestockDate
}

func (r *FutureRestockDateRule) DefaultSeverity() report.Severity {
	return report.SeverityInfo
}

func (r *FutureRestockDateRule) Description() string {
	return "Detects last-restock dates in the future, which can only come from a data-entry error"
}

func (r *FutureRestockDateRule) Analyze(product catalog.Product) (report.QualityIssue, bool) {
	today := r.now()
	if !product.LastRestockDate.After(today) {
		return report.QualityIssue{}, false
	}

	return report.QualityIssue{
		ProductID:       product.ID,
		Type:            r.IssueType(),
		Severity:        r.DefaultSeverity(),
		Description:     fmt.Sprintf("Last restock date %s is in the future", product.LastRestockDate.Format("2006-01-02")),
		ActualValue:     fmt.Sprintf("last_restock_date=%s", product.LastRestockDate.Format("2006-01-02")),
		ExpectedValue:   fmt.Sprintf("last_restock_date <= %s", today.Format("2006-01-02")),
		SuggestedAction: "Correct the restock date in the source system",
	}, true
}

// DeadStockRule flags stocked products with no recorded sales. Large
// quantities of unsold stock are escalated to a warning.
//
// The rule only consults the cumulative sales count: a product with even
// one recorded sale is never flagged, no matter how long ago that sale
// happened. The days-since-last-sale threshold is carried for a future
// last-sale-date check but is not consulted by the current condition.
type DeadStockRule struct {
	daysSinceLastSale int
	warningQuantity   int
}

// NewDeadStockRule builds the rule; warningQuantity is the stock level
// above which dead stock is escalated from info to warning.
func NewDeadStockRule(daysSinceLastSale, warningQuantity int) *DeadStockRule {
	return &DeadStockRule{
		daysSinceLastSale: daysSinceLastSale,
		warningQuantity:   warningQuantity,
	}
}

func (r *DeadStockRule) IssueType() report.IssueType {
	return report.IssueDeadStock
}

func (r *DeadStockRule) DefaultSeverity() report.Severity {
	return report.SeverityInfo
}

func (r *DeadStockRule) Description() string {
	return fmt.Sprintf("Detects stocked products with no recorded sales in %d days, tying up warehouse capital", r.daysSinceLastSale)
}

func (r *DeadStockRule) Analyze(product catalog.Product) (report.QualityIssue, bool) {
	if product.StockQuantity == 0 || product.HasSales() {
		return report.QualityIssue{}, false
	}

	severity := report.SeverityInfo
	if product.StockQuantity > r.warningQuantity {
		severity = report.SeverityWarning
	}

	return report.QualityIssue{
		ProductID:       product.ID,
		Type:            r.IssueType(),
		Severity:        severity,
		Description:     fmt.Sprintf("Product holds %d units with no recorded sales", product.StockQuantity),
		ActualValue:     fmt.Sprintf("stock_quantity=%d sales_count=0", product.StockQuantity),
		ExpectedValue:   "stocked products have at least one sale",
		SuggestedAction: "Consider a clearance promotion or delisting the product",
	}, true
}
