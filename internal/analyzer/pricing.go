package analyzer

import (
	"fmt"

	"github.com/catalogchecker/catalog-quality-checker/internal/catalog"
	"github.com/catalogchecker/catalog-quality-checker/internal/report"
)

// CostHigherThanPriceRule flags products that sell below their unit cost.
type CostHigherThanPriceRule struct{}

func NewCostHigherThanPriceRule() *CostHigherThanPriceRule {
	return &CostHigherThanPriceRule{}
}

func (r *CostHigherThanPriceRule) IssueType() report.IssueType {
	return report.IssueCostHigherThanPrice
}

func (r *CostHigherThanPriceRule) DefaultSeverity() report.Severity {
	return report.SeverityCritical
}

func (r *CostHigherThanPriceRule) Description() string {
	return "Detects products whose unit cost exceeds their selling price, producing a guaranteed loss on every sale"
}

func (r *CostHigherThanPriceRule) Analyze(product catalog.Product) (report.QualityIssue, bool) {
	if !product.Cost.GreaterThan(product.Price) {
		return report.QualityIssue{}, false
	}

	loss := product.Cost.Sub(product.Price)
	return report.QualityIssue{
		ProductID:       product.ID,
		Type:            r.IssueType(),
		Severity:        r.DefaultSeverity(),
		Description:     fmt.Sprintf("Product costs %s but sells for %s, losing %s per unit", product.Cost, product.Price, loss),
		ActualValue:     fmt.Sprintf("cost=%s price=%s", product.Cost, product.Price),
		ExpectedValue:   "cost <= price",
		SuggestedAction: "Raise the selling price or renegotiate the supplier cost",
	}, true
}

// InactiveWithDiscountRule flags discounts configured on products that are
// no longer active for sale.
type InactiveWithDiscountRule struct{}

func NewInactiveWithDiscountRule() *InactiveWithDiscountRule {
	return &InactiveWithDiscountRule{}
}

func (r *InactiveWithDiscountRule) IssueType() report.IssueType {
	return report.IssueInactiveWithDiscount
}

func (r *InactiveWithDiscountRule) DefaultSeverity() report.Severity {
	return report.SeverityCritical
}

func (r *InactiveWithDiscountRule) Description() string {
	return "Detects inactive products that still carry a discount, which suggests a stale or misconfigured promotion"
}

func (r *InactiveWithDiscountRule) Analyze(product catalog.Product) (report.QualityIssue, bool) {
	if product.IsActive || product.Discount <= 0 {
		return report.QualityIssue{}, false
	}

	return report.QualityIssue{
		ProductID:       product.ID,
		Type:            r.IssueType(),
		Severity:        r.DefaultSeverity(),
		Description:     fmt.Sprintf("Inactive product has a %g%% discount configured", product.Discount),
		ActualValue:     fmt.Sprintf("is_active=false discount=%g%%", product.Discount),
		ExpectedValue:   "inactive products carry no discount",
		SuggestedAction: "Remove the discount or reactivate the product",
	}, true
}
