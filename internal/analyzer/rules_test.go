package analyzer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/catalogchecker/catalog-quality-checker/internal/catalog"
	"github.com/catalogchecker/catalog-quality-checker/internal/report"
)

// healthyProduct passes every built-in rule.
func healthyProduct(id string) catalog.Product {
	return catalog.Product{
		ID:              id,
		Name:            "USB-C Cable",
		Category:        "Electronics",
		Price:           decimal.NewFromInt(10),
		Cost:            decimal.NewFromInt(5),
		StockQuantity:   5,
		SalesCount:      3,
		Rating:          4.5,
		ReviewCount:     12,
		IsActive:        true,
		Discount:        0,
		LastRestockDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestHealthyProductPassesAllRules(t *testing.T) {
	product := healthyProduct("p-1")

	for _, rule := range DefaultRules(testRulesConfig()) {
		if issue, ok := rule.Analyze(product); ok {
			t.Errorf("Rule %s flagged a healthy product: %s", rule.IssueType(), issue.Description)
		}
	}
}

func TestCostHigherThanPriceRule(t *testing.T) {
	rule := NewCostHigherThanPriceRule()

	tests := []struct {
		name      string
		price     int64
		cost      int64
		wantIssue bool
	}{
		{"cost exceeds price", 100, 150, true},
		{"cost equals price", 100, 100, false},
		{"cost below price", 100, 50, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			product := healthyProduct("p-1")
			product.Price = decimal.NewFromInt(test.price)
			product.Cost = decimal.NewFromInt(test.cost)

			issue, ok := rule.Analyze(product)
			if ok != test.wantIssue {
				t.Fatalf("Expected issue=%v, got %v", test.wantIssue, ok)
			}
			if !ok {
				return
			}

			if issue.Severity != report.SeverityCritical {
				t.Errorf("Expected critical severity, got %s", issue.Severity)
			}
			if issue.ProductID != "p-1" {
				t.Errorf("Expected product id p-1, got %s", issue.ProductID)
			}
		})
	}
}

func TestCostHigherThanPriceRule_LossPerUnit(t *testing.T) {
	rule := NewCostHigherThanPriceRule()

	product := healthyProduct("p-loss")
	product.Price = decimal.NewFromInt(100)
	product.Cost = decimal.NewFromInt(150)

	issue, ok := rule.Analyze(product)
	if !ok {
		t.Fatal("Expected an issue for cost > price")
	}
	if !strings.Contains(issue.Description, "losing 50 per unit") {
		t.Errorf("Expected loss of 50 in description, got: %s", issue.Description)
	}
}

func TestRatingReviewMismatchRule(t *testing.T) {
	rule := NewRatingReviewMismatchRule()

	tests := []struct {
		name      string
		rating    float64
		reviews   int
		wantIssue bool
	}{
		{"rating without reviews", 4.5, 0, true},
		{"reviews without rating", 0, 7, true},
		{"both present", 4.5, 7, false},
		{"both absent", 0, 0, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			product := healthyProduct("p-1")
			product.Rating = test.rating
			product.ReviewCount = test.reviews

			issue, ok := rule.Analyze(product)
			if ok != test.wantIssue {
				t.Fatalf("Expected issue=%v, got %v", test.wantIssue, ok)
			}
			if ok && issue.Severity != report.SeverityWarning {
				t.Errorf("Expected warning severity, got %s", issue.Severity)
			}
		})
	}
}

func TestInactiveWithDiscountRule(t *testing.T) {
	rule := NewInactiveWithDiscountRule()

	tests := []struct {
		name      string
		active    bool
		discount  float64
		wantIssue bool
	}{
		{"inactive with discount", false, 20, true},
		{"inactive without discount", false, 0, false},
		{"active with discount", true, 20, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			product := healthyProduct("p-1")
			product.IsActive = test.active
			product.Discount = test.discount

			issue, ok := rule.Analyze(product)
			if ok != test.wantIssue {
				t.Fatalf("Expected issue=%v, got %v", test.wantIssue, ok)
			}
			if ok && issue.Severity != report.SeverityCritical {
				t.Errorf("Expected critical severity, got %s", issue.Severity)
			}
		})
	}
}

func TestOutOfStockRule_SeverityDependsOnActive(t *testing.T) {
	rule := NewOutOfStockRule()

	tests := []struct {
		name         string
		stock        int
		active       bool
		wantIssue    bool
		wantSeverity report.Severity
	}{
		{"active and out of stock", 0, true, true, report.SeverityWarning},
		{"inactive and out of stock", 0, false, true, report.SeverityInfo},
		{"in stock", 3, true, false, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			product := healthyProduct("p-1")
			product.StockQuantity = test.stock
			product.IsActive = test.active
			product.SalesCount = 1 // keep the dead-stock condition out of the way

			issue, ok := rule.Analyze(product)
			if ok != test.wantIssue {
				t.Fatalf("Expected issue=%v, got %v", test.wantIssue, ok)
			}
			if ok && issue.Severity != test.wantSeverity {
				t.Errorf("Expected severity %s, got %s", test.wantSeverity, issue.Severity)
			}
		})
	}
}

func TestOutOfStockRule_DeclaredDefaultIsWarning(t *testing.T) {
	// The declared default drives critical-only filtering, not the
	// per-instance override.
	if NewOutOfStockRule().DefaultSeverity() != report.SeverityWarning {
		t.Error("Expected out-of-stock default severity to be warning")
	}
}

func TestFutureRestockDateRule(t *testing.T) {
	rule := NewFutureRestockDateRule()
	rule.now = func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		restocked time.Time
		wantIssue bool
	}{
		{"future date", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"analysis date", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"past date", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			product := healthyProduct("p-1")
			product.LastRestockDate = test.restocked

			issue, ok := rule.Analyze(product)
			if ok != test.wantIssue {
				t.Fatalf("Expected issue=%v, got %v", test.wantIssue, ok)
			}
			if ok && issue.Severity != report.SeverityInfo {
				t.Errorf("Expected info severity, got %s", issue.Severity)
			}
		})
	}
}

func TestDeadStockRule(t *testing.T) {
	rule := NewDeadStockRule(180, 100)

	tests := []struct {
		name         string
		stock        int
		sales        int
		wantIssue    bool
		wantSeverity report.Severity
	}{
		{"small dead stock", 50, 0, true, report.SeverityInfo},
		{"large dead stock", 200, 0, true, report.SeverityWarning},
		{"boundary quantity stays info", 100, 0, true, report.SeverityInfo},
		{"has sales", 200, 1, false, 0},
		{"no stock", 0, 0, false, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			product := healthyProduct("p-1")
			product.StockQuantity = test.stock
			product.SalesCount = test.sales

			issue, ok := rule.Analyze(product)
			if ok != test.wantIssue {
				t.Fatalf("Expected issue=%v, got %v", test.wantIssue, ok)
			}
			if ok && issue.Severity != test.wantSeverity {
				t.Errorf("Expected severity %s, got %s", test.wantSeverity, issue.Severity)
			}
		})
	}
}

func TestDeadStockRule_ConfigurableWarningQuantity(t *testing.T) {
	rule := NewDeadStockRule(180, 50)

	product := healthyProduct("p-1")
	product.StockQuantity = 60
	product.SalesCount = 0

	issue, ok := rule.Analyze(product)
	if !ok {
		t.Fatal("Expected a dead-stock issue")
	}
	if issue.Severity != report.SeverityWarning {
		t.Errorf("Expected a lower threshold to escalate to warning, got %s", issue.Severity)
	}

	product.StockQuantity = 50
	issue, ok = rule.Analyze(product)
	if !ok {
		t.Fatal("Expected a dead-stock issue")
	}
	if issue.Severity != report.SeverityInfo {
		t.Errorf("Expected stock at the threshold to stay info, got %s", issue.Severity)
	}
}
