package analyzer

import (
	"fmt"

	"github.com/catalogchecker/catalog-quality-checker/internal/catalog"
	"github.com/catalogchecker/catalog-quality-checker/internal/report"
)

// RatingReviewMismatchRule flags products whose rating and review count
// contradict each other: a rating without reviews, or reviews without a
// rating.
type RatingReviewMismatchRule struct{}

func NewRatingReviewMismatchRule() *RatingReviewMismatchRule {
	return &RatingReviewMismatchRule{}
}

func (r *RatingReviewMismatchRule) IssueType() report.IssueType {
	return report.IssueRatingReviewMismatch
}

func (r *RatingReviewMismatchRule) DefaultSeverity() report.Severity {
	return report.SeverityWarning
}

func (r *RatingReviewMismatchRule) Description() string {
	return "Detects products where the rating and review count contradict each other, indicating corrupt or imported review data"
}

func (r *RatingReviewMismatchRule) Analyze(product catalog.Product) (report.QualityIssue, bool) {
	ratingWithoutReviews := product.Rating > 0 && product.ReviewCount == 0
	reviewsWithoutRating := product.Rating == 0 && product.ReviewCount > 0
	if !ratingWithoutReviews && !reviewsWithoutRating {
		return report.QualityIssue{}, false
	}

	description := fmt.Sprintf("Product has a %.1f rating but no reviews", product.Rating)
	if reviewsWithoutRating {
		description = fmt.Sprintf("Product has %d reviews but no rating", product.ReviewCount)
	}

	return report.QualityIssue{
		ProductID:       product.ID,
		Type:            r.IssueType(),
		Severity:        r.DefaultSeverity(),
		Description:     description,
		ActualValue:     fmt.Sprintf("rating=%.1f review_count=%d", product.Rating, product.ReviewCount),
		ExpectedValue:   "rating and review count both zero or both positive",
		SuggestedAction: "Re-import review data for this product",
	}, true
}
