package methods

import (
	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/ports"
)

var _ ports.MethodStrategy = (*CategoryWeightedStrategy)(nil)

// CategoryWeightedStrategy implements the category weighted method:
// requirement scores are averaged within each category, and category scores
// are combined using the configured category weights.
//
// The engine guarantees category weights sum to 100 before this strategy
// runs; when empty categories are excluded the remaining weights are
// renormalized so results stay comparable across vendors.
type CategoryWeightedStrategy struct{}

// NewCategoryWeightedStrategy creates the category weighted strategy.
func NewCategoryWeightedStrategy() *CategoryWeightedStrategy { return &CategoryWeightedStrategy{} }

// Method returns domain.MethodCategoryWeighted.
func (s *CategoryWeightedStrategy) Method() domain.ScoringMethod {
	return domain.MethodCategoryWeighted
}

// Aggregate averages requirement scores per category and applies category
// weights to the contributing categories.
func (s *CategoryWeightedStrategy) Aggregate(
	eval *domain.Evaluation,
	vendorID string,
	scores []domain.RequirementScore,
) (domain.AggregatedResult, error) {
	catScores := rollupCategories(eval, scores, unitWeight)
	overall, partial := combineGroups(categoryGroups(eval, catScores, true))
	return buildResult(eval, vendorID, s.Method(), scores, catScores, overall, partial), nil
}

// Validate reports whether the strategy is ready for use.
func (s *CategoryWeightedStrategy) Validate() error { return nil }
