package methods

import (
	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/ports"
)

var _ ports.MethodStrategy = (*RequirementWeightedStrategy)(nil)

// RequirementWeightedStrategy implements the requirement weighted method:
// within each category, requirement scores are combined by their configured
// weights (default 1), and category scores are combined by category weight.
type RequirementWeightedStrategy struct{}

// NewRequirementWeightedStrategy creates the requirement weighted strategy.
func NewRequirementWeightedStrategy() *RequirementWeightedStrategy {
	return &RequirementWeightedStrategy{}
}

// Method returns domain.MethodRequirementWeighted.
func (s *RequirementWeightedStrategy) Method() domain.ScoringMethod {
	return domain.MethodRequirementWeighted
}

// Aggregate combines requirement scores by configured weight within each
// category, then applies category weights.
func (s *RequirementWeightedStrategy) Aggregate(
	eval *domain.Evaluation,
	vendorID string,
	scores []domain.RequirementScore,
) (domain.AggregatedResult, error) {
	catScores := rollupCategories(eval, scores, configuredWeight)
	overall, partial := combineGroups(categoryGroups(eval, catScores, true))
	return buildResult(eval, vendorID, s.Method(), scores, catScores, overall, partial), nil
}

// Validate reports whether the strategy is ready for use.
func (s *RequirementWeightedStrategy) Validate() error { return nil }
