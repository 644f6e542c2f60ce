package methods

import (
	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/ports"
)

var _ ports.MethodStrategy = (*MoSCoWWeightedStrategy)(nil)

// MoSCoWWeightedStrategy implements the MoSCoW weighted method: configured
// requirement weights are overridden by the fixed priority multiplier table
// (MustHave=4, ShouldHave=2, CouldHave=1, WontHave=0) inside each category
// roll-up, and category scores are combined by category weight.
//
// The multiplier table is a constant, not configuration: changing a
// WontHave requirement's configured weight can never change a score.
type MoSCoWWeightedStrategy struct{}

// NewMoSCoWWeightedStrategy creates the MoSCoW weighted strategy.
func NewMoSCoWWeightedStrategy() *MoSCoWWeightedStrategy { return &MoSCoWWeightedStrategy{} }

// Method returns domain.MethodMoSCoWWeighted.
func (s *MoSCoWWeightedStrategy) Method() domain.ScoringMethod {
	return domain.MethodMoSCoWWeighted
}

// Aggregate combines requirement scores by priority multiplier within each
// category, then applies category weights.
func (s *MoSCoWWeightedStrategy) Aggregate(
	eval *domain.Evaluation,
	vendorID string,
	scores []domain.RequirementScore,
) (domain.AggregatedResult, error) {
	catScores := rollupCategories(eval, scores, priorityWeight)
	overall, partial := combineGroups(categoryGroups(eval, catScores, true))
	return buildResult(eval, vendorID, s.Method(), scores, catScores, overall, partial), nil
}

// Validate reports whether the strategy is ready for use.
func (s *MoSCoWWeightedStrategy) Validate() error { return nil }
