package methods

import (
	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/ports"
)

var _ ports.MethodStrategy = (*SimpleAverageStrategy)(nil)

// SimpleAverageStrategy implements the simple average method: requirement
// scores are averaged within each category and category scores are averaged
// into the overall score, with no weighting anywhere.
//
// The strategy is stateless and safe for concurrent use.
type SimpleAverageStrategy struct{}

// NewSimpleAverageStrategy creates the simple average strategy.
func NewSimpleAverageStrategy() *SimpleAverageStrategy { return &SimpleAverageStrategy{} }

// Method returns domain.MethodSimpleAverage.
func (s *SimpleAverageStrategy) Method() domain.ScoringMethod { return domain.MethodSimpleAverage }

// Aggregate averages requirement scores per category, then averages the
// contributing category scores. Empty categories are excluded rather than
// counted as zero.
func (s *SimpleAverageStrategy) Aggregate(
	eval *domain.Evaluation,
	vendorID string,
	scores []domain.RequirementScore,
) (domain.AggregatedResult, error) {
	catScores := rollupCategories(eval, scores, unitWeight)
	overall, partial := combineGroups(categoryGroups(eval, catScores, false))
	return buildResult(eval, vendorID, s.Method(), scores, catScores, overall, partial), nil
}

// Validate reports whether the strategy is ready for use. The simple
// average strategy has no configuration.
func (s *SimpleAverageStrategy) Validate() error { return nil }
