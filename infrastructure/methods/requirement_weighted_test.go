package methods

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

func TestRequirementWeightedAggregate(t *testing.T) {
	eval := twoCategoryEval()
	eval.Method = domain.MethodRequirementWeighted
	strategy := NewRequirementWeightedStrategy()

	scores := []domain.RequirementScore{
		scored("r1", "c1", domain.PriorityMustHave, 3, 4),
		scored("r2", "c1", domain.PriorityCouldHave, 1, 2),
		scored("r3", "c2", domain.PriorityMustHave, 1, 5),
	}

	result, err := strategy.Aggregate(eval, "v1", scores)
	require.NoError(t, err)

	// c1 = (4*3 + 2*1)/4 = 3.5, c2 = 5; overall = 3.5*0.7 + 5*0.3 = 3.95.
	assert.InDelta(t, 3.5, result.CategoryScores["c1"].Score, 1e-9)
	assert.InDelta(t, 3.95, result.OverallScore, 1e-9)
}

func TestRequirementWeightedDefaultWeight(t *testing.T) {
	eval := twoCategoryEval()
	eval.Method = domain.MethodRequirementWeighted
	strategy := NewRequirementWeightedStrategy()

	// Both weights 1, so the category score degrades to a plain mean.
	scores := []domain.RequirementScore{
		scored("r1", "c1", domain.PriorityMustHave, 1, 4),
		scored("r2", "c1", domain.PriorityCouldHave, 1, 2),
		scored("r3", "c2", domain.PriorityMustHave, 1, 5),
	}

	result, err := strategy.Aggregate(eval, "v1", scores)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, result.CategoryScores["c1"].Score, 1e-9)
}
