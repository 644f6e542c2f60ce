package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

func seedComparisonScores(t *testing.T, engine *Engine, eval *domain.Evaluation) {
	t.Helper()
	ctx := context.Background()

	// v1 is strong in c1, v2 is strong in c2.
	for req, score := range map[string]float64{"r1": 4, "r2": 4, "r3": 1} {
		_, err := engine.Submit(ctx, eval, submission("alice", "v1", req, score))
		require.NoError(t, err)
	}
	for req, score := range map[string]float64{"r1": 2, "r2": 2, "r3": 4} {
		_, err := engine.Submit(ctx, eval, submission("alice", "v2", req, score))
		require.NoError(t, err)
	}
}

func TestCompareBuildsMatrix(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	seedComparisonScores(t, engine, eval)

	matrix, err := engine.Compare(context.Background(), eval, []string{"v1", "v2"})
	require.NoError(t, err)

	assert.Equal(t, "eval-1", matrix.EvaluationID)
	assert.Equal(t, domain.MethodSimpleAverage, matrix.Method)
	require.Len(t, matrix.Vendors, 2)

	// v1: c1 = 4, c2 = 1, overall = 2.5; v2: c1 = 2, c2 = 4, overall = 3.
	assert.Equal(t, "v2", matrix.Vendors[0].VendorID)
	assert.Equal(t, 1, matrix.Vendors[0].Rank)
	assert.Equal(t, "v1", matrix.Vendors[1].VendorID)
	assert.Equal(t, 2, matrix.Vendors[1].Rank)

	assert.Equal(t, "v1", matrix.CategoryLeaders["c1"])
	assert.Equal(t, "v2", matrix.CategoryLeaders["c2"])

	// Gap is the distance to the category leader, zero for the leader.
	assert.InDelta(t, 0.0, matrix.Vendors[1].Categories["c1"].Gap, 1e-9)
	assert.InDelta(t, 2.0, matrix.Vendors[0].Categories["c1"].Gap, 1e-9)
	assert.InDelta(t, 3.0, matrix.Vendors[1].Categories["c2"].Gap, 1e-9)
}

func TestCompareDefaultsToActiveVendors(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	seedComparisonScores(t, engine, eval)

	matrix, err := engine.Compare(context.Background(), eval, nil)
	require.NoError(t, err)
	assert.Len(t, matrix.Vendors, 2)
}

func TestCompareUnknownVendor(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Compare(context.Background(), simpleEval(), []string{"v1", "v99"})
	assert.ErrorIs(t, err, domain.ErrUnknownVendor)
}

func TestCompareFailsClosedOnInvalidConfig(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	eval.Method = domain.MethodCategoryWeighted
	eval.Categories[1].Weight = 99

	_, err := engine.Compare(context.Background(), eval, nil)
	assert.ErrorIs(t, err, domain.ErrConfigurationInvalid)
}

func TestCompareCarriesRequirementDetail(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	seedComparisonScores(t, engine, eval)

	matrix, err := engine.Compare(context.Background(), eval, []string{"v1"})
	require.NoError(t, err)
	require.Len(t, matrix.Vendors, 1)

	row := matrix.Vendors[0]
	require.Contains(t, row.Requirements, "r1")
	assert.InDelta(t, 4.0, row.Requirements["r1"].Score, 1e-9)
	assert.True(t, row.Requirements["r1"].Scored)
}
