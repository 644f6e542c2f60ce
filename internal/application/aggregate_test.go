package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/testutils"
)

func TestAggregateSimpleAverage(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	ctx := context.Background()

	_, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 4))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("bob", "v1", "r1", 2))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("alice", "v1", "r2", 5))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("alice", "v1", "r3", 4))
	require.NoError(t, err)

	result, err := engine.Aggregate(ctx, eval, "v1")
	require.NoError(t, err)

	// r1 pools to (4+2)/2 = 3; c1 = (3+5)/2 = 4; c2 = 4; overall = 4.
	assert.InDelta(t, 3.0, result.RequirementScores["r1"].Score, 1e-9)
	assert.Equal(t, 2, result.RequirementScores["r1"].SampleSize)
	assert.InDelta(t, 4.0, result.CategoryScores["c1"].Score, 1e-9)
	assert.InDelta(t, 4.0, result.OverallScore, 1e-9)
	assert.InDelta(t, 80.0, result.NormalizedScore, 1e-9)
	assert.InDelta(t, 1.0, result.Completeness, 1e-9)
	assert.False(t, result.Partial)
}

func TestAggregateFailsClosedOnInvalidConfig(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	eval.Method = domain.MethodCategoryWeighted
	eval.Categories[0].Weight = 10

	_, err := engine.Aggregate(context.Background(), eval, "v1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigurationInvalid)
}

func TestAggregateUnknownVendor(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Aggregate(context.Background(), simpleEval(), "v99")
	assert.ErrorIs(t, err, domain.ErrUnknownVendor)
}

func TestAggregateMissingDataDegradesGracefully(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	ctx := context.Background()

	_, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 4))
	require.NoError(t, err)

	result, err := engine.Aggregate(ctx, eval, "v1")
	require.NoError(t, err)

	// One of three in-scope requirements scored; c2 empty and excluded.
	assert.InDelta(t, 1.0/3.0, result.Completeness, 1e-9)
	assert.True(t, result.Partial)
	assert.InDelta(t, 4.0, result.OverallScore, 1e-9)
	assert.False(t, result.RequirementScores["r2"].Scored)
}

func TestAggregateConsensusPrecedence(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	ctx := context.Background()

	_, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 2))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("bob", "v1", "r1", 4))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("alice", "v1", "r2", 3))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("alice", "v1", "r3", 4))
	require.NoError(t, err)

	require.NoError(t, engine.OpenConsensus(ctx, eval, "v1", "r1", "carol", domain.RoleReviewer))
	req := consensusRequest(5)
	req.Evidence = "team agreed the integration gap was already closed"
	_, err = engine.RecordConsensus(ctx, eval, req)
	require.NoError(t, err)

	result, err := engine.Aggregate(ctx, eval, "v1")
	require.NoError(t, err)

	// Consensus 5 replaces the individual mean of 3 for r1.
	r1 := result.RequirementScores["r1"]
	assert.True(t, r1.FromConsensus)
	assert.InDelta(t, 5.0, r1.Score, 1e-9)
	assert.InDelta(t, 4.0, result.CategoryScores["c1"].Score, 1e-9)

	// After reopening, aggregation falls back to the individual entries
	// until a new consensus is recorded.
	require.NoError(t, engine.Reopen(ctx, eval, "v1", "r1", "carol", domain.RoleReviewer))

	result, err = engine.Aggregate(ctx, eval, "v1")
	require.NoError(t, err)
	r1 = result.RequirementScores["r1"]
	assert.False(t, r1.FromConsensus)
	assert.InDelta(t, 3.0, r1.Score, 1e-9)
}

func TestAggregateIgnoresWontHaveAndDraftRequirements(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	eval := simpleEval()
	withExtras := simpleEval()
	withExtras.Requirements = append(withExtras.Requirements,
		domain.Requirement{ID: "r4", CategoryID: "c1", Priority: domain.PriorityWontHave},
		domain.Requirement{ID: "r5", CategoryID: "c2", Priority: domain.PriorityMustHave, Draft: true},
	)

	// Both configurations share the evaluation ID, so the same ledger
	// entries feed both aggregations.
	_, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 4))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("alice", "v1", "r3", 2))
	require.NoError(t, err)

	base, err := engine.Aggregate(ctx, eval, "v1")
	require.NoError(t, err)
	extended, err := engine.Aggregate(ctx, withExtras, "v1")
	require.NoError(t, err)

	assert.InDelta(t, base.OverallScore, extended.OverallScore, 1e-9)
	assert.InDelta(t, base.Completeness, extended.Completeness, 1e-9)
	assert.NotContains(t, extended.RequirementScores, "r4")
	assert.NotContains(t, extended.RequirementScores, "r5")
}

func TestAggregateIsIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	ctx := context.Background()

	_, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 4))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("bob", "v1", "r2", 2))
	require.NoError(t, err)

	first, err := engine.Aggregate(ctx, eval, "v1")
	require.NoError(t, err)
	second, err := engine.Aggregate(ctx, eval, "v1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregateAllRanksVendors(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	ctx := context.Background()

	for req, score := range map[string]float64{"r1": 4, "r2": 4, "r3": 4} {
		_, err := engine.Submit(ctx, eval, submission("alice", "v1", req, score))
		require.NoError(t, err)
	}
	for req, score := range map[string]float64{"r1": 2, "r2": 2, "r3": 2} {
		_, err := engine.Submit(ctx, eval, submission("alice", "v2", req, score))
		require.NoError(t, err)
	}

	results, err := engine.AggregateAll(ctx, eval)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "v1", results[0].VendorID)
	assert.Equal(t, "v2", results[1].VendorID)
	assert.Greater(t, results[0].OverallScore, results[1].OverallScore)
}

func TestAggregateAllSkipsExcludedVendors(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := testutils.NewEvaluation("eval-1").
		WithCategory("c1", 100).
		WithRequirement("r1", "c1", domain.PriorityMustHave, 1).
		WithVendor("v1").
		WithExcludedVendor("v2").
		Build()
	ctx := context.Background()

	_, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 3))
	require.NoError(t, err)

	results, err := engine.AggregateAll(ctx, eval)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "v1", results[0].VendorID)
}

func TestConsensusPrecedenceUnderEveryMethod(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	// Weights chosen so the configuration validates under all five methods.
	eval := testutils.NewEvaluation("eval-1").
		WithCategory("c1", 60).
		WithCategory("c2", 40).
		WithArea("a1", 50).
		WithArea("a2", 50).
		WithRequirement("r1", "c1", domain.PriorityMustHave, 2).
		WithRequirement("r2", "c2", domain.PriorityShouldHave, 1).
		WithVendor("v1").
		Build()

	_, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 1))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("bob", "v1", "r1", 3))
	require.NoError(t, err)

	require.NoError(t, engine.OpenConsensus(ctx, eval, "v1", "r1", "carol", domain.RoleReviewer))
	_, err = engine.RecordConsensus(ctx, eval, consensusRequest(4))
	require.NoError(t, err)

	for _, method := range domain.Methods() {
		t.Run(method.String(), func(t *testing.T) {
			e := *eval
			e.Method = method

			result, err := engine.Aggregate(ctx, &e, "v1")
			require.NoError(t, err)

			r1 := result.RequirementScores["r1"]
			assert.True(t, r1.FromConsensus)
			assert.InDelta(t, 4.0, r1.Score, 1e-9)
		})
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	subs := []SubmitRequest{
		submission("alice", "v1", "r1", 4),
		submission("bob", "v1", "r1", 2),
		submission("carol", "v1", "r2", 3),
		submission("alice", "v1", "r3", 1),
	}
	ctx := context.Background()

	forward, _ := newTestEngine(t)
	for _, s := range subs {
		_, err := forward.Submit(ctx, simpleEval(), s)
		require.NoError(t, err)
	}
	reversed, _ := newTestEngine(t)
	for i := len(subs) - 1; i >= 0; i-- {
		_, err := reversed.Submit(ctx, simpleEval(), subs[i])
		require.NoError(t, err)
	}

	a, err := forward.Aggregate(ctx, simpleEval(), "v1")
	require.NoError(t, err)
	b, err := reversed.Aggregate(ctx, simpleEval(), "v1")
	require.NoError(t, err)

	assert.InDelta(t, a.OverallScore, b.OverallScore, 1e-9)
	assert.InDelta(t, a.Completeness, b.Completeness, 1e-9)
	assert.Equal(t, a.CategoryScores, b.CategoryScores)
}

func TestRankResultsTieBreaks(t *testing.T) {
	results := []domain.AggregatedResult{
		{VendorID: "v-low", OverallScore: 2},
		{VendorID: "v-b", OverallScore: 4, Completeness: 0.8, MustHaveScore: 4},
		{VendorID: "v-a", OverallScore: 4, Completeness: 0.8, MustHaveScore: 4},
		{VendorID: "v-complete", OverallScore: 4, Completeness: 1.0, MustHaveScore: 3},
		{VendorID: "v-must", OverallScore: 4, Completeness: 0.8, MustHaveScore: 5},
	}

	rankResults(results)

	order := make([]string, len(results))
	for i, r := range results {
		order[i] = r.VendorID
	}
	// Overall first, then completeness, then MustHave mean, then vendor ID.
	assert.Equal(t, []string{"v-complete", "v-must", "v-a", "v-b", "v-low"}, order)
}
