package application

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spac3man-G/vendoreval/infrastructure/methods"
	"github.com/spac3man-G/vendoreval/infrastructure/storage"
	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/testutils"
)

func newTestEngine(t *testing.T) (*Engine, *storage.MemoryLedger) {
	t.Helper()
	ledger := storage.NewMemoryLedger()
	registry, err := methods.NewRegistry()
	require.NoError(t, err)
	engine, err := NewEngine(ledger, registry)
	require.NoError(t, err)
	return engine, ledger
}

func simpleEval() *domain.Evaluation {
	return testutils.NewEvaluation("eval-1").
		WithCategory("c1", 60).
		WithCategory("c2", 40).
		WithRequirement("r1", "c1", domain.PriorityMustHave, 2).
		WithRequirement("r2", "c1", domain.PriorityShouldHave, 1).
		WithRequirement("r3", "c2", domain.PriorityCouldHave, 1).
		WithVendor("v1").
		WithVendor("v2").
		Build()
}

func submission(evaluator, vendor, requirement string, score float64) SubmitRequest {
	return SubmitRequest{
		EvaluatorID:   evaluator,
		Role:          domain.RoleEvaluator,
		VendorID:      vendor,
		RequirementID: requirement,
		Score:         score,
		Evidence:      "observed during demo",
	}
}

func TestNewEngineRequiresDependencies(t *testing.T) {
	registry, err := methods.NewRegistry()
	require.NoError(t, err)

	_, err = NewEngine(nil, registry)
	assert.Error(t, err)

	_, err = NewEngine(storage.NewMemoryLedger(), nil)
	assert.Error(t, err)
}

func TestSubmitAcceptsValidEntry(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()

	entry, err := engine.Submit(context.Background(), eval, submission("alice", "v1", "r1", 4))
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, 1, entry.Version)
	assert.Equal(t, "alice", entry.EvaluatorID)
	assert.Equal(t, 4.0, entry.Score)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestSubmitRejections(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()

	tests := []struct {
		name    string
		mutate  func(*SubmitRequest)
		wantErr error
	}{
		{
			"observer cannot score",
			func(r *SubmitRequest) { r.Role = domain.RoleObserver },
			domain.ErrPermissionDenied,
		},
		{
			"unknown vendor",
			func(r *SubmitRequest) { r.VendorID = "v99" },
			domain.ErrUnknownVendor,
		},
		{
			"unknown requirement",
			func(r *SubmitRequest) { r.RequirementID = "r99" },
			domain.ErrUnknownRequirement,
		},
		{
			"score above scale",
			func(r *SubmitRequest) { r.Score = 6 },
			domain.ErrInvalidScore,
		},
		{
			"score below scale",
			func(r *SubmitRequest) { r.Score = -1 },
			domain.ErrInvalidScore,
		},
		{
			"half point on whole point scale",
			func(r *SubmitRequest) { r.Score = 3.5 },
			domain.ErrInvalidScore,
		},
		{
			"maximum without evidence",
			func(r *SubmitRequest) { r.Score = 5; r.Evidence = "  " },
			domain.ErrEvidenceRequired,
		},
		{
			"minimum without evidence",
			func(r *SubmitRequest) { r.Score = 0; r.Evidence = "" },
			domain.ErrEvidenceRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := submission("alice", "v1", "r1", 3)
			tt.mutate(&req)

			_, err := engine.Submit(context.Background(), eval, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var subErr *domain.SubmissionError
			assert.ErrorAs(t, err, &subErr)
		})
	}
}

func TestSubmitExtremeWithEvidenceAccepted(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()

	req := submission("alice", "v1", "r1", 5)
	req.Evidence = "vendor exceeded every benchmark in the POC"

	_, err := engine.Submit(context.Background(), eval, req)
	assert.NoError(t, err)
}

func TestSubmitHalfPointScale(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	eval.Scale = domain.Scale{Min: 0, Max: 5, HalfPoints: true}

	req := submission("alice", "v1", "r1", 3.5)
	_, err := engine.Submit(context.Background(), eval, req)
	assert.NoError(t, err)

	req.Score = 3.25
	_, err = engine.Submit(context.Background(), eval, req)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)
}

func TestSubmitMultiStakeholderRequiresArea(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := testutils.NewEvaluation("eval-1").
		WithMethod(domain.MethodMultiStakeholder).
		WithCategory("c1", 100).
		WithArea("a1", 100).
		WithRequirement("r1", "c1", domain.PriorityMustHave, 1).
		WithVendor("v1").
		Build()

	req := submission("alice", "v1", "r1", 3)
	_, err := engine.Submit(context.Background(), eval, req)
	assert.ErrorIs(t, err, domain.ErrMissingStakeholderArea)

	req.StakeholderAreaID = "a9"
	_, err = engine.Submit(context.Background(), eval, req)
	assert.ErrorIs(t, err, domain.ErrMissingStakeholderArea)

	req.StakeholderAreaID = "a1"
	_, err = engine.Submit(context.Background(), eval, req)
	assert.NoError(t, err)
}

func TestSubmitInvalidConfidenceRejected(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()

	req := submission("alice", "v1", "r1", 3)
	req.Confidence = domain.Confidence("certain")

	_, err := engine.Submit(context.Background(), eval, req)
	assert.Error(t, err)
}

func TestResubmissionCreatesNewVersion(t *testing.T) {
	engine, ledger := newTestEngine(t)
	eval := simpleEval()
	ctx := context.Background()

	first, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 2))
	require.NoError(t, err)
	second, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 4))
	require.NoError(t, err)

	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)
	assert.NotEqual(t, first.ID, second.ID)

	current, err := ledger.CurrentScores(ctx, "eval-1", "v1", "r1")
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, 4.0, current[0].Score)

	versions, err := ledger.ScoreVersions(ctx, "eval-1", "v1", "r1")
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}

func TestSubmitLockedByConsensusWorkflow(t *testing.T) {
	engine, _ := newTestEngine(t)
	eval := simpleEval()
	ctx := context.Background()

	_, err := engine.Submit(ctx, eval, submission("alice", "v1", "r1", 3))
	require.NoError(t, err)

	require.NoError(t, engine.OpenConsensus(ctx, eval, "v1", "r1", "carol", domain.RoleReviewer))

	_, err = engine.Submit(ctx, eval, submission("bob", "v1", "r1", 2))
	assert.ErrorIs(t, err, domain.ErrScoringLocked)

	// Other pairs are unaffected.
	_, err = engine.Submit(ctx, eval, submission("bob", "v1", "r2", 2))
	assert.NoError(t, err)
	_, err = engine.Submit(ctx, eval, submission("bob", "v2", "r1", 2))
	assert.NoError(t, err)
}

func TestConcurrentSubmissions(t *testing.T) {
	engine, ledger := newTestEngine(t)
	eval := simpleEval()
	ctx := context.Background()

	const evaluators = 10
	var wg sync.WaitGroup
	for i := 0; i < evaluators; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := engine.Submit(ctx, eval,
				submission(fmt.Sprintf("evaluator-%d", n), "v1", "r1", 3))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	current, err := ledger.CurrentScores(ctx, "eval-1", "v1", "r1")
	require.NoError(t, err)
	assert.Len(t, current, evaluators)
}

func TestValidateConfig(t *testing.T) {
	engine, _ := newTestEngine(t)

	assert.True(t, engine.ValidateConfig(simpleEval()).Valid())

	broken := simpleEval()
	broken.Method = domain.MethodCategoryWeighted
	broken.Categories[0].Weight = 10
	assert.False(t, engine.ValidateConfig(broken).Valid())
}
