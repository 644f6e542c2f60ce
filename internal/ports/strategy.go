package ports

import (
	"github.com/spac3man-G/vendoreval/internal/domain"
)

// MethodStrategy rolls effective per-requirement scores into category,
// stakeholder, and overall scores for a single vendor. One strategy exists
// per scoring method; all are stateless and safe for concurrent use.
//
// Strategies never fail on missing data: an unscored requirement degrades
// completeness, it does not error. The engine guarantees the evaluation's
// configuration has validated before a strategy runs.
type MethodStrategy interface {
	// Method returns the scoring method this strategy implements.
	Method() domain.ScoringMethod

	// Aggregate computes the vendor's aggregated result from the effective
	// requirement scores assembled by the engine. The scores slice carries
	// one element per in-scope requirement, scored or not.
	Aggregate(eval *domain.Evaluation, vendorID string, scores []domain.RequirementScore) (domain.AggregatedResult, error)

	// Validate checks the strategy's own configuration. It is called during
	// registry construction.
	Validate() error
}

// MethodRegistry resolves scoring methods to their strategies, mirroring
// how evaluation configurations reference methods by name.
type MethodRegistry interface {
	// Strategy returns the strategy for the method, or an error wrapping
	// domain.ErrUnknownMethod when none is registered.
	Strategy(method domain.ScoringMethod) (MethodStrategy, error)

	// Methods lists the registered methods in a stable order.
	Methods() []domain.ScoringMethod
}
