package application

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

// Aggregate computes one vendor's aggregated result on demand. It fails
// closed with a *domain.ConfigurationError when the evaluation's
// configuration does not validate; it never fails on missing score data,
// which only degrades the result's completeness.
func (e *Engine) Aggregate(ctx context.Context, eval *domain.Evaluation, vendorID string) (domain.AggregatedResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.aggregate", trace.WithAttributes(
		attribute.String("evaluation.id", eval.ID),
		attribute.String("vendor.id", vendorID),
	))
	defer span.End()
	start := e.clock()

	if err := e.validator.Validate(eval).Err(); err != nil {
		return domain.AggregatedResult{}, err
	}
	if _, ok := eval.VendorByID(vendorID); !ok {
		return domain.AggregatedResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownVendor, vendorID)
	}

	result, err := e.aggregateVendor(ctx, eval, vendorID)
	if err != nil {
		return domain.AggregatedResult{}, err
	}

	e.metrics.RecordLatency("aggregate", e.clock().Sub(start), map[string]string{
		"evaluation_id": eval.ID,
		"method":        eval.Method.String(),
	})
	e.metrics.RecordHistogram("aggregation_completeness", result.Completeness, map[string]string{
		"evaluation_id": eval.ID,
	})
	return result, nil
}

// AggregateAll computes results for every non-excluded vendor and returns
// them in ranking order. Aggregation is read-only, so vendors are processed
// concurrently; a ranking computed mid-submission is a valid ranking of the
// data available at that instant.
func (e *Engine) AggregateAll(ctx context.Context, eval *domain.Evaluation) ([]domain.AggregatedResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.aggregate_all", trace.WithAttributes(
		attribute.String("evaluation.id", eval.ID),
	))
	defer span.End()

	if err := e.validator.Validate(eval).Err(); err != nil {
		return nil, err
	}

	vendors := eval.ActiveVendors()
	results := make([]domain.AggregatedResult, len(vendors))

	g, gctx := errgroup.WithContext(ctx)
	for i, vendor := range vendors {
		i, vendor := i, vendor
		g.Go(func() error {
			result, err := e.aggregateVendor(gctx, eval, vendor.ID)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rankResults(results)
	e.metrics.RecordCounter("rankings_computed_total", 1, map[string]string{
		"evaluation_id": eval.ID,
		"method":        eval.Method.String(),
	})
	return results, nil
}

// aggregateVendor runs the method strategy over the vendor's effective
// requirement scores. Callers must have validated the configuration.
func (e *Engine) aggregateVendor(ctx context.Context, eval *domain.Evaluation, vendorID string) (domain.AggregatedResult, error) {
	strategy, err := e.registry.Strategy(eval.Method)
	if err != nil {
		return domain.AggregatedResult{}, err
	}

	scores, err := e.effectiveScores(ctx, eval, vendorID)
	if err != nil {
		return domain.AggregatedResult{}, err
	}

	result, err := strategy.Aggregate(eval, vendorID, scores)
	if err != nil {
		return domain.AggregatedResult{}, fmt.Errorf("aggregation failed for vendor %s: %w", vendorID, err)
	}
	return result, nil
}

// effectiveScores assembles the per-requirement inputs for a roll-up: the
// current consensus score when one exists, otherwise the mean of the
// current individual entries (per stakeholder area under the
// multi-stakeholder method). Draft and WontHave requirements are omitted
// entirely; unscored requirements are included but marked unscored so
// strategies exclude them instead of counting zeros.
func (e *Engine) effectiveScores(ctx context.Context, eval *domain.Evaluation, vendorID string) ([]domain.RequirementScore, error) {
	requirements := eval.InScopeRequirements()
	out := make([]domain.RequirementScore, 0, len(requirements))

	for _, req := range requirements {
		rs := domain.RequirementScore{
			RequirementID: req.ID,
			CategoryID:    req.CategoryID,
			Priority:      req.Priority,
			Weight:        req.EffectiveWeight(),
		}

		consensus, err := e.ledger.CurrentConsensus(ctx, eval.ID, vendorID, req.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read consensus for requirement %s: %w", req.ID, err)
		}
		if consensus != nil {
			rs.Score = consensus.Score
			rs.Scored = true
			rs.FromConsensus = true
			rs.SampleSize = 1
			out = append(out, rs)
			continue
		}

		entries, err := e.ledger.CurrentScores(ctx, eval.ID, vendorID, req.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read scores for requirement %s: %w", req.ID, err)
		}
		if len(entries) > 0 {
			rs.Score = meanScore(entries)
			rs.Scored = true
			rs.SampleSize = len(entries)
			if eval.Method.UsesStakeholderAreas() {
				rs.AreaScores = areaMeans(entries)
			}
		}
		out = append(out, rs)
	}
	return out, nil
}

// meanScore averages the current entries. Submission order is irrelevant:
// the reduction is over a set, which keeps aggregation order-independent.
func meanScore(entries []domain.ScoreEntry) float64 {
	var sum float64
	for _, entry := range entries {
		sum += entry.Score
	}
	return sum / float64(len(entries))
}

// areaMeans averages the current entries per stakeholder area.
func areaMeans(entries []domain.ScoreEntry) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, entry := range entries {
		if entry.StakeholderAreaID == "" {
			continue
		}
		sums[entry.StakeholderAreaID] += entry.Score
		counts[entry.StakeholderAreaID]++
	}
	if len(sums) == 0 {
		return nil
	}
	out := make(map[string]float64, len(sums))
	for areaID, sum := range sums {
		out[areaID] = sum / float64(counts[areaID])
	}
	return out
}

// rankResults orders results descending by overall score, breaking ties by
// higher completeness, then higher MustHave score, then vendor ID for
// determinism.
func rankResults(results []domain.AggregatedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		if a.Completeness != b.Completeness {
			return a.Completeness > b.Completeness
		}
		if a.MustHaveScore != b.MustHaveScore {
			return a.MustHaveScore > b.MustHaveScore
		}
		return a.VendorID < b.VendorID
	})
}
