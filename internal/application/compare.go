package application

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

// Compare builds a side-by-side matrix for the requested vendors: overall
// and per-category scores, per-requirement scores, and each category's gap
// to the top-scoring vendor. It is a pure function over aggregated results
// and introduces no new state. An empty vendor list compares every
// non-excluded vendor.
func (e *Engine) Compare(ctx context.Context, eval *domain.Evaluation, vendorIDs []string) (domain.ComparisonMatrix, error) {
	ctx, span := e.tracer.Start(ctx, "engine.compare", trace.WithAttributes(
		attribute.String("evaluation.id", eval.ID),
		attribute.Int("vendor.count", len(vendorIDs)),
	))
	defer span.End()

	if err := e.validator.Validate(eval).Err(); err != nil {
		return domain.ComparisonMatrix{}, err
	}

	if len(vendorIDs) == 0 {
		for _, v := range eval.ActiveVendors() {
			vendorIDs = append(vendorIDs, v.ID)
		}
	}

	results := make([]domain.AggregatedResult, 0, len(vendorIDs))
	for _, id := range vendorIDs {
		if _, ok := eval.VendorByID(id); !ok {
			return domain.ComparisonMatrix{}, fmt.Errorf("%w: %s", domain.ErrUnknownVendor, id)
		}
		result, err := e.aggregateVendor(ctx, eval, id)
		if err != nil {
			return domain.ComparisonMatrix{}, err
		}
		results = append(results, result)
	}
	rankResults(results)

	return buildMatrix(eval, results), nil
}

// buildMatrix derives category leaders and per-vendor gaps from ranked
// aggregated results.
func buildMatrix(eval *domain.Evaluation, results []domain.AggregatedResult) domain.ComparisonMatrix {
	matrix := domain.ComparisonMatrix{
		EvaluationID:    eval.ID,
		Method:          eval.Method,
		CategoryLeaders: make(map[string]string),
	}

	// Category leaders are determined among vendors with at least one
	// contributing score in the category.
	best := make(map[string]float64)
	for _, result := range results {
		for catID, cs := range result.CategoryScores {
			if cs.Scored == 0 {
				continue
			}
			score, seen := best[catID]
			if !seen || cs.Score > score {
				best[catID] = cs.Score
				matrix.CategoryLeaders[catID] = result.VendorID
			}
		}
	}

	for rank, result := range results {
		row := domain.VendorComparison{
			VendorID:        result.VendorID,
			Rank:            rank + 1,
			OverallScore:    result.OverallScore,
			NormalizedScore: result.NormalizedScore,
			Completeness:    result.Completeness,
			Partial:         result.Partial,
			Categories:      make(map[string]domain.CategoryComparison, len(result.CategoryScores)),
			Requirements:    result.RequirementScores,
		}
		for catID, cs := range result.CategoryScores {
			comparison := domain.CategoryComparison{CategoryID: catID, Score: cs.Score}
			if top, ok := best[catID]; ok {
				comparison.Gap = top - cs.Score
			}
			row.Categories[catID] = comparison
		}
		matrix.Vendors = append(matrix.Vendors, row)
	}
	return matrix
}
