// Package testutils provides shared fixtures for exercising the scoring
// engine in tests.
package testutils

import (
	"fmt"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

// EvaluationBuilder assembles evaluation configurations for tests with
// sensible defaults: a 0-5 whole-point scale and the simple average method.
// Weights are whatever the caller sets; the builder performs no validation
// so tests can construct deliberately broken configurations.
type EvaluationBuilder struct {
	eval domain.Evaluation
}

// NewEvaluation starts a builder for the given evaluation ID.
func NewEvaluation(id string) *EvaluationBuilder {
	return &EvaluationBuilder{eval: domain.Evaluation{
		ID:     id,
		Name:   fmt.Sprintf("evaluation %s", id),
		Method: domain.MethodSimpleAverage,
		Scale:  domain.DefaultScale(),
	}}
}

// WithMethod sets the scoring method.
func (b *EvaluationBuilder) WithMethod(method domain.ScoringMethod) *EvaluationBuilder {
	b.eval.Method = method
	return b
}

// WithScale sets the scoring scale.
func (b *EvaluationBuilder) WithScale(min, max float64, halfPoints bool) *EvaluationBuilder {
	b.eval.Scale = domain.Scale{Min: min, Max: max, HalfPoints: halfPoints}
	return b
}

// WithCategory appends a category.
func (b *EvaluationBuilder) WithCategory(id string, weight float64) *EvaluationBuilder {
	b.eval.Categories = append(b.eval.Categories, domain.Category{
		ID:     id,
		Name:   fmt.Sprintf("category %s", id),
		Weight: weight,
	})
	return b
}

// WithArchivedCategory appends a category excluded from aggregation.
func (b *EvaluationBuilder) WithArchivedCategory(id string, weight float64) *EvaluationBuilder {
	b.eval.Categories = append(b.eval.Categories, domain.Category{
		ID:       id,
		Name:     fmt.Sprintf("category %s", id),
		Weight:   weight,
		Archived: true,
	})
	return b
}

// WithArea appends a stakeholder area.
func (b *EvaluationBuilder) WithArea(id string, weight float64) *EvaluationBuilder {
	b.eval.StakeholderAreas = append(b.eval.StakeholderAreas, domain.StakeholderArea{
		ID:     id,
		Name:   fmt.Sprintf("area %s", id),
		Weight: weight,
	})
	return b
}

// WithRequirement appends a requirement in the given category.
func (b *EvaluationBuilder) WithRequirement(id, categoryID string, priority domain.Priority, weight float64) *EvaluationBuilder {
	b.eval.Requirements = append(b.eval.Requirements, domain.Requirement{
		ID:         id,
		CategoryID: categoryID,
		Title:      fmt.Sprintf("requirement %s", id),
		Priority:   priority,
		Weight:     weight,
	})
	return b
}

// WithDraftRequirement appends a requirement still out of scope.
func (b *EvaluationBuilder) WithDraftRequirement(id, categoryID string, priority domain.Priority) *EvaluationBuilder {
	b.eval.Requirements = append(b.eval.Requirements, domain.Requirement{
		ID:         id,
		CategoryID: categoryID,
		Title:      fmt.Sprintf("requirement %s", id),
		Priority:   priority,
		Draft:      true,
	})
	return b
}

// WithVendor appends a vendor.
func (b *EvaluationBuilder) WithVendor(id string) *EvaluationBuilder {
	b.eval.Vendors = append(b.eval.Vendors, domain.Vendor{
		ID:   id,
		Name: fmt.Sprintf("vendor %s", id),
	})
	return b
}

// WithExcludedVendor appends a vendor dropped from scoring and ranking.
func (b *EvaluationBuilder) WithExcludedVendor(id string) *EvaluationBuilder {
	b.eval.Vendors = append(b.eval.Vendors, domain.Vendor{
		ID:       id,
		Name:     fmt.Sprintf("vendor %s", id),
		Excluded: true,
	})
	return b
}

// Build returns the assembled evaluation.
func (b *EvaluationBuilder) Build() *domain.Evaluation {
	eval := b.eval
	return &eval
}
