// Package application orchestrates the scoring engine: configuration
// validation, the score ledger and evidence policy, the consensus workflow,
// and aggregation over a ledger store.
package application

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

// WeightTolerance is the permitted floating-point slack when checking that
// configured weights sum to 100.
const WeightTolerance = 0.01

// ConfigValidator checks an evaluation's scoring configuration before it
// may gate submissions or feed aggregation. It returns every violation it
// finds, not just the first, so a configuration editor can surface all
// problems at once.
type ConfigValidator struct {
	validate *validator.Validate
}

// NewConfigValidator creates a configuration validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{validate: validator.New()}
}

// Validate runs structural and semantic validation over the evaluation.
// A non-empty result means the configuration fails closed: the engine
// refuses to aggregate until every violation is corrected.
func (cv *ConfigValidator) Validate(eval *domain.Evaluation) *domain.ValidationResult {
	result := &domain.ValidationResult{}
	if eval == nil {
		result.Add("evaluation", "evaluation is required")
		return result
	}
	result.EvaluationID = eval.ID

	cv.structural(eval, result)
	cv.method(eval, result)
	cv.scale(eval, result)
	cv.categoryWeights(eval, result)
	cv.stakeholderWeights(eval, result)
	cv.references(eval, result)
	return result
}

// structural applies struct-tag validation and reports each field error as
// its own violation.
func (cv *ConfigValidator) structural(eval *domain.Evaluation, result *domain.ValidationResult) {
	err := cv.validate.Struct(eval)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Add("evaluation", "structural validation failed: %v", err)
		return
	}
	for _, fe := range fieldErrs {
		result.Add(fe.Namespace(), "failed %q validation", fe.Tag())
	}
}

func (cv *ConfigValidator) method(eval *domain.Evaluation, result *domain.ValidationResult) {
	if !eval.Method.Valid() {
		result.Add("method", "unsupported scoring method %q", eval.Method)
	}
}

func (cv *ConfigValidator) scale(eval *domain.Evaluation, result *domain.ValidationResult) {
	if !eval.Scale.WellFormed() {
		result.Add("scale", "bounds [%g, %g] are not well-formed: min must be >= 0 and < max",
			eval.Scale.Min, eval.Scale.Max)
	}
}

func (cv *ConfigValidator) categoryWeights(eval *domain.Evaluation, result *domain.ValidationResult) {
	if !eval.Method.UsesCategoryWeights() {
		return
	}

	active := eval.ActiveCategories()
	if len(active) == 0 {
		result.Add("categories", "method %s requires at least one active category", eval.Method)
		return
	}

	var sum float64
	for _, c := range active {
		sum += c.Weight
	}
	if math.Abs(sum-100) > WeightTolerance {
		result.Add("categories.weight", "active category weights sum to %g, must sum to 100", sum)
	}
}

func (cv *ConfigValidator) stakeholderWeights(eval *domain.Evaluation, result *domain.ValidationResult) {
	if !eval.Method.UsesStakeholderAreas() {
		return
	}

	if len(eval.StakeholderAreas) == 0 {
		result.Add("stakeholder_areas", "method %s requires at least one stakeholder area", eval.Method)
		return
	}

	var sum float64
	for _, a := range eval.StakeholderAreas {
		sum += a.Weight
	}
	if math.Abs(sum-100) > WeightTolerance {
		result.Add("stakeholder_areas.weight", "stakeholder area weights sum to %g, must sum to 100", sum)
	}
}

// references checks identifier uniqueness and that every requirement points
// at an existing category.
func (cv *ConfigValidator) references(eval *domain.Evaluation, result *domain.ValidationResult) {
	seenCategories := make(map[string]bool, len(eval.Categories))
	for _, c := range eval.Categories {
		if seenCategories[c.ID] {
			result.Add(fmt.Sprintf("categories[%s]", c.ID), "duplicate category id")
		}
		seenCategories[c.ID] = true
	}

	seenAreas := make(map[string]bool, len(eval.StakeholderAreas))
	for _, a := range eval.StakeholderAreas {
		if seenAreas[a.ID] {
			result.Add(fmt.Sprintf("stakeholder_areas[%s]", a.ID), "duplicate stakeholder area id")
		}
		seenAreas[a.ID] = true
	}

	seenVendors := make(map[string]bool, len(eval.Vendors))
	for _, v := range eval.Vendors {
		if seenVendors[v.ID] {
			result.Add(fmt.Sprintf("vendors[%s]", v.ID), "duplicate vendor id")
		}
		seenVendors[v.ID] = true
	}

	seenRequirements := make(map[string]bool, len(eval.Requirements))
	for _, r := range eval.Requirements {
		if seenRequirements[r.ID] {
			result.Add(fmt.Sprintf("requirements[%s]", r.ID), "duplicate requirement id")
		}
		seenRequirements[r.ID] = true

		if !seenCategories[r.CategoryID] {
			result.Add(fmt.Sprintf("requirements[%s].category_id", r.ID),
				"references unknown category %q", r.CategoryID)
		}
	}
}
