// Package methods provides the aggregation strategies that implement the
// ports.MethodStrategy interface, one per supported scoring method.
package methods

import (
	"github.com/spac3man-G/vendoreval/internal/domain"
)

// weightFunc returns the weight a requirement contributes inside its
// category roll-up.
type weightFunc func(domain.RequirementScore) float64

// unitWeight treats every scored requirement equally (plain mean).
func unitWeight(domain.RequirementScore) float64 { return 1 }

// configuredWeight uses the requirement's effective configured weight.
func configuredWeight(rs domain.RequirementScore) float64 { return rs.Weight }

// priorityWeight uses the fixed MoSCoW multiplier table.
func priorityWeight(rs domain.RequirementScore) float64 { return rs.Priority.Multiplier() }

// rollupCategories computes per-category weighted means over the scored
// requirements. Requirements without a usable score are excluded from the
// roll-up; they never count as zero.
func rollupCategories(eval *domain.Evaluation, scores []domain.RequirementScore, wf weightFunc) map[string]domain.CategoryScore {
	byCategory := make(map[string][]domain.RequirementScore, len(eval.Categories))
	for _, rs := range scores {
		byCategory[rs.CategoryID] = append(byCategory[rs.CategoryID], rs)
	}

	out := make(map[string]domain.CategoryScore)
	for _, c := range eval.ActiveCategories() {
		cs := domain.CategoryScore{CategoryID: c.ID, Name: c.Name, Weight: c.Weight}
		var sum, weightSum float64
		for _, rs := range byCategory[c.ID] {
			cs.Requirements++
			if !rs.Scored {
				continue
			}
			w := wf(rs)
			if w <= 0 {
				continue
			}
			cs.Scored++
			sum += rs.Score * w
			weightSum += w
		}
		if weightSum > 0 {
			cs.Score = sum / weightSum
		}
		out[c.ID] = cs
	}
	return out
}

// weightedGroup is one contribution to an overall roll-up: a category or a
// stakeholder area.
type weightedGroup struct {
	score        float64
	weight       float64
	contributing bool
}

// combineGroups merges group scores into an overall score. Groups with no
// contributing requirements are excluded and the remaining weights are
// renormalized, so an empty category reduces coverage instead of dragging
// the score to zero. The second return value flags that exclusion happened.
func combineGroups(groups []weightedGroup) (float64, bool) {
	var sum, weightSum float64
	partial := false
	for _, g := range groups {
		if !g.contributing {
			partial = true
			continue
		}
		sum += g.score * g.weight
		weightSum += g.weight
	}
	if weightSum == 0 {
		return 0, len(groups) > 0
	}
	return sum / weightSum, partial
}

// categoryGroups shapes category roll-ups for combineGroups, weighting each
// category by the supplied weight selector.
func categoryGroups(eval *domain.Evaluation, catScores map[string]domain.CategoryScore, weighted bool) []weightedGroup {
	cats := eval.ActiveCategories()
	groups := make([]weightedGroup, 0, len(cats))
	for _, c := range cats {
		cs := catScores[c.ID]
		w := 1.0
		if weighted {
			w = c.Weight
		}
		groups = append(groups, weightedGroup{
			score:        cs.Score,
			weight:       w,
			contributing: cs.Scored > 0,
		})
	}
	return groups
}

// buildResult assembles the method-independent parts of an aggregated
// result: completeness, the MustHave tie-break score, normalization, and
// the per-requirement score map.
func buildResult(
	eval *domain.Evaluation,
	vendorID string,
	method domain.ScoringMethod,
	scores []domain.RequirementScore,
	catScores map[string]domain.CategoryScore,
	overall float64,
	partial bool,
) domain.AggregatedResult {
	reqScores := make(map[string]domain.RequirementScore, len(scores))
	var scored, mustHaveCount int
	var mustHaveSum float64
	for _, rs := range scores {
		reqScores[rs.RequirementID] = rs
		if !rs.Scored {
			continue
		}
		scored++
		if rs.Priority == domain.PriorityMustHave {
			mustHaveSum += rs.Score
			mustHaveCount++
		}
	}

	var completeness, mustHave float64
	if len(scores) > 0 {
		completeness = float64(scored) / float64(len(scores))
	}
	if mustHaveCount > 0 {
		mustHave = mustHaveSum / float64(mustHaveCount)
	}

	return domain.AggregatedResult{
		VendorID:          vendorID,
		Method:            method,
		OverallScore:      overall,
		NormalizedScore:   eval.Scale.Normalize(overall),
		CategoryScores:    catScores,
		RequirementScores: reqScores,
		Completeness:      completeness,
		Partial:           partial,
		MustHaveScore:     mustHave,
	}
}
