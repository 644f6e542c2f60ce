package methods

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/ports"
)

var _ ports.MethodStrategy = (*MultiStakeholderStrategy)(nil)

// Package-level validator instance for strategy configuration validation.
var validate = validator.New()

// MultiStakeholderConfig defines the configuration parameters for the
// multi-stakeholder strategy.
type MultiStakeholderConfig struct {
	// CategoryRollup selects how requirement scores combine inside each
	// stakeholder area: a plain mean, or category-weighted when the
	// evaluation's category weights should also shape area scores.
	CategoryRollup string `yaml:"category_rollup" json:"category_rollup" validate:"required,oneof=mean weighted"`
}

// DefaultMultiStakeholderConfig returns the plain-mean area roll-up.
func DefaultMultiStakeholderConfig() MultiStakeholderConfig {
	return MultiStakeholderConfig{CategoryRollup: "mean"}
}

// MultiStakeholderStrategy implements the multi-stakeholder method: each
// stakeholder area pools its own entries per requirement, area scores roll
// up per area, and the overall score combines area scores by area weight.
//
// A consensus entry collapses the area dimension for its pair: the agreed
// score stands in for every area.
type MultiStakeholderStrategy struct {
	config MultiStakeholderConfig
}

// NewMultiStakeholderStrategy creates a multi-stakeholder strategy with the
// specified configuration. It returns an error if the configuration is
// invalid.
func NewMultiStakeholderStrategy(config MultiStakeholderConfig) (*MultiStakeholderStrategy, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &MultiStakeholderStrategy{config: config}, nil
}

// Method returns domain.MethodMultiStakeholder.
func (s *MultiStakeholderStrategy) Method() domain.ScoringMethod {
	return domain.MethodMultiStakeholder
}

// Aggregate computes per-area roll-ups from area-scoped requirement scores
// and combines them by area weight. Areas with no contributing scores are
// excluded with the remaining area weights renormalized.
//
// Per-category scores are still reported, computed from the pooled
// requirement scores, so comparison matrices keep the same shape across
// methods.
func (s *MultiStakeholderStrategy) Aggregate(
	eval *domain.Evaluation,
	vendorID string,
	scores []domain.RequirementScore,
) (domain.AggregatedResult, error) {
	areaResults := make(map[string]domain.StakeholderScore, len(eval.StakeholderAreas))
	groups := make([]weightedGroup, 0, len(eval.StakeholderAreas))

	for _, area := range eval.StakeholderAreas {
		score, contributing := s.areaScore(eval, area.ID, scores)
		areaResults[area.ID] = domain.StakeholderScore{
			AreaID: area.ID,
			Name:   area.Name,
			Weight: area.Weight,
			Score:  score,
		}
		groups = append(groups, weightedGroup{
			score:        score,
			weight:       area.Weight,
			contributing: contributing,
		})
	}

	overall, partial := combineGroups(groups)
	catScores := rollupCategories(eval, scores, unitWeight)

	result := buildResult(eval, vendorID, s.Method(), scores, catScores, overall, partial)
	result.StakeholderScores = areaResults
	return result, nil
}

// areaScore rolls one stakeholder area's view of the requirement scores.
// Consensus-backed scores apply to every area; otherwise only the area's
// own pooled mean counts.
func (s *MultiStakeholderStrategy) areaScore(
	eval *domain.Evaluation,
	areaID string,
	scores []domain.RequirementScore,
) (float64, bool) {
	projected := make([]domain.RequirementScore, 0, len(scores))
	for _, rs := range scores {
		p := rs
		p.Scored = false
		if rs.FromConsensus {
			p.Scored = true
		} else if v, ok := rs.AreaScores[areaID]; ok {
			p.Scored = true
			p.Score = v
		}
		projected = append(projected, p)
	}

	if s.config.CategoryRollup == "weighted" {
		catScores := rollupCategories(eval, projected, unitWeight)
		return combineAreaCategories(eval, catScores)
	}

	var sum float64
	var count int
	for _, p := range projected {
		if p.Scored {
			sum += p.Score
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// combineAreaCategories applies category weights inside one area's roll-up.
func combineAreaCategories(eval *domain.Evaluation, catScores map[string]domain.CategoryScore) (float64, bool) {
	score, _ := combineGroups(categoryGroups(eval, catScores, true))
	for _, cs := range catScores {
		if cs.Scored > 0 {
			return score, true
		}
	}
	return 0, false
}

// Validate checks if the strategy is properly configured.
func (s *MultiStakeholderStrategy) Validate() error {
	if err := validate.Struct(s.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
