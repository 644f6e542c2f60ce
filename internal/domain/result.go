package domain

// RequirementScore is the effective per-(vendor, requirement) score fed
// into a roll-up: the current consensus score when one exists, otherwise
// the mean of the current individual entries.
type RequirementScore struct {
	// RequirementID identifies the requirement.
	RequirementID string `json:"requirement_id"`

	// CategoryID identifies the owning category.
	CategoryID string `json:"category_id"`

	// Priority carries the requirement's MoSCoW classification for
	// priority-weighted roll-ups and ranking tie-breaks.
	Priority Priority `json:"priority"`

	// Weight is the requirement's effective weight under the requirement
	// weighted method (default 1, WontHave 0).
	Weight float64 `json:"weight"`

	// Score is the pooled effective score across all contributing entries.
	// Meaningless when Scored is false.
	Score float64 `json:"score"`

	// Scored reports whether at least one usable score exists. Unscored
	// requirements are excluded from roll-ups rather than counted as zero.
	Scored bool `json:"scored"`

	// FromConsensus reports whether Score came from an authoritative
	// consensus entry rather than an individual mean.
	FromConsensus bool `json:"from_consensus"`

	// SampleSize is the number of individual entries behind the score
	// (1 when FromConsensus).
	SampleSize int `json:"sample_size"`

	// AreaScores holds per-stakeholder-area means, populated only under the
	// multi-stakeholder method when no consensus overrides the pair.
	AreaScores map[string]float64 `json:"area_scores,omitempty"`
}

// CategoryScore is a category-level roll-up for one vendor.
type CategoryScore struct {
	// CategoryID identifies the category.
	CategoryID string `json:"category_id"`

	// Name is the category label, carried for report rendering.
	Name string `json:"name"`

	// Weight is the category's configured weight (after any
	// renormalization caused by empty-category exclusion).
	Weight float64 `json:"weight"`

	// Score is the rolled-up category score on the evaluation scale.
	Score float64 `json:"score"`

	// Requirements counts the category's in-scope requirements.
	Requirements int `json:"requirements"`

	// Scored counts the requirements that contributed a usable score.
	Scored int `json:"scored"`
}

// StakeholderScore is an area-level roll-up for one vendor under the
// multi-stakeholder method.
type StakeholderScore struct {
	// AreaID identifies the stakeholder area.
	AreaID string `json:"area_id"`

	// Name is the area label.
	Name string `json:"name"`

	// Weight is the area's configured weight (after any renormalization).
	Weight float64 `json:"weight"`

	// Score is the rolled-up area score on the evaluation scale.
	Score float64 `json:"score"`
}

// AggregatedResult is the derived scoring outcome for one vendor. It is
// always recomputable from the ledger and configuration and is never a
// source of truth.
type AggregatedResult struct {
	// VendorID identifies the vendor.
	VendorID string `json:"vendor_id"`

	// Method records which aggregation scheme produced the result.
	Method ScoringMethod `json:"method"`

	// OverallScore is the final combined score on the evaluation scale.
	OverallScore float64 `json:"overall_score"`

	// NormalizedScore is OverallScore expressed as a 0-100 percentage for
	// display-agnostic comparison.
	NormalizedScore float64 `json:"normalized_score"`

	// CategoryScores maps category ID to its roll-up.
	CategoryScores map[string]CategoryScore `json:"category_scores"`

	// StakeholderScores maps area ID to its roll-up. Empty except under the
	// multi-stakeholder method.
	StakeholderScores map[string]StakeholderScore `json:"stakeholder_scores,omitempty"`

	// RequirementScores maps requirement ID to its effective score.
	RequirementScores map[string]RequirementScore `json:"requirement_scores"`

	// Completeness is the fraction of in-scope requirements with at least
	// one usable score, preventing silent penalties for evaluator gaps.
	Completeness float64 `json:"completeness"`

	// Partial flags that at least one category (or stakeholder area) had no
	// contributing requirements and was excluded with its weight
	// renormalized across the rest.
	Partial bool `json:"partial"`

	// MustHaveScore is the mean effective score across scored MustHave
	// requirements. It is the second ranking tie-break after completeness.
	MustHaveScore float64 `json:"must_have_score"`
}

// CategoryComparison is one vendor's category standing within a
// comparison matrix.
type CategoryComparison struct {
	// CategoryID identifies the category.
	CategoryID string `json:"category_id"`

	// Score is the vendor's category score.
	Score float64 `json:"score"`

	// Gap is the numeric difference from the top-scoring vendor in the
	// category (zero for the leader).
	Gap float64 `json:"gap"`
}

// VendorComparison is one vendor's row in a comparison matrix.
type VendorComparison struct {
	// VendorID identifies the vendor.
	VendorID string `json:"vendor_id"`

	// Rank is the vendor's 1-based position under the ranking order.
	Rank int `json:"rank"`

	// OverallScore is the vendor's combined score on the evaluation scale.
	OverallScore float64 `json:"overall_score"`

	// NormalizedScore is the 0-100 percentage form of OverallScore.
	NormalizedScore float64 `json:"normalized_score"`

	// Completeness is the vendor's scored-requirement fraction.
	Completeness float64 `json:"completeness"`

	// Partial flags empty-category exclusion in the underlying result.
	Partial bool `json:"partial"`

	// Categories maps category ID to the vendor's score and gap.
	Categories map[string]CategoryComparison `json:"categories"`

	// Requirements maps requirement ID to the vendor's effective score.
	Requirements map[string]RequirementScore `json:"requirements"`
}

// ComparisonMatrix is the side-by-side view of the requested vendors,
// a pure function over their aggregated results.
type ComparisonMatrix struct {
	// EvaluationID identifies the evaluation compared.
	EvaluationID string `json:"evaluation_id"`

	// Method records the aggregation scheme in effect.
	Method ScoringMethod `json:"method"`

	// Vendors holds the compared vendors in ranking order.
	Vendors []VendorComparison `json:"vendors"`

	// CategoryLeaders maps category ID to the vendor ID with the highest
	// score in that category among the compared vendors.
	CategoryLeaders map[string]string `json:"category_leaders"`
}
