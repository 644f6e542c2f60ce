package domain

import "time"

// Confidence expresses how certain an evaluator is about their score.
// It is optional audit metadata and never influences aggregation.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether the confidence is a known level or unset.
func (c Confidence) Valid() bool {
	switch c {
	case "", ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ScoreEntry is one evaluator's judgment of one vendor against one
// requirement. Entries are append-only: a re-submission by the same
// evaluator for the same key produces a new version and the prior version
// is retained for audit.
type ScoreEntry struct {
	// ID uniquely identifies this entry version.
	ID string `json:"id"`

	// EvaluationID references the owning evaluation.
	EvaluationID string `json:"evaluation_id"`

	// EvaluatorID identifies the submitting evaluator.
	EvaluatorID string `json:"evaluator_id"`

	// VendorID identifies the vendor being scored.
	VendorID string `json:"vendor_id"`

	// RequirementID identifies the requirement being scored.
	RequirementID string `json:"requirement_id"`

	// StakeholderAreaID is the evaluator's scoring lane. Required under the
	// multi-stakeholder method, empty otherwise.
	StakeholderAreaID string `json:"stakeholder_area_id,omitempty"`

	// Score is the numeric judgment, within the evaluation's scale bounds.
	Score float64 `json:"score"`

	// Evidence justifies the score. Mandatory when the score sits at either
	// extreme of the scale.
	Evidence string `json:"evidence,omitempty"`

	// Confidence is optional certainty metadata.
	Confidence Confidence `json:"confidence,omitempty"`

	// Version is the 1-based submission count for this evaluator's key.
	// The highest version is the current one.
	Version int `json:"version"`

	// CreatedAt records when the entry was appended.
	CreatedAt time.Time `json:"created_at"`

	// SupersededBy references the ConsensusEntry that superseded this entry
	// for its (vendor, requirement) pair, when one exists.
	SupersededBy string `json:"superseded_by,omitempty"`
}

// ConsensusEntry is a single team-agreed score that supersedes the
// individual entries for a (vendor, requirement) pair. Individual entries
// remain stored for audit but are no longer used in aggregation.
type ConsensusEntry struct {
	// ID uniquely identifies this consensus record.
	ID string `json:"id"`

	// EvaluationID references the owning evaluation.
	EvaluationID string `json:"evaluation_id"`

	// VendorID identifies the vendor the consensus applies to.
	VendorID string `json:"vendor_id"`

	// RequirementID identifies the requirement the consensus applies to.
	RequirementID string `json:"requirement_id"`

	// Score is the agreed score, within the evaluation's scale bounds.
	Score float64 `json:"score"`

	// Evidence records the rationale. Unlike individual entries it is
	// always mandatory: a consensus score is always subject to audit.
	Evidence string `json:"evidence"`

	// FacilitatorID identifies who drove the consensus session.
	FacilitatorID string `json:"facilitator_id"`

	// DerivedFrom lists the ScoreEntry IDs considered in the session.
	DerivedFrom []string `json:"derived_from,omitempty"`

	// CreatedAt records when the consensus was recorded.
	CreatedAt time.Time `json:"created_at"`

	// Superseded marks a consensus that was reopened and replaced. It stays
	// stored to preserve the decision history; only a non-superseded entry
	// is authoritative for aggregation.
	Superseded bool `json:"superseded,omitempty"`
}

// ConsensusState names the workflow state of a (vendor, requirement) pair.
type ConsensusState string

// Workflow states for a scoring pair.
const (
	// StateIndividual is the initial state: zero or more individual entries
	// and no consensus activity.
	StateIndividual ConsensusState = "individual"

	// StateUnderConsensus means a facilitated session is open and individual
	// entries are read-only reference material.
	StateUnderConsensus ConsensusState = "under_consensus"

	// StateConsensed means an authoritative consensus has been recorded.
	// The state is terminal for the pair but reversible via reopening.
	StateConsensed ConsensusState = "consensed"
)
