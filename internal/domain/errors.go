package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the engine's failure taxonomy. All are value-returned;
// none are used for control flow inside the core.
var (
	// ErrConfigurationInvalid indicates the evaluation's scoring
	// configuration failed validation. Aggregation fails closed on it.
	ErrConfigurationInvalid = errors.New("configuration invalid")

	// ErrInvalidScore indicates a score outside the scale bounds or off the
	// configured granularity.
	ErrInvalidScore = errors.New("invalid score")

	// ErrMissingStakeholderArea indicates a multi-stakeholder submission
	// without a valid stakeholder area.
	ErrMissingStakeholderArea = errors.New("missing stakeholder area")

	// ErrEvidenceRequired indicates an extreme score submitted without
	// justifying evidence.
	ErrEvidenceRequired = errors.New("evidence required")

	// ErrConsensusAlreadyOpen indicates a second consensus session was
	// opened for a pair that already has one in progress.
	ErrConsensusAlreadyOpen = errors.New("consensus session already open")

	// ErrConsensusNotOpen indicates a consensus was recorded for a pair
	// with no open session.
	ErrConsensusNotOpen = errors.New("no consensus session open")

	// ErrConsensusRecorded indicates an open attempt on a pair that already
	// carries an authoritative consensus; reopening is the only way back.
	ErrConsensusRecorded = errors.New("consensus already recorded")

	// ErrNoConsensus indicates a reopen attempt on a pair without a
	// recorded consensus.
	ErrNoConsensus = errors.New("no consensus recorded")

	// ErrScoringLocked indicates an individual submission on a pair whose
	// consensus workflow has started.
	ErrScoringLocked = errors.New("individual scoring locked by consensus workflow")

	// ErrPermissionDenied indicates the caller's role does not allow the
	// requested operation.
	ErrPermissionDenied = errors.New("role not permitted for operation")

	// ErrUnknownVendor indicates a vendor ID that is not part of the
	// evaluation.
	ErrUnknownVendor = errors.New("unknown vendor")

	// ErrUnknownRequirement indicates a requirement ID that is not part of
	// the evaluation.
	ErrUnknownRequirement = errors.New("unknown requirement")

	// ErrUnknownMethod indicates a scoring method with no registered
	// aggregation strategy.
	ErrUnknownMethod = errors.New("unknown scoring method")
)

// Violation describes a single configuration problem in caller-correctable
// terms.
type Violation struct {
	// Field names the configuration element at fault, for example
	// "categories.weight" or "requirements[r7].category_id".
	Field string `json:"field"`

	// Message explains the problem.
	Message string `json:"message"`
}

// String renders the violation as "field: message".
func (v Violation) String() string { return v.Field + ": " + v.Message }

// ValidationResult accumulates configuration violations so a caller can
// surface all problems at once instead of fixing them one round-trip at a
// time.
type ValidationResult struct {
	// EvaluationID identifies the validated evaluation.
	EvaluationID string `json:"evaluation_id"`

	// Violations lists every detected problem. Empty means valid.
	Violations []Violation `json:"violations,omitempty"`
}

// Add appends a violation to the result.
func (r *ValidationResult) Add(field, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Valid reports whether no violations were recorded.
func (r *ValidationResult) Valid() bool { return len(r.Violations) == 0 }

// Err returns nil for a valid result, or a *ConfigurationError carrying
// every violation otherwise.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &ConfigurationError{EvaluationID: r.EvaluationID, Violations: r.Violations}
}

// ConfigurationError is the fail-closed error returned when an evaluation's
// scoring configuration cannot be used. It unwraps to
// ErrConfigurationInvalid.
type ConfigurationError struct {
	// EvaluationID identifies the misconfigured evaluation.
	EvaluationID string

	// Violations lists the individual problems.
	Violations []Violation
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("configuration invalid for evaluation %s: %s",
		e.EvaluationID, strings.Join(msgs, "; "))
}

// Unwrap returns ErrConfigurationInvalid so callers can match with errors.Is.
func (e *ConfigurationError) Unwrap() error { return ErrConfigurationInvalid }

// SubmissionError reports a rejected score submission with enough detail
// for the evaluator to correct it immediately.
type SubmissionError struct {
	// EvaluatorID identifies the submitting evaluator.
	EvaluatorID string

	// VendorID identifies the scored vendor.
	VendorID string

	// RequirementID identifies the scored requirement.
	RequirementID string

	// Err is the underlying sentinel describing the rejection.
	Err error
}

// Error implements the error interface for SubmissionError.
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission rejected: evaluator=%s, vendor=%s, requirement=%s, err=%v",
		e.EvaluatorID, e.VendorID, e.RequirementID, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is matching.
func (e *SubmissionError) Unwrap() error { return e.Err }

// NewSubmissionError creates a SubmissionError with the given details.
func NewSubmissionError(evaluatorID, vendorID, requirementID string, err error) *SubmissionError {
	return &SubmissionError{
		EvaluatorID:   evaluatorID,
		VendorID:      vendorID,
		RequirementID: requirementID,
		Err:           err,
	}
}

// ConsensusError reports a failed consensus transition for a
// (vendor, requirement) pair.
type ConsensusError struct {
	// VendorID identifies the pair's vendor.
	VendorID string

	// RequirementID identifies the pair's requirement.
	RequirementID string

	// Err is the underlying sentinel describing the conflict.
	Err error
}

// Error implements the error interface for ConsensusError.
func (e *ConsensusError) Error() string {
	return fmt.Sprintf("consensus error: vendor=%s, requirement=%s, err=%v",
		e.VendorID, e.RequirementID, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is matching.
func (e *ConsensusError) Unwrap() error { return e.Err }

// NewConsensusError creates a ConsensusError with the given details.
func NewConsensusError(vendorID, requirementID string, err error) *ConsensusError {
	return &ConsensusError{VendorID: vendorID, RequirementID: requirementID, Err: err}
}
