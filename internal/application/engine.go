package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/ports"
)

// tracerName identifies the engine's spans.
const tracerName = "github.com/spac3man-G/vendoreval/internal/application"

// Engine is the scoring core: it validates configurations, accepts ledger
// submissions under the evidence policy, drives the consensus workflow, and
// aggregates results on demand. It holds no score data itself; the ledger
// store is the single place entries live.
//
// All operations are safe for concurrent use. Submissions for overlapping
// pairs proceed in parallel; consensus transitions are serialized per pair.
type Engine struct {
	ledger    ports.LedgerStore
	registry  ports.MethodRegistry
	metrics   ports.MetricsCollector
	logger    *zap.Logger
	tracer    trace.Tracer
	validator *ConfigValidator
	evidence  *EvidencePolicy
	clock     func() time.Time

	// sessionMu serializes consensus transitions across all pairs; the
	// sessions map tracks which pairs have an open facilitated session.
	sessionMu sync.Mutex
	sessions  map[sessionKey]*consensusSession
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the metrics collector. Defaults to a no-op collector.
func WithMetrics(metrics ports.MetricsCollector) Option {
	return func(e *Engine) { e.metrics = metrics }
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine creates an engine over the given ledger store and method
// registry. It returns an error if either dependency is nil.
func NewEngine(ledger ports.LedgerStore, registry ports.MethodRegistry, opts ...Option) (*Engine, error) {
	if ledger == nil {
		return nil, errors.New("ledger store is required")
	}
	if registry == nil {
		return nil, errors.New("method registry is required")
	}

	e := &Engine{
		ledger:    ledger,
		registry:  registry,
		metrics:   noopMetrics{},
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
		validator: NewConfigValidator(),
		evidence:  NewEvidencePolicy(),
		clock:     time.Now,
		sessions:  make(map[sessionKey]*consensusSession),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ValidateConfig checks the evaluation's scoring configuration and returns
// every violation found. An invalid configuration blocks aggregation.
func (e *Engine) ValidateConfig(eval *domain.Evaluation) *domain.ValidationResult {
	return e.validator.Validate(eval)
}

// SubmitRequest carries one evaluator's judgment of one vendor against one
// requirement.
type SubmitRequest struct {
	// EvaluatorID identifies the submitting evaluator, as supplied by the
	// identity collaborator.
	EvaluatorID string

	// Role is the caller's capability level. Only scoring-capable roles
	// may submit.
	Role domain.Role

	// VendorID identifies the vendor being scored.
	VendorID string

	// RequirementID identifies the requirement being scored.
	RequirementID string

	// StakeholderAreaID is the evaluator's scoring lane, required under the
	// multi-stakeholder method.
	StakeholderAreaID string

	// Score is the numeric judgment.
	Score float64

	// Evidence justifies the score. Mandatory for extreme scores.
	Evidence string

	// Confidence is optional certainty metadata.
	Confidence domain.Confidence
}

// Submit validates and appends one score entry. Rejections are returned as
// *domain.SubmissionError with enough detail for the evaluator to correct
// the submission immediately; nothing is partially recorded. Submission
// triggers no recalculation: aggregation is pull-based.
func (e *Engine) Submit(ctx context.Context, eval *domain.Evaluation, req SubmitRequest) (domain.ScoreEntry, error) {
	ctx, span := e.tracer.Start(ctx, "engine.submit", trace.WithAttributes(
		attribute.String("evaluation.id", eval.ID),
		attribute.String("vendor.id", req.VendorID),
		attribute.String("requirement.id", req.RequirementID),
	))
	defer span.End()
	start := e.clock()

	if err := e.checkSubmission(ctx, eval, req); err != nil {
		e.countRejection("submit", err)
		return domain.ScoreEntry{}, err
	}

	entry := domain.ScoreEntry{
		ID:                uuid.NewString(),
		EvaluationID:      eval.ID,
		EvaluatorID:       req.EvaluatorID,
		VendorID:          req.VendorID,
		RequirementID:     req.RequirementID,
		StakeholderAreaID: req.StakeholderAreaID,
		Score:             req.Score,
		Evidence:          req.Evidence,
		Confidence:        req.Confidence,
		CreatedAt:         e.clock(),
	}

	stored, err := e.ledger.AppendScore(ctx, entry)
	if err != nil {
		return domain.ScoreEntry{}, fmt.Errorf("failed to append score entry: %w", err)
	}

	e.metrics.RecordCounter("scores_submitted_total", 1, map[string]string{
		"evaluation_id": eval.ID,
		"method":        eval.Method.String(),
	})
	e.metrics.RecordLatency("submit", e.clock().Sub(start), map[string]string{"evaluation_id": eval.ID})
	e.logger.Debug("score submitted",
		zap.String("evaluation_id", eval.ID),
		zap.String("evaluator_id", req.EvaluatorID),
		zap.String("vendor_id", req.VendorID),
		zap.String("requirement_id", req.RequirementID),
		zap.Float64("score", req.Score),
		zap.Int("version", stored.Version),
	)
	return stored, nil
}

// checkSubmission applies every entry-time rule: role gating, identity of
// the scored subjects, scale bounds and granularity, stakeholder lane
// requirements, the evidence policy, and the consensus lock.
func (e *Engine) checkSubmission(ctx context.Context, eval *domain.Evaluation, req SubmitRequest) error {
	reject := func(err error) error {
		return domain.NewSubmissionError(req.EvaluatorID, req.VendorID, req.RequirementID, err)
	}

	if !req.Role.CanScore() {
		return reject(fmt.Errorf("%w: role %q cannot submit scores", domain.ErrPermissionDenied, req.Role))
	}
	if _, ok := eval.VendorByID(req.VendorID); !ok {
		return reject(fmt.Errorf("%w: %s", domain.ErrUnknownVendor, req.VendorID))
	}
	if _, ok := eval.RequirementByID(req.RequirementID); !ok {
		return reject(fmt.Errorf("%w: %s", domain.ErrUnknownRequirement, req.RequirementID))
	}

	if !eval.Scale.Contains(req.Score) {
		return reject(fmt.Errorf("%w: %g outside scale [%g, %g]",
			domain.ErrInvalidScore, req.Score, eval.Scale.Min, eval.Scale.Max))
	}
	if !eval.Scale.OnGrain(req.Score) {
		grain := "whole"
		if eval.Scale.HalfPoints {
			grain = "half"
		}
		return reject(fmt.Errorf("%w: %g violates %s-point granularity",
			domain.ErrInvalidScore, req.Score, grain))
	}

	if eval.Method.UsesStakeholderAreas() {
		if req.StakeholderAreaID == "" {
			return reject(domain.ErrMissingStakeholderArea)
		}
		if _, ok := eval.AreaByID(req.StakeholderAreaID); !ok {
			return reject(fmt.Errorf("%w: %q is not a configured area",
				domain.ErrMissingStakeholderArea, req.StakeholderAreaID))
		}
	}

	if !req.Confidence.Valid() {
		return reject(fmt.Errorf("unrecognized confidence %q", req.Confidence))
	}

	if err := e.evidence.Check(eval.Scale, req.Score, req.Evidence); err != nil {
		return reject(err)
	}

	locked, err := e.pairLocked(ctx, eval.ID, req.VendorID, req.RequirementID)
	if err != nil {
		return fmt.Errorf("failed to check consensus state: %w", err)
	}
	if locked {
		return reject(domain.ErrScoringLocked)
	}
	return nil
}

// pairLocked reports whether the pair's consensus workflow has started,
// which freezes individual entries as read-only reference material.
func (e *Engine) pairLocked(ctx context.Context, evaluationID, vendorID, requirementID string) (bool, error) {
	e.sessionMu.Lock()
	_, open := e.sessions[sessionKey{evaluationID, vendorID, requirementID}]
	e.sessionMu.Unlock()
	if open {
		return true, nil
	}

	current, err := e.ledger.CurrentConsensus(ctx, evaluationID, vendorID, requirementID)
	if err != nil {
		return false, err
	}
	return current != nil, nil
}

// countRejection records a rejected operation, labeled by the sentinel that
// caused it.
func (e *Engine) countRejection(operation string, err error) {
	reason := "other"
	switch {
	case errors.Is(err, domain.ErrInvalidScore):
		reason = "invalid_score"
	case errors.Is(err, domain.ErrMissingStakeholderArea):
		reason = "missing_stakeholder_area"
	case errors.Is(err, domain.ErrEvidenceRequired):
		reason = "evidence_required"
	case errors.Is(err, domain.ErrScoringLocked):
		reason = "scoring_locked"
	case errors.Is(err, domain.ErrPermissionDenied):
		reason = "permission_denied"
	case errors.Is(err, domain.ErrConsensusAlreadyOpen):
		reason = "consensus_already_open"
	}
	e.metrics.RecordCounter("rejections_total", 1, map[string]string{
		"operation": operation,
		"reason":    reason,
	})
}

// noopMetrics is the default collector when none is configured.
type noopMetrics struct{}

func (noopMetrics) RecordLatency(string, time.Duration, map[string]string) {}
func (noopMetrics) RecordCounter(string, float64, map[string]string)       {}
func (noopMetrics) RecordGauge(string, float64, map[string]string)         {}
func (noopMetrics) RecordHistogram(string, float64, map[string]string)     {}
