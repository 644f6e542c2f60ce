package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

// sessionKey identifies one (evaluation, vendor, requirement) pair in the
// consensus workflow.
type sessionKey struct {
	evaluationID  string
	vendorID      string
	requirementID string
}

// consensusSession tracks an open facilitated session for a pair. At most
// one session may be open per pair at a time.
type consensusSession struct {
	facilitatorID string
	openedAt      time.Time
}

// ConsensusRequest carries the facilitator's agreed score for a pair.
type ConsensusRequest struct {
	// FacilitatorID identifies who drove the session.
	FacilitatorID string

	// Role is the caller's capability level. Only facilitator-capable
	// roles may record consensus.
	Role domain.Role

	// VendorID identifies the pair's vendor.
	VendorID string

	// RequirementID identifies the pair's requirement.
	RequirementID string

	// Score is the agreed score.
	Score float64

	// Evidence records the rationale. Mandatory, unlike individual entries.
	Evidence string
}

// OpenConsensus starts a facilitated session for the pair, moving it from
// Individual to UnderConsensus and freezing individual entries. A second
// open while one is in progress fails immediately with
// domain.ErrConsensusAlreadyOpen rather than blocking, so callers can
// surface the human coordination conflict.
func (e *Engine) OpenConsensus(ctx context.Context, eval *domain.Evaluation, vendorID, requirementID, facilitatorID string, role domain.Role) error {
	ctx, span := e.tracer.Start(ctx, "engine.consensus.open", trace.WithAttributes(
		attribute.String("vendor.id", vendorID),
		attribute.String("requirement.id", requirementID),
	))
	defer span.End()

	if err := e.checkPair(eval, vendorID, requirementID, role); err != nil {
		e.countRejection("consensus_open", err)
		return err
	}

	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	key := sessionKey{eval.ID, vendorID, requirementID}
	if _, open := e.sessions[key]; open {
		e.countRejection("consensus_open", domain.ErrConsensusAlreadyOpen)
		return domain.NewConsensusError(vendorID, requirementID, domain.ErrConsensusAlreadyOpen)
	}

	current, err := e.ledger.CurrentConsensus(ctx, eval.ID, vendorID, requirementID)
	if err != nil {
		return fmt.Errorf("failed to read consensus: %w", err)
	}
	if current != nil {
		return domain.NewConsensusError(vendorID, requirementID, domain.ErrConsensusRecorded)
	}

	e.sessions[key] = &consensusSession{facilitatorID: facilitatorID, openedAt: e.clock()}
	e.metrics.RecordCounter("consensus_transitions_total", 1, map[string]string{"transition": "open"})
	e.logger.Info("consensus session opened",
		zap.String("evaluation_id", eval.ID),
		zap.String("vendor_id", vendorID),
		zap.String("requirement_id", requirementID),
		zap.String("facilitator_id", facilitatorID),
	)
	return nil
}

// RecordConsensus closes the pair's open session with an authoritative
// consensus entry, superseding the individual entries without deleting
// them. It is the only way a ConsensusEntry comes into existence.
func (e *Engine) RecordConsensus(ctx context.Context, eval *domain.Evaluation, req ConsensusRequest) (domain.ConsensusEntry, error) {
	ctx, span := e.tracer.Start(ctx, "engine.consensus.record", trace.WithAttributes(
		attribute.String("vendor.id", req.VendorID),
		attribute.String("requirement.id", req.RequirementID),
	))
	defer span.End()

	fail := func(err error) (domain.ConsensusEntry, error) {
		e.countRejection("consensus_record", err)
		return domain.ConsensusEntry{}, domain.NewConsensusError(req.VendorID, req.RequirementID, err)
	}

	if err := e.checkPair(eval, req.VendorID, req.RequirementID, req.Role); err != nil {
		e.countRejection("consensus_record", err)
		return domain.ConsensusEntry{}, err
	}
	if strings.TrimSpace(req.Evidence) == "" {
		return fail(domain.ErrEvidenceRequired)
	}
	if !eval.Scale.Contains(req.Score) {
		return fail(fmt.Errorf("%w: %g outside scale [%g, %g]",
			domain.ErrInvalidScore, req.Score, eval.Scale.Min, eval.Scale.Max))
	}
	if !eval.Scale.OnGrain(req.Score) {
		return fail(fmt.Errorf("%w: %g violates configured granularity", domain.ErrInvalidScore, req.Score))
	}

	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	key := sessionKey{eval.ID, req.VendorID, req.RequirementID}
	if _, open := e.sessions[key]; !open {
		return fail(domain.ErrConsensusNotOpen)
	}

	individuals, err := e.ledger.CurrentScores(ctx, eval.ID, req.VendorID, req.RequirementID)
	if err != nil {
		return domain.ConsensusEntry{}, fmt.Errorf("failed to read individual scores: %w", err)
	}
	derivedFrom := make([]string, 0, len(individuals))
	for _, s := range individuals {
		derivedFrom = append(derivedFrom, s.ID)
	}

	entry := domain.ConsensusEntry{
		ID:            uuid.NewString(),
		EvaluationID:  eval.ID,
		VendorID:      req.VendorID,
		RequirementID: req.RequirementID,
		Score:         req.Score,
		Evidence:      req.Evidence,
		FacilitatorID: req.FacilitatorID,
		DerivedFrom:   derivedFrom,
		CreatedAt:     e.clock(),
	}
	if err := e.ledger.AppendConsensus(ctx, entry); err != nil {
		return domain.ConsensusEntry{}, fmt.Errorf("failed to append consensus entry: %w", err)
	}
	if err := e.ledger.MarkScoresSuperseded(ctx, eval.ID, req.VendorID, req.RequirementID, entry.ID); err != nil {
		return domain.ConsensusEntry{}, fmt.Errorf("failed to mark scores superseded: %w", err)
	}

	delete(e.sessions, key)
	e.metrics.RecordCounter("consensus_transitions_total", 1, map[string]string{"transition": "record"})
	e.logger.Info("consensus recorded",
		zap.String("evaluation_id", eval.ID),
		zap.String("vendor_id", req.VendorID),
		zap.String("requirement_id", req.RequirementID),
		zap.String("facilitator_id", req.FacilitatorID),
		zap.Float64("score", req.Score),
		zap.Int("derived_from", len(derivedFrom)),
	)
	return entry, nil
}

// Reopen moves a Consensed pair back to UnderConsensus. The prior
// consensus entry is superseded, never removed, preserving the complete
// decision history; until a new consensus is recorded the pair aggregates
// from its individual entries again.
func (e *Engine) Reopen(ctx context.Context, eval *domain.Evaluation, vendorID, requirementID, facilitatorID string, role domain.Role) error {
	ctx, span := e.tracer.Start(ctx, "engine.consensus.reopen", trace.WithAttributes(
		attribute.String("vendor.id", vendorID),
		attribute.String("requirement.id", requirementID),
	))
	defer span.End()

	if err := e.checkPair(eval, vendorID, requirementID, role); err != nil {
		e.countRejection("consensus_reopen", err)
		return err
	}

	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	key := sessionKey{eval.ID, vendorID, requirementID}
	if _, open := e.sessions[key]; open {
		return domain.NewConsensusError(vendorID, requirementID, domain.ErrConsensusAlreadyOpen)
	}

	current, err := e.ledger.CurrentConsensus(ctx, eval.ID, vendorID, requirementID)
	if err != nil {
		return fmt.Errorf("failed to read consensus: %w", err)
	}
	if current == nil {
		return domain.NewConsensusError(vendorID, requirementID, domain.ErrNoConsensus)
	}
	if err := e.ledger.SupersedeConsensus(ctx, eval.ID, vendorID, requirementID); err != nil {
		return fmt.Errorf("failed to supersede consensus: %w", err)
	}

	e.sessions[key] = &consensusSession{facilitatorID: facilitatorID, openedAt: e.clock()}
	e.metrics.RecordCounter("consensus_transitions_total", 1, map[string]string{"transition": "reopen"})
	e.logger.Info("consensus reopened",
		zap.String("evaluation_id", eval.ID),
		zap.String("vendor_id", vendorID),
		zap.String("requirement_id", requirementID),
		zap.String("superseded_consensus_id", current.ID),
	)
	return nil
}

// ConsensusState reports the pair's workflow state. Aggregation never
// consults this; it only checks for a current consensus entry.
func (e *Engine) ConsensusState(ctx context.Context, eval *domain.Evaluation, vendorID, requirementID string) (domain.ConsensusState, error) {
	e.sessionMu.Lock()
	_, open := e.sessions[sessionKey{eval.ID, vendorID, requirementID}]
	e.sessionMu.Unlock()
	if open {
		return domain.StateUnderConsensus, nil
	}

	current, err := e.ledger.CurrentConsensus(ctx, eval.ID, vendorID, requirementID)
	if err != nil {
		return "", fmt.Errorf("failed to read consensus: %w", err)
	}
	if current != nil {
		return domain.StateConsensed, nil
	}
	return domain.StateIndividual, nil
}

// checkPair gates a consensus transition on role capability and pair
// identity.
func (e *Engine) checkPair(eval *domain.Evaluation, vendorID, requirementID string, role domain.Role) error {
	if !role.CanFacilitate() {
		return domain.NewConsensusError(vendorID, requirementID,
			fmt.Errorf("%w: role %q cannot facilitate consensus", domain.ErrPermissionDenied, role))
	}
	if _, ok := eval.VendorByID(vendorID); !ok {
		return domain.NewConsensusError(vendorID, requirementID,
			fmt.Errorf("%w: %s", domain.ErrUnknownVendor, vendorID))
	}
	if _, ok := eval.RequirementByID(requirementID); !ok {
		return domain.NewConsensusError(vendorID, requirementID,
			fmt.Errorf("%w: %s", domain.ErrUnknownRequirement, requirementID))
	}
	return nil
}
