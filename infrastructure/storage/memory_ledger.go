// Package storage provides ledger store implementations. The in-memory
// ledger is the reference implementation of ports.LedgerStore; durable
// engines live with the external persistence collaborator and only need to
// honor the same version-retention contract.
package storage

import (
	"context"
	"sync"

	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/ports"
)

var _ ports.LedgerStore = (*MemoryLedger)(nil)

// pairKey identifies one (evaluation, vendor, requirement) scoring pair.
type pairKey struct {
	evaluationID  string
	vendorID      string
	requirementID string
}

// entryKey identifies one evaluator's logical entry within a pair. The
// stakeholder area is part of the key so an evaluator can score the same
// requirement once per area under the multi-stakeholder method.
type entryKey struct {
	evaluatorID string
	areaID      string
}

// MemoryLedger is an append-only, versioned, in-memory ledger store.
// Every version of every entry is retained; re-submissions append rather
// than overwrite. All operations are safe under concurrent use.
type MemoryLedger struct {
	mu sync.RWMutex

	// scores holds all retained versions per logical entry, oldest first.
	scores map[pairKey]map[entryKey][]domain.ScoreEntry

	// entryOrder preserves first-submission order of logical entries so
	// reads are deterministic.
	entryOrder map[pairKey][]entryKey

	// consensus holds the full consensus history per pair, oldest first.
	consensus map[pairKey][]domain.ConsensusEntry

	// ids tracks every retained entry ID to reject duplicate appends.
	ids map[string]struct{}
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		scores:     make(map[pairKey]map[entryKey][]domain.ScoreEntry),
		entryOrder: make(map[pairKey][]entryKey),
		consensus:  make(map[pairKey][]domain.ConsensusEntry),
		ids:        make(map[string]struct{}),
	}
}

// AppendScore appends one score entry version, assigning the next version
// number for the evaluator's logical key.
func (l *MemoryLedger) AppendScore(_ context.Context, entry domain.ScoreEntry) (domain.ScoreEntry, error) {
	pk := pairKey{entry.EvaluationID, entry.VendorID, entry.RequirementID}
	ek := entryKey{entry.EvaluatorID, entry.StakeholderAreaID}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.ids[entry.ID]; dup {
		return domain.ScoreEntry{}, ports.NewStorageError(
			entry.EvaluationID, entry.VendorID, entry.RequirementID, "append_score", ports.ErrDuplicateEntry)
	}
	l.ids[entry.ID] = struct{}{}

	byEvaluator, ok := l.scores[pk]
	if !ok {
		byEvaluator = make(map[entryKey][]domain.ScoreEntry)
		l.scores[pk] = byEvaluator
	}
	if _, seen := byEvaluator[ek]; !seen {
		l.entryOrder[pk] = append(l.entryOrder[pk], ek)
	}

	entry.Version = len(byEvaluator[ek]) + 1
	byEvaluator[ek] = append(byEvaluator[ek], entry)
	return entry, nil
}

// AppendConsensus appends one consensus entry to the pair's history.
func (l *MemoryLedger) AppendConsensus(_ context.Context, entry domain.ConsensusEntry) error {
	pk := pairKey{entry.EvaluationID, entry.VendorID, entry.RequirementID}
	entry.DerivedFrom = append([]string(nil), entry.DerivedFrom...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.ids[entry.ID]; dup {
		return ports.NewStorageError(
			entry.EvaluationID, entry.VendorID, entry.RequirementID, "append_consensus", ports.ErrDuplicateEntry)
	}
	l.ids[entry.ID] = struct{}{}

	l.consensus[pk] = append(l.consensus[pk], entry)
	return nil
}

// CurrentScores returns the highest version of each logical entry for the
// pair, in first-submission order.
func (l *MemoryLedger) CurrentScores(_ context.Context, evaluationID, vendorID, requirementID string) ([]domain.ScoreEntry, error) {
	pk := pairKey{evaluationID, vendorID, requirementID}

	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := l.entryOrder[pk]
	out := make([]domain.ScoreEntry, 0, len(keys))
	for _, ek := range keys {
		versions := l.scores[pk][ek]
		if len(versions) > 0 {
			out = append(out, versions[len(versions)-1])
		}
	}
	return out, nil
}

// ScoreVersions returns every retained version of every entry for the
// pair, grouped by logical entry in first-submission order, oldest version
// first within each group.
func (l *MemoryLedger) ScoreVersions(_ context.Context, evaluationID, vendorID, requirementID string) ([]domain.ScoreEntry, error) {
	pk := pairKey{evaluationID, vendorID, requirementID}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.ScoreEntry
	for _, ek := range l.entryOrder[pk] {
		out = append(out, l.scores[pk][ek]...)
	}
	return out, nil
}

// CurrentConsensus returns the pair's most recent non-superseded consensus,
// or nil when none exists.
func (l *MemoryLedger) CurrentConsensus(_ context.Context, evaluationID, vendorID, requirementID string) (*domain.ConsensusEntry, error) {
	pk := pairKey{evaluationID, vendorID, requirementID}

	l.mu.RLock()
	defer l.mu.RUnlock()

	history := l.consensus[pk]
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Superseded {
			entry := history[i]
			entry.DerivedFrom = append([]string(nil), entry.DerivedFrom...)
			return &entry, nil
		}
	}
	return nil, nil
}

// ConsensusHistory returns every consensus recorded for the pair, oldest
// first, including superseded ones.
func (l *MemoryLedger) ConsensusHistory(_ context.Context, evaluationID, vendorID, requirementID string) ([]domain.ConsensusEntry, error) {
	pk := pairKey{evaluationID, vendorID, requirementID}

	l.mu.RLock()
	defer l.mu.RUnlock()

	history := l.consensus[pk]
	out := make([]domain.ConsensusEntry, len(history))
	copy(out, history)
	for i := range out {
		out[i].DerivedFrom = append([]string(nil), out[i].DerivedFrom...)
	}
	return out, nil
}

// SupersedeConsensus marks the pair's current consensus as superseded,
// keeping it in the history. No-op when no current consensus exists.
func (l *MemoryLedger) SupersedeConsensus(_ context.Context, evaluationID, vendorID, requirementID string) error {
	pk := pairKey{evaluationID, vendorID, requirementID}

	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.consensus[pk]
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Superseded {
			history[i].Superseded = true
			return nil
		}
	}
	return nil
}

// MarkScoresSuperseded stamps the pair's current score entry versions with
// the consensus ID that supersedes them.
func (l *MemoryLedger) MarkScoresSuperseded(_ context.Context, evaluationID, vendorID, requirementID, consensusID string) error {
	pk := pairKey{evaluationID, vendorID, requirementID}

	l.mu.Lock()
	defer l.mu.Unlock()

	for ek, versions := range l.scores[pk] {
		if len(versions) == 0 {
			continue
		}
		versions[len(versions)-1].SupersededBy = consensusID
		l.scores[pk][ek] = versions
	}
	return nil
}
