// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

// LedgerStore is the persistence contract for the append-oriented score
// ledger. Implementations must retain every non-deleted version of every
// entry so the audit guarantee holds; the engine decides which versions
// count, the store only remembers them.
//
// Implementations must be safe for concurrent use: evaluators submit
// entries for overlapping (vendor, requirement) pairs in parallel with no
// ordering guarantee.
type LedgerStore interface {
	// AppendScore appends one score entry version and returns the stored
	// entry with its assigned version number. It never overwrites: a
	// re-submission arrives as a new version of the same logical key.
	AppendScore(ctx context.Context, entry domain.ScoreEntry) (domain.ScoreEntry, error)

	// AppendConsensus appends one consensus entry. Any prior consensus for
	// the pair must already be superseded via SupersedeConsensus.
	AppendConsensus(ctx context.Context, entry domain.ConsensusEntry) error

	// CurrentScores returns the current (highest) version of each
	// evaluator's entry for the pair, in submission order. Entries
	// superseded by a consensus are still returned; the engine filters.
	CurrentScores(ctx context.Context, evaluationID, vendorID, requirementID string) ([]domain.ScoreEntry, error)

	// ScoreVersions returns every retained version of every entry for the
	// pair, oldest first, for audit.
	ScoreVersions(ctx context.Context, evaluationID, vendorID, requirementID string) ([]domain.ScoreEntry, error)

	// CurrentConsensus returns the authoritative (non-superseded) consensus
	// for the pair, or nil when none exists.
	CurrentConsensus(ctx context.Context, evaluationID, vendorID, requirementID string) (*domain.ConsensusEntry, error)

	// ConsensusHistory returns every consensus recorded for the pair,
	// oldest first, including superseded ones.
	ConsensusHistory(ctx context.Context, evaluationID, vendorID, requirementID string) ([]domain.ConsensusEntry, error)

	// SupersedeConsensus marks the pair's current consensus as superseded
	// without removing it. It is a no-op when no current consensus exists.
	SupersedeConsensus(ctx context.Context, evaluationID, vendorID, requirementID string) error

	// MarkScoresSuperseded stamps the pair's current score entries with the
	// consensus ID that now supersedes them.
	MarkScoresSuperseded(ctx context.Context, evaluationID, vendorID, requirementID, consensusID string) error
}
