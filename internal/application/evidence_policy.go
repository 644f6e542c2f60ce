package application

import (
	"strings"

	"github.com/spac3man-G/vendoreval/internal/domain"
)

// EvidencePolicy enforces that extreme scores carry justification. The rule
// applies at entry time and is independent of the scoring method: a score
// at either end of the scale without evidence is rejected before it ever
// reaches the ledger.
type EvidencePolicy struct{}

// NewEvidencePolicy creates the evidence policy.
func NewEvidencePolicy() *EvidencePolicy { return &EvidencePolicy{} }

// Check returns domain.ErrEvidenceRequired when the score sits at the
// scale's minimum or maximum and the evidence is empty or whitespace.
// Mid-scale scores pass with or without evidence.
func (p *EvidencePolicy) Check(scale domain.Scale, score float64, evidence string) error {
	if scale.AtExtreme(score) && strings.TrimSpace(evidence) == "" {
		return domain.ErrEvidenceRequired
	}
	return nil
}
