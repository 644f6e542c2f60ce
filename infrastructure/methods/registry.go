package methods

import (
	"fmt"

	"github.com/spac3man-G/vendoreval/internal/domain"
	"github.com/spac3man-G/vendoreval/internal/ports"
)

var _ ports.MethodRegistry = (*Registry)(nil)

// Registry maps scoring methods to their aggregation strategies. It is
// immutable after construction and safe for concurrent use.
type Registry struct {
	strategies map[domain.ScoringMethod]ports.MethodStrategy
}

// NewRegistry creates a registry with all five built-in strategies
// registered, validating each. Extra strategies override built-ins for the
// same method, which is how callers swap in custom roll-up behavior.
func NewRegistry(extras ...ports.MethodStrategy) (*Registry, error) {
	multi, err := NewMultiStakeholderStrategy(DefaultMultiStakeholderConfig())
	if err != nil {
		return nil, err
	}

	builtins := []ports.MethodStrategy{
		NewSimpleAverageStrategy(),
		NewCategoryWeightedStrategy(),
		NewRequirementWeightedStrategy(),
		NewMoSCoWWeightedStrategy(),
		multi,
	}

	strategies := make(map[domain.ScoringMethod]ports.MethodStrategy, len(builtins))
	for _, s := range append(builtins, extras...) {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("strategy %s failed validation: %w", s.Method(), err)
		}
		strategies[s.Method()] = s
	}

	return &Registry{strategies: strategies}, nil
}

// Strategy returns the strategy for the method, or an error wrapping
// domain.ErrUnknownMethod when none is registered.
func (r *Registry) Strategy(method domain.ScoringMethod) (ports.MethodStrategy, error) {
	s, ok := r.strategies[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownMethod, method)
	}
	return s, nil
}

// Methods lists the registered methods in the canonical order, with any
// non-canonical extras appended.
func (r *Registry) Methods() []domain.ScoringMethod {
	out := make([]domain.ScoringMethod, 0, len(r.strategies))
	for _, m := range domain.Methods() {
		if _, ok := r.strategies[m]; ok {
			out = append(out, m)
		}
	}
	for m := range r.strategies {
		if !m.Valid() {
			out = append(out, m)
		}
	}
	return out
}
