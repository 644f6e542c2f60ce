package domain

import "math"

// granularityEpsilon absorbs floating-point noise when checking that a
// score lands on a whole- or half-point boundary.
const granularityEpsilon = 1e-9

// Scale defines the numeric bounds and granularity for an evaluation's
// scores. Bounds are inclusive.
type Scale struct {
	// Min is the lowest permitted score.
	Min float64 `yaml:"min" json:"min" validate:"min=0"`

	// Max is the highest permitted score. Must be strictly greater than Min.
	Max float64 `yaml:"max" json:"max"`

	// HalfPoints permits scores at half-point granularity (for example 3.5).
	// When false, only whole-point scores are accepted.
	HalfPoints bool `yaml:"half_points,omitempty" json:"half_points,omitempty"`
}

// DefaultScale returns the conventional 0-5 whole-point scale.
func DefaultScale() Scale { return Scale{Min: 0, Max: 5} }

// WellFormed reports whether the bounds describe a usable scale.
func (s Scale) WellFormed() bool { return s.Min >= 0 && s.Max > s.Min }

// Contains reports whether the value lies within the scale bounds.
func (s Scale) Contains(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= s.Min && v <= s.Max
}

// AtExtreme reports whether the value sits at either end of the scale,
// which is where the evidence policy demands justification.
func (s Scale) AtExtreme(v float64) bool { return v == s.Min || v == s.Max }

// OnGrain reports whether the value respects the configured granularity:
// whole points by default, half points when enabled.
func (s Scale) OnGrain(v float64) bool {
	step := v
	if s.HalfPoints {
		step = v * 2
	}
	_, frac := math.Modf(math.Abs(step))
	return frac < granularityEpsilon || frac > 1-granularityEpsilon
}

// Normalize converts a raw score into a display-agnostic 0-100 percentage.
func (s Scale) Normalize(v float64) float64 {
	if s.Max == 0 {
		return 0
	}
	return v / s.Max * 100
}
