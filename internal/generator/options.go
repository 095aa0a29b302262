package generator

import (
	"time"

	"svw.info/gridoku/internal/domain"
)

// Options configures puzzle generation behavior.
type Options struct {
	MaxAttempts int           // difficulty-validation retries before settling
	Quick       bool          // accept the first uniqueness-preserving removal order
	Symmetric   bool          // remove 180-degree cell pairs together
	CarveBudget time.Duration // wall-clock bound on the carving stage
	Tolerance   TolerancePolicy
}

// DefaultOptions returns the standard generation settings.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: 8,
		Quick:       true,
		Symmetric:   false,
		CarveBudget: 900 * time.Millisecond,
		Tolerance:   DefaultTolerance(),
	}
}

// TolerancePolicy decides whether a generated puzzle's measured
// difficulty is close enough to the request. The numbers are
// empirical, so this is a policy value rather than a fixed law:
// true medium/hard puzzles are rare under naive clue removal.
type TolerancePolicy struct {
	// MaxDelta is the accepted distance between actual and the
	// size-capped request.
	MaxDelta int
	// HarderAllowedAt: when the raw request is at least this hard, a
	// puzzle harder than asked is also accepted.
	HarderAllowedAt domain.Difficulty
}

func DefaultTolerance() TolerancePolicy {
	return TolerancePolicy{MaxDelta: 1, HarderAllowedAt: domain.Hard}
}

// Accept compares the measured difficulty against the size-capped
// request, given the raw requested difficulty.
func (p TolerancePolicy) Accept(actual, capped, requested domain.Difficulty) bool {
	delta := int(actual) - int(capped)
	if delta < 0 {
		delta = -delta
	}
	if delta <= p.MaxDelta {
		return true
	}
	return actual > capped && requested >= p.HarderAllowedAt
}
