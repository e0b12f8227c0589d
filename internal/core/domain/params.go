package domain

import (
	"fmt"
	"time"
)

// AlgorithmParams is one row of the algoritma_params history table. The
// active row at any instant is the most recently activated row whose
// [ActiveFrom, ActiveTo) interval contains that instant; a nil ActiveTo
// means open-ended. The orchestrator reads the active row once per check and
// treats it as an immutable snapshot.
type AlgorithmParams struct {
	// ID is the row id.
	ID int64

	// K is the k-gram length, at least 1.
	K int

	// W is the winnowing window size, at least 1.
	W int

	// Base is the rolling-hash base column carried by the parameter table.
	Base int

	// Threshold is the Jaccard similarity at or above which match spans are
	// materialised, in [0, 1].
	Threshold float64

	// ActiveFrom is the activation instant (inclusive).
	ActiveFrom time.Time

	// ActiveTo is the deactivation instant (exclusive), nil when open.
	ActiveTo *time.Time
}

// Validate checks the parameter tuple.
func (p AlgorithmParams) Validate() error {
	if p.K < 1 {
		return fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidInput, p.K)
	}
	if p.W < 1 {
		return fmt.Errorf("%w: w must be >= 1, got %d", ErrInvalidInput, p.W)
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be in [0,1], got %f", ErrInvalidInput, p.Threshold)
	}
	return nil
}

// ActiveAt reports whether the row is active at the given instant.
func (p AlgorithmParams) ActiveAt(now time.Time) bool {
	if now.Before(p.ActiveFrom) {
		return false
	}
	return p.ActiveTo == nil || now.Before(*p.ActiveTo)
}
