package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, including a
	// document not owned by the caller.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoActiveParams indicates no algorithm parameter row is active now.
	ErrNoActiveParams = errors.New("no active algorithm params")

	// ErrEmptyOrTooShort indicates the normalised document text is shorter
	// than k, so no k-gram can be produced.
	ErrEmptyOrTooShort = errors.New("document empty or shorter than k")

	// ErrCorpusRead indicates a single corpus text was unreadable. It is
	// recovered locally: the entry is skipped and a summary warning emitted.
	ErrCorpusRead = errors.New("corpus text unreadable")

	// ErrPersistence indicates the result transaction failed. The whole
	// check fails; no partial rows remain.
	ErrPersistence = errors.New("persistence failure")

	// ErrDeadline indicates the per-check soft deadline expired.
	ErrDeadline = errors.New("check deadline exceeded")
)

// Kind maps an error to its stable, user-visible kind string. The strings
// are contract: clients switch on them.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrNoActiveParams):
		return "NoActiveParams"
	case errors.Is(err, ErrEmptyOrTooShort):
		return "EmptyOrTooShort"
	case errors.Is(err, ErrCorpusRead):
		return "CorpusRead"
	case errors.Is(err, ErrDeadline):
		return "Deadline"
	case errors.Is(err, ErrPersistence):
		return "Persistence"
	default:
		return "Internal"
	}
}
