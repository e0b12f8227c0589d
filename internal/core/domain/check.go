package domain

import "time"

// CheckStatus is the check request lifecycle state:
// queued -> processing -> (done | failed). Done and failed are terminal.
type CheckStatus string

// Available check states.
const (
	CheckStatusQueued     CheckStatus = "queued"
	CheckStatusProcessing CheckStatus = "processing"
	CheckStatusDone       CheckStatus = "done"
	CheckStatusFailed     CheckStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckStatusQueued, CheckStatusProcessing, CheckStatusDone, CheckStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for done and failed.
func (s CheckStatus) IsTerminal() bool {
	return s == CheckStatusDone || s == CheckStatusFailed
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (s CheckStatus) CanTransitionTo(next CheckStatus) bool {
	switch s {
	case CheckStatusQueued:
		return next == CheckStatusProcessing || next == CheckStatusFailed
	case CheckStatusProcessing:
		return next == CheckStatusDone || next == CheckStatusFailed
	default:
		return false
	}
}

// CheckRequest is one plagiarism check of a user document against the
// active corpus.
type CheckRequest struct {
	ID          int64
	RequestedBy string
	DocID       int64
	ParamsID    int64
	Status      CheckStatus
	QueuedAt    time.Time
	StartedAt   *time.Time

	// FinishedAt is set on entry to a terminal state.
	FinishedAt *time.Time
}

// Candidate is a corpus document sharing at least one LSH bucket with the
// checked document, with its MinHash similarity estimate.
type Candidate struct {
	CorpusDocID int64
	Title       string
	Approx      float64
}

// CheckMatch is one persisted match span. Span offsets are rune indices
// into the respective normalised texts, end-exclusive.
type CheckMatch struct {
	ID           int64
	ResultID     int64
	SourceType   SourceType
	SourceID     int64
	DocSpanStart int
	DocSpanEnd   int
	SrcSpanStart int
	SrcSpanEnd   int
	MatchScore   float64
	SnippetHash  string
}

// SummaryParams echoes the parameter snapshot into summary_json.
type SummaryParams struct {
	IDParams  int64   `json:"id_params"`
	K         int     `json:"k"`
	W         int     `json:"w"`
	Threshold float64 `json:"threshold"`
}

// SummaryCandidate is one retained candidate in summary_json.
type SummaryCandidate struct {
	IDCorpus int64   `json:"id_corpus"`
	Title    string  `json:"title"`
	Approx   float64 `json:"approx"`
}

// CheckSummary is the summary_json wire structure persisted with a result.
type CheckSummary struct {
	Params         SummaryParams      `json:"params"`
	Candidates     []SummaryCandidate `json:"candidates"`
	BestSimilarity float64            `json:"best_similarity"`

	// Warnings records corpus entries skipped as unreadable.
	Warnings []string `json:"warnings,omitempty"`
}

// CheckResult is the immutable outcome of one completed check. It
// exclusively owns its match rows.
type CheckResult struct {
	ID int64

	CheckID int64

	// Similarity is the best corpus Jaccard as a percentage with two
	// decimals: round(best * 10000) / 100.
	Similarity float64

	ReportPath string
	Summary    CheckSummary
	CreatedAt  time.Time

	Matches []CheckMatch
}

// VerificationStatus is a verifier's verdict over a result.
type VerificationStatus string

// Available verdicts.
const (
	// VerificationWajar marks the similarity as acceptable.
	VerificationWajar VerificationStatus = "wajar"

	// VerificationPerluRevisi requests a revision.
	VerificationPerluRevisi VerificationStatus = "perlu_revisi"

	// VerificationPlagiarisme marks the document as plagiarised.
	VerificationPlagiarisme VerificationStatus = "plagiarisme"
)

// IsValid returns true if the verdict is recognised.
func (v VerificationStatus) IsValid() bool {
	switch v {
	case VerificationWajar, VerificationPerluRevisi, VerificationPlagiarisme:
		return true
	default:
		return false
	}
}

// VerificationNote is the single human verdict attached to a result.
type VerificationNote struct {
	ID         int64
	ResultID   int64
	VerifierID string
	Status     VerificationStatus
	NoteText   string
	CreatedAt  time.Time
}
