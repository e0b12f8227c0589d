package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driving"
	"github.com/jordannanyan/plagiarism-backend/internal/fingerprint"
	"github.com/jordannanyan/plagiarism-backend/internal/logger"
	"github.com/jordannanyan/plagiarism-backend/internal/minhash"
	"github.com/jordannanyan/plagiarism-backend/internal/textnorm"
)

// Ensure CheckService implements the interface.
var _ driving.CheckService = (*CheckService)(nil)

const (
	// maxCandidateCap bounds how many LSH candidates are compared exactly,
	// whatever the caller asks for.
	maxCandidateCap = 50

	// maxSpansPerCandidate bounds the match rows kept per source.
	maxSpansPerCandidate = 50

	// previewRunes is the length of the optional normalised-text preview.
	previewRunes = 500

	// DefaultDeadline is the soft per-check deadline.
	DefaultDeadline = 60 * time.Second
)

// CheckService orchestrates the plagiarism pipeline: parameter snapshot,
// MinHash/LSH candidate pruning over the active corpus, exact Jaccard over
// winnowed fingerprints, span reconstruction and the single result
// transaction. One check is single-threaded and deterministic given the
// parameter tuple and the corpus snapshot.
type CheckService struct {
	params driven.ParamStore
	docs   driven.DocumentStore
	corpus driven.CorpusStore
	checks driven.CheckStore
	texts  driven.TextSource
	index  driven.CorpusIndex

	deadline time.Duration
	now      func() time.Time
}

// CheckOption configures the check service.
type CheckOption func(*CheckService)

// WithDeadline overrides the soft per-check deadline.
func WithDeadline(d time.Duration) CheckOption {
	return func(s *CheckService) {
		if d > 0 {
			s.deadline = d
		}
	}
}

// WithClock overrides the time source. Useful for testing.
func WithClock(now func() time.Time) CheckOption {
	return func(s *CheckService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewCheckService creates a check service over the given stores.
func NewCheckService(
	params driven.ParamStore,
	docs driven.DocumentStore,
	corpus driven.CorpusStore,
	checks driven.CheckStore,
	texts driven.TextSource,
	index driven.CorpusIndex,
	opts ...CheckOption,
) *CheckService {
	s := &CheckService{
		params:   params,
		docs:     docs,
		corpus:   corpus,
		checks:   checks,
		texts:    texts,
		index:    index,
		deadline: DefaultDeadline,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// candidate pairs an indexed corpus entry with its MinHash estimate.
type candidate struct {
	entry  driven.IndexEntry
	approx float64
}

// RunCheck executes the full pipeline for one document.
func (s *CheckService) RunCheck(ctx context.Context, in driving.RunCheckInput) (*driving.RunCheckOutput, error) {
	if in.DocID <= 0 {
		return nil, fmt.Errorf("%w: doc id must be positive", domain.ErrInvalidInput)
	}

	now := s.now()

	// Parameter snapshot: read once, never re-read during the check.
	params, err := s.params.Active(ctx, now)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.GetDocument(ctx, in.DocID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %d does not exist", domain.ErrInvalidInput, in.DocID)
		}
		return nil, err
	}

	req := &domain.CheckRequest{
		RequestedBy: in.RequestedBy,
		DocID:       doc.ID,
		ParamsID:    params.ID,
		Status:      domain.CheckStatusQueued,
		QueuedAt:    now,
	}
	if err := s.checks.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: creating check request: %v", domain.ErrPersistence, err)
	}
	logger.Audit("CREATE_CHECK_REQUEST", "check=%d doc=%d params=%d", req.ID, doc.ID, params.ID)

	if err := s.checks.UpdateRequestStatus(ctx, req.ID, domain.CheckStatusProcessing, s.now()); err != nil {
		return nil, fmt.Errorf("%w: starting check %d: %v", domain.ErrPersistence, req.ID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	out, err := s.runPipeline(ctx, req, doc, params, in.MaxCandidates)
	if err != nil {
		err = s.mapPipelineErr(ctx, err)
		s.failCheck(req.ID, err)
		return nil, err
	}

	if err := s.checks.UpdateRequestStatus(ctx, req.ID, domain.CheckStatusDone, s.now()); err != nil {
		err = fmt.Errorf("%w: finishing check %d: %v", domain.ErrPersistence, req.ID, err)
		s.failCheck(req.ID, err)
		return nil, err
	}
	logger.Audit("CHECK_COMPLETED", "check=%d similarity=%.2f matches=%d", req.ID, out.Similarity, out.MatchesInserted)

	return out, nil
}

// runPipeline performs the algorithmic part of a check and persists the
// result. The caller owns the request state machine.
func (s *CheckService) runPipeline(
	ctx context.Context,
	req *domain.CheckRequest,
	doc *domain.UserDocument,
	params *domain.AlgorithmParams,
	maxCandidates int,
) (*driving.RunCheckOutput, error) {
	raw, err := s.texts.ReadNormalized(ctx, doc.PathText)
	if err != nil {
		return nil, fmt.Errorf("reading document %d text: %w", doc.ID, err)
	}

	// Re-normalising is idempotent and strips the file's trailing LF, which
	// would otherwise shift the final k-grams.
	text := textnorm.Normalize(raw)
	if len([]rune(text)) < params.K {
		return nil, domain.ErrEmptyOrTooShort
	}

	logger.Section(fmt.Sprintf("check %d", req.ID))
	logger.Debug("params k=%d w=%d threshold=%.2f", params.K, params.W, params.Threshold)

	sigDoc := minhash.Signature(text, params.K, minhash.DefaultNumPerm)
	bucketsDoc := minhash.BucketKeys(sigDoc, minhash.DefaultBands)

	// Corpus membership snapshot for the whole check.
	corpusDocs, err := s.corpus.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing corpus: %v", domain.ErrPersistence, err)
	}

	entries, err := s.index.Entries(ctx, corpusDocs, params.K, minhash.DefaultNumPerm, minhash.DefaultBands)
	if err != nil {
		return nil, fmt.Errorf("indexing corpus: %w", err)
	}

	var warnings []string
	var candidates []candidate
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.Err != nil {
			warnings = append(warnings, fmt.Sprintf("corpus %d (%s): skipped: unreadable text", entry.Doc.ID, entry.Doc.Title))
			logger.Warn("corpus %d (%s): %v", entry.Doc.ID, entry.Doc.Title, entry.Err)
			continue
		}
		if !minhash.SharesBucket(bucketsDoc, entry.BucketKeys) {
			continue
		}
		candidates = append(candidates, candidate{
			entry:  entry,
			approx: minhash.Estimate(sigDoc, entry.Signature),
		})
	}

	// Deterministic candidate order: approx descending, corpus id ascending.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].approx != candidates[j].approx {
			return candidates[i].approx > candidates[j].approx
		}
		return candidates[i].entry.Doc.ID < candidates[j].entry.Doc.ID
	})

	limit := maxCandidates
	if limit <= 0 || limit > maxCandidateCap {
		limit = maxCandidateCap
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	logger.Debug("candidates after LSH pruning: %d", len(candidates))

	fpDoc := fingerprint.Winnow(text, params.K, params.W)

	var (
		bestSim float64
		matches []domain.CheckMatch
	)
	summaryCandidates := make([]domain.SummaryCandidate, 0, len(candidates))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		summaryCandidates = append(summaryCandidates, domain.SummaryCandidate{
			IDCorpus: c.entry.Doc.ID,
			Title:    c.entry.Doc.Title,
			Approx:   c.approx,
		})

		srcRaw, err := s.texts.ReadNormalized(ctx, c.entry.Doc.PathText)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("corpus %d (%s): skipped: unreadable text", c.entry.Doc.ID, c.entry.Doc.Title))
			logger.Warn("corpus %d (%s): %v", c.entry.Doc.ID, c.entry.Doc.Title, err)
			continue
		}

		fpSrc := fingerprint.Winnow(textnorm.Normalize(srcRaw), params.K, params.W)
		sim := fingerprint.Jaccard(fpDoc, fpSrc)
		logger.Debug("corpus %d: approx=%.3f jaccard=%.3f", c.entry.Doc.ID, c.approx, sim)

		if sim > bestSim {
			bestSim = sim
		}
		if sim < params.Threshold {
			continue
		}

		spans := fingerprint.BuildSpans(fpDoc, fpSrc, params.K)
		if len(spans) > maxSpansPerCandidate {
			spans = spans[:maxSpansPerCandidate]
		}
		for _, sp := range spans {
			matches = append(matches, domain.CheckMatch{
				SourceType:   c.entry.Doc.SourceType,
				SourceID:     c.entry.Doc.ID,
				DocSpanStart: sp.DocStart,
				DocSpanEnd:   sp.DocEnd,
				SrcSpanStart: sp.SrcStart,
				SrcSpanEnd:   sp.SrcEnd,
				MatchScore:   sp.Score,
				SnippetHash:  sp.SnippetHash,
			})
		}
	}

	result := &domain.CheckResult{
		CheckID: req.ID,
		// Two-decimal percentage, rounded half away from zero.
		Similarity: math.Round(bestSim*10000) / 100,
		Summary: domain.CheckSummary{
			Params: domain.SummaryParams{
				IDParams:  params.ID,
				K:         params.K,
				W:         params.W,
				Threshold: params.Threshold,
			},
			Candidates:     summaryCandidates,
			BestSimilarity: bestSim,
			Warnings:       warnings,
		},
		CreatedAt: s.now(),
		Matches:   matches,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checks.SaveResult(ctx, result); err != nil {
		return nil, fmt.Errorf("%w: saving result for check %d: %v", domain.ErrPersistence, req.ID, err)
	}

	return &driving.RunCheckOutput{
		CheckID:         req.ID,
		ResultID:        result.ID,
		Similarity:      result.Similarity,
		Threshold:       params.Threshold,
		CandidatesCount: len(candidates),
		MatchesInserted: len(matches),
	}, nil
}

// mapPipelineErr translates context errors into the stable error taxonomy.
func (s *CheckService) mapPipelineErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: soft deadline %s exceeded", domain.ErrDeadline, s.deadline)
	}
	return err
}

// failCheck moves the request to failed, best effort. The causal error has
// already been captured; a failure to record the state is only logged.
func (s *CheckService) failCheck(checkID int64, cause error) {
	// Fresh context: the check context may already be expired or cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.checks.UpdateRequestStatus(ctx, checkID, domain.CheckStatusFailed, s.now()); err != nil {
		logger.Warn("check %d: recording failure (%v): %v", checkID, cause, err)
		return
	}
	logger.Audit("CHECK_COMPLETED", "check=%d status=failed kind=%s", checkID, domain.Kind(cause))
}

// GetCheck returns a check with its result and, optionally, a truncated
// normalised-text preview of the checked document.
func (s *CheckService) GetCheck(ctx context.Context, checkID int64, withPreview bool) (*driving.CheckDetails, error) {
	if checkID <= 0 {
		return nil, fmt.Errorf("%w: check id must be positive", domain.ErrInvalidInput)
	}

	req, err := s.checks.GetRequest(ctx, checkID)
	if err != nil {
		return nil, err
	}

	details := &driving.CheckDetails{Request: *req}

	result, err := s.checks.GetResultByCheck(ctx, checkID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	details.Result = result

	if withPreview {
		if doc, err := s.docs.GetDocument(ctx, req.DocID); err == nil {
			if raw, err := s.texts.ReadNormalized(ctx, doc.PathText); err == nil {
				details.Preview = truncateRunes(textnorm.Normalize(raw), previewRunes)
			}
		}
	}

	return details, nil
}

// Verify attaches the single human verdict to a result.
func (s *CheckService) Verify(ctx context.Context, note *domain.VerificationNote) error {
	if note == nil || note.ResultID <= 0 {
		return fmt.Errorf("%w: result id must be positive", domain.ErrInvalidInput)
	}
	if !note.Status.IsValid() {
		return fmt.Errorf("%w: unknown verification status %q", domain.ErrInvalidInput, note.Status)
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = s.now()
	}
	return s.checks.SaveVerification(ctx, note)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
