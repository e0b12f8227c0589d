// Package httpapi exposes the check pipeline over HTTP: submitting a check
// and reading a finished one back with its matches.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driving"
	"github.com/jordannanyan/plagiarism-backend/internal/logger"
)

// Server routes the public check API. It is an http.Handler.
type Server struct {
	checks  driving.CheckService
	limiter *rate.Limiter
	mux     *http.ServeMux
}

// NewServer creates the API server. ratePerMinute caps check submissions;
// zero or negative disables limiting.
func NewServer(checks driving.CheckService, ratePerMinute int) *Server {
	s := &Server{
		checks: checks,
	}
	if ratePerMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60.0), ratePerMinute)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/checks", s.handleRunCheck)
	mux.HandleFunc("GET /api/checks/{id}", s.handleGetCheck)
	s.mux = mux
	return s
}

// ServeHTTP tags every request with a correlation id before dispatch.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-ID", reqID)
	logger.Debug("http %s %s request_id=%s", r.Method, r.URL.Path, reqID)
	s.mux.ServeHTTP(w, r)
}

// runCheckRequest is the POST /api/checks body.
type runCheckRequest struct {
	DocID         int64 `json:"doc_id"`
	MaxCandidates int   `json:"max_candidates"`
}

func (s *Server) handleRunCheck(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "RateLimited", "too many check requests")
		return
	}

	var body runCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidInput", "malformed JSON body")
		return
	}

	out, err := s.checks.RunCheck(r.Context(), driving.RunCheckInput{
		DocID:         body.DocID,
		RequestedBy:   requester(r),
		MaxCandidates: body.MaxCandidates,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// checkResponse is the GET /api/checks/{id} payload.
type checkResponse struct {
	CheckID    int64              `json:"check_id"`
	DocID      int64              `json:"doc_id"`
	Status     domain.CheckStatus `json:"status"`
	Similarity *float64           `json:"similarity,omitempty"`
	Result     *resultResponse    `json:"result,omitempty"`
	Preview    string             `json:"preview,omitempty"`
}

type resultResponse struct {
	ResultID  int64               `json:"result_id"`
	Summary   domain.CheckSummary `json:"summary"`
	Matches   []matchResponse     `json:"matches"`
	CreatedAt string              `json:"created_at"`
}

type matchResponse struct {
	SourceType   domain.SourceType `json:"source_type"`
	SourceID     int64             `json:"source_id"`
	DocSpanStart int               `json:"doc_span_start"`
	DocSpanEnd   int               `json:"doc_span_end"`
	SrcSpanStart int               `json:"src_span_start"`
	SrcSpanEnd   int               `json:"src_span_end"`
	MatchScore   float64           `json:"match_score"`
	SnippetHash  string            `json:"snippet_hash"`
}

func (s *Server) handleGetCheck(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "InvalidInput", "check id must be a positive integer")
		return
	}

	withPreview := r.URL.Query().Get("preview") == "1"
	details, err := s.checks.GetCheck(r.Context(), id, withPreview)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := checkResponse{
		CheckID: details.Request.ID,
		DocID:   details.Request.DocID,
		Status:  details.Request.Status,
		Preview: details.Preview,
	}
	if details.Result != nil {
		resp.Similarity = &details.Result.Similarity
		matches := make([]matchResponse, 0, len(details.Result.Matches))
		for _, m := range details.Result.Matches {
			matches = append(matches, matchResponse{
				SourceType:   m.SourceType,
				SourceID:     m.SourceID,
				DocSpanStart: m.DocSpanStart,
				DocSpanEnd:   m.DocSpanEnd,
				SrcSpanStart: m.SrcSpanStart,
				SrcSpanEnd:   m.SrcSpanEnd,
				MatchScore:   m.MatchScore,
				SnippetHash:  m.SnippetHash,
			})
		}
		resp.Result = &resultResponse{
			ResultID:  details.Result.ID,
			Summary:   details.Result.Summary,
			Matches:   matches,
			CreatedAt: details.Result.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// requester resolves the caller identity. Auth is out of scope; the header
// is trusted as-is and anonymous callers get a fixed name.
func requester(r *http.Request) string {
	if who := r.Header.Get("X-Requested-By"); who != "" {
		return who
	}
	return "anonymous"
}

// errorBody is the uniform error payload. The error field carries the
// stable kind string clients switch on.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeDomainError(w http.ResponseWriter, err error) {
	kind := domain.Kind(err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNoActiveParams):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrEmptyOrTooShort):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDeadline):
		status = http.StatusGatewayTimeout
	}

	if status == http.StatusInternalServerError {
		logger.Warn("http request failed: %v", err)
	}
	writeError(w, status, kind, err.Error())
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
