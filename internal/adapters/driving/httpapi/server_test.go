package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driving"
)

// mockCheckService lets handler tests script the service outcome.
type mockCheckService struct {
	runOut  *driving.RunCheckOutput
	runErr  error
	lastIn  driving.RunCheckInput
	details *driving.CheckDetails
	getErr  error
}

var _ driving.CheckService = (*mockCheckService)(nil)

func (m *mockCheckService) RunCheck(_ context.Context, in driving.RunCheckInput) (*driving.RunCheckOutput, error) {
	m.lastIn = in
	return m.runOut, m.runErr
}

func (m *mockCheckService) GetCheck(_ context.Context, _ int64, _ bool) (*driving.CheckDetails, error) {
	return m.details, m.getErr
}

func (m *mockCheckService) Verify(_ context.Context, _ *domain.VerificationNote) error {
	return nil
}

func TestServer_RunCheckSuccess(t *testing.T) {
	svc := &mockCheckService{
		runOut: &driving.RunCheckOutput{
			CheckID:         7,
			ResultID:        3,
			Similarity:      83.25,
			Threshold:       0.8,
			CandidatesCount: 2,
			MatchesInserted: 5,
		},
	}
	srv := NewServer(svc, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/checks",
		strings.NewReader(`{"doc_id": 12, "max_candidates": 10}`))
	req.Header.Set("X-Requested-By", "alice")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var out driving.RunCheckOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(7), out.CheckID)
	assert.Equal(t, 83.25, out.Similarity)

	assert.Equal(t, int64(12), svc.lastIn.DocID)
	assert.Equal(t, 10, svc.lastIn.MaxCandidates)
	assert.Equal(t, "alice", svc.lastIn.RequestedBy)
}

func TestServer_RunCheckMalformedBody(t *testing.T) {
	srv := NewServer(&mockCheckService{}, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/checks", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "InvalidInput", body.Error)
}

func TestServer_ErrorKindStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "InvalidInput"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NotFound"},
		{"no active params", domain.ErrNoActiveParams, http.StatusConflict, "NoActiveParams"},
		{"too short", domain.ErrEmptyOrTooShort, http.StatusUnprocessableEntity, "EmptyOrTooShort"},
		{"deadline", domain.ErrDeadline, http.StatusGatewayTimeout, "Deadline"},
		{"persistence", domain.ErrPersistence, http.StatusInternalServerError, "Persistence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(&mockCheckService{runErr: tt.err}, 0)

			req := httptest.NewRequest(http.MethodPost, "/api/checks",
				strings.NewReader(`{"doc_id": 1}`))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Error)
		})
	}
}

func TestServer_GetCheckWithResult(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	svc := &mockCheckService{
		details: &driving.CheckDetails{
			Request: domain.CheckRequest{
				ID:     7,
				DocID:  12,
				Status: domain.CheckStatusDone,
			},
			Result: &domain.CheckResult{
				ID:         3,
				CheckID:    7,
				Similarity: 42.5,
				CreatedAt:  created,
				Matches: []domain.CheckMatch{
					{SourceType: domain.SourceTypeUpload, SourceID: 2, DocSpanEnd: 40, SrcSpanEnd: 40, MatchScore: 0.9, SnippetHash: "123"},
				},
			},
			Preview: "some normalized text",
		},
	}
	srv := NewServer(svc, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/checks/7?preview=1", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp checkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.CheckID)
	assert.Equal(t, domain.CheckStatusDone, resp.Status)
	require.NotNil(t, resp.Similarity)
	assert.Equal(t, 42.5, *resp.Similarity)
	require.NotNil(t, resp.Result)
	require.Len(t, resp.Result.Matches, 1)
	assert.Equal(t, "123", resp.Result.Matches[0].SnippetHash)
	assert.Equal(t, "2025-03-14T09:26:53Z", resp.Result.CreatedAt)
	assert.Equal(t, "some normalized text", resp.Preview)
}

func TestServer_GetCheckWithoutResult(t *testing.T) {
	svc := &mockCheckService{
		details: &driving.CheckDetails{
			Request: domain.CheckRequest{ID: 9, DocID: 1, Status: domain.CheckStatusFailed},
		},
	}
	srv := NewServer(svc, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/checks/9", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp checkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.CheckStatusFailed, resp.Status)
	assert.Nil(t, resp.Similarity)
	assert.Nil(t, resp.Result)
}

func TestServer_GetCheckBadID(t *testing.T) {
	srv := NewServer(&mockCheckService{}, 0)

	for _, path := range []string{"/api/checks/abc", "/api/checks/0", "/api/checks/-3"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestServer_RateLimitExhaustion(t *testing.T) {
	svc := &mockCheckService{runOut: &driving.RunCheckOutput{CheckID: 1}}
	srv := NewServer(svc, 2)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/checks",
			strings.NewReader(`{"doc_id": 1}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	// Burst of 2, so the third request in the same instant is rejected.
	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}
