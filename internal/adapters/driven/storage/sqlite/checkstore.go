package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// checkStore implements driven.CheckStore over the check_request,
// check_result, check_match and verification_note tables.
type checkStore struct {
	store *Store
}

var _ driven.CheckStore = (*checkStore)(nil)

func (c *checkStore) CreateRequest(ctx context.Context, req *domain.CheckRequest) error {
	res, err := c.store.db.ExecContext(ctx, `
		INSERT INTO check_request (requested_by, doc_id, params_id, status, queued_at, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, req.RequestedBy, req.DocID, req.ParamsID, req.Status, req.QueuedAt, req.StartedAt, req.FinishedAt)
	if err != nil {
		return fmt.Errorf("inserting check request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting check request id: %w", err)
	}
	req.ID = id
	return nil
}

func (c *checkStore) UpdateRequestStatus(ctx context.Context, id int64, status domain.CheckStatus, at time.Time) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown check status %q", domain.ErrInvalidInput, status)
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var current domain.CheckStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM check_request WHERE id = ?`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return fmt.Errorf("check request %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("querying check status: %w", err)
	}
	if !current.CanTransitionTo(status) {
		return fmt.Errorf("%w: cannot move check %d from %s to %s", domain.ErrInvalidInput, id, current, status)
	}

	query := `UPDATE check_request SET status = ? WHERE id = ?`
	if status == domain.CheckStatusProcessing {
		query = `UPDATE check_request SET status = ?, started_at = ? WHERE id = ?`
	} else if status.IsTerminal() {
		query = `UPDATE check_request SET status = ?, finished_at = ? WHERE id = ?`
	}

	if status == domain.CheckStatusProcessing || status.IsTerminal() {
		_, err = tx.ExecContext(ctx, query, status, at, id)
	} else {
		_, err = tx.ExecContext(ctx, query, status, id)
	}
	if err != nil {
		return fmt.Errorf("updating check status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing check status: %w", err)
	}
	return nil
}

func (c *checkStore) GetRequest(ctx context.Context, id int64) (*domain.CheckRequest, error) {
	var req domain.CheckRequest
	var startedAt, finishedAt sql.NullTime
	err := c.store.db.QueryRowContext(ctx, `
		SELECT id, requested_by, doc_id, params_id, status, queued_at, started_at, finished_at
		FROM check_request
		WHERE id = ?
	`, id).Scan(&req.ID, &req.RequestedBy, &req.DocID, &req.ParamsID,
		&req.Status, &req.QueuedAt, &startedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("check request %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying check request: %w", err)
	}
	if startedAt.Valid {
		req.StartedAt = &startedAt.Time
	}
	if finishedAt.Valid {
		req.FinishedAt = &finishedAt.Time
	}
	return &req, nil
}

func (c *checkStore) SaveResult(ctx context.Context, result *domain.CheckResult) error {
	summary, err := json.Marshal(result.Summary)
	if err != nil {
		return fmt.Errorf("encoding result summary: %w", err)
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO check_result (check_id, similarity, report_path, summary_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, result.CheckID, result.Similarity, result.ReportPath, string(summary), result.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting check result: %w", err)
	}
	resultID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting check result id: %w", err)
	}

	for i := range result.Matches {
		m := &result.Matches[i]
		res, err := tx.ExecContext(ctx, `
			INSERT INTO check_match (result_id, source_type, source_id,
				doc_span_start, doc_span_end, src_span_start, src_span_end,
				match_score, snippet_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, resultID, m.SourceType, m.SourceID,
			m.DocSpanStart, m.DocSpanEnd, m.SrcSpanStart, m.SrcSpanEnd,
			m.MatchScore, m.SnippetHash)
		if err != nil {
			return fmt.Errorf("inserting check match: %w", err)
		}
		matchID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting check match id: %w", err)
		}
		m.ID = matchID
		m.ResultID = resultID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing check result: %w", err)
	}
	result.ID = resultID
	return nil
}

func (c *checkStore) GetResultByCheck(ctx context.Context, checkID int64) (*domain.CheckResult, error) {
	var result domain.CheckResult
	var reportPath sql.NullString
	var summary string
	err := c.store.db.QueryRowContext(ctx, `
		SELECT id, check_id, similarity, report_path, summary_json, created_at
		FROM check_result
		WHERE check_id = ?
	`, checkID).Scan(&result.ID, &result.CheckID, &result.Similarity,
		&reportPath, &summary, &result.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("result of check %d: %w", checkID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying check result: %w", err)
	}
	result.ReportPath = reportPath.String

	if err := json.Unmarshal([]byte(summary), &result.Summary); err != nil {
		return nil, fmt.Errorf("decoding result summary: %w", err)
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, result_id, source_type, source_id,
			doc_span_start, doc_span_end, src_span_start, src_span_end,
			match_score, snippet_hash
		FROM check_match
		WHERE result_id = ?
		ORDER BY match_score DESC, id ASC
	`, result.ID)
	if err != nil {
		return nil, fmt.Errorf("querying check matches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.CheckMatch
		err := rows.Scan(&m.ID, &m.ResultID, &m.SourceType, &m.SourceID,
			&m.DocSpanStart, &m.DocSpanEnd, &m.SrcSpanStart, &m.SrcSpanEnd,
			&m.MatchScore, &m.SnippetHash)
		if err != nil {
			return nil, fmt.Errorf("scanning check match: %w", err)
		}
		result.Matches = append(result.Matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating check matches: %w", err)
	}
	return &result, nil
}

func (c *checkStore) SaveVerification(ctx context.Context, note *domain.VerificationNote) error {
	var existing int64
	err := c.store.db.QueryRowContext(ctx,
		`SELECT id FROM verification_note WHERE result_id = ?`, note.ResultID).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: result %d already verified", domain.ErrInvalidInput, note.ResultID)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("querying verification note: %w", err)
	}

	res, err := c.store.db.ExecContext(ctx, `
		INSERT INTO verification_note (result_id, verifier_id, status, note_text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.ResultID, note.VerifierID, note.Status, note.NoteText, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting verification note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting verification note id: %w", err)
	}
	note.ID = id
	return nil
}

func (c *checkStore) GetVerification(ctx context.Context, resultID int64) (*domain.VerificationNote, error) {
	var note domain.VerificationNote
	err := c.store.db.QueryRowContext(ctx, `
		SELECT id, result_id, verifier_id, status, note_text, created_at
		FROM verification_note
		WHERE result_id = ?
	`, resultID).Scan(&note.ID, &note.ResultID, &note.VerifierID,
		&note.Status, &note.NoteText, &note.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("verification of result %d: %w", resultID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying verification note: %w", err)
	}
	return &note, nil
}
