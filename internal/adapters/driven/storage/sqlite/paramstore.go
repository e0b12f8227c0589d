package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// paramStore implements driven.ParamStore over the algoritma_params table.
type paramStore struct {
	store *Store
}

var _ driven.ParamStore = (*paramStore)(nil)

func (p *paramStore) Active(ctx context.Context, now time.Time) (*domain.AlgorithmParams, error) {
	row := p.store.db.QueryRowContext(ctx, `
		SELECT id, k, w, base, threshold, active_from, active_to
		FROM algoritma_params
		WHERE active_from <= ? AND (active_to IS NULL OR active_to > ?)
		ORDER BY active_from DESC, id DESC
		LIMIT 1
	`, now, now)

	params, err := scanParams(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNoActiveParams
	}
	if err != nil {
		return nil, fmt.Errorf("querying active params: %w", err)
	}
	return params, nil
}

func (p *paramStore) Append(ctx context.Context, params domain.AlgorithmParams) (int64, error) {
	tx, err := p.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Close the currently open row at the new activation instant.
	_, err = tx.ExecContext(ctx, `
		UPDATE algoritma_params SET active_to = ? WHERE active_to IS NULL
	`, params.ActiveFrom)
	if err != nil {
		return 0, fmt.Errorf("closing open params row: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO algoritma_params (k, w, base, threshold, active_from, active_to)
		VALUES (?, ?, ?, ?, ?, ?)
	`, params.K, params.W, params.Base, params.Threshold, params.ActiveFrom, params.ActiveTo)
	if err != nil {
		return 0, fmt.Errorf("inserting params row: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting params id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing params row: %w", err)
	}
	return id, nil
}

func (p *paramStore) History(ctx context.Context) ([]domain.AlgorithmParams, error) {
	rows, err := p.store.db.QueryContext(ctx, `
		SELECT id, k, w, base, threshold, active_from, active_to
		FROM algoritma_params
		ORDER BY active_from DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying params history: %w", err)
	}
	defer rows.Close()

	var history []domain.AlgorithmParams
	for rows.Next() {
		params, err := scanParams(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning params row: %w", err)
		}
		history = append(history, *params)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating params history: %w", err)
	}
	return history, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanParams(s scanner) (*domain.AlgorithmParams, error) {
	var params domain.AlgorithmParams
	var activeTo sql.NullTime
	err := s.Scan(&params.ID, &params.K, &params.W, &params.Base,
		&params.Threshold, &params.ActiveFrom, &activeTo)
	if err != nil {
		return nil, err
	}
	if activeTo.Valid {
		params.ActiveTo = &activeTo.Time
	}
	return &params, nil
}
