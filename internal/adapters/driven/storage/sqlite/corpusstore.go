package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// corpusStore implements driven.CorpusStore over the corpus_document table.
type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

func (c *corpusStore) Save(ctx context.Context, doc *domain.CorpusDocument) error {
	if doc.ID == 0 {
		res, err := c.store.db.ExecContext(ctx, `
			INSERT INTO corpus_document (title, source_type, source_ref, path_text, is_active)
			VALUES (?, ?, ?, ?, ?)
		`, doc.Title, doc.SourceType, doc.SourceRef, doc.PathText, doc.IsActive)
		if err != nil {
			return fmt.Errorf("inserting corpus document: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting corpus document id: %w", err)
		}
		doc.ID = id
		return nil
	}

	res, err := c.store.db.ExecContext(ctx, `
		UPDATE corpus_document
		SET title = ?, source_type = ?, source_ref = ?, path_text = ?, is_active = ?
		WHERE id = ?
	`, doc.Title, doc.SourceType, doc.SourceRef, doc.PathText, doc.IsActive, doc.ID)
	if err != nil {
		return fmt.Errorf("updating corpus document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking corpus update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("corpus document %d: %w", doc.ID, domain.ErrNotFound)
	}
	return nil
}

func (c *corpusStore) Get(ctx context.Context, id int64) (*domain.CorpusDocument, error) {
	var doc domain.CorpusDocument
	err := c.store.db.QueryRowContext(ctx, `
		SELECT id, title, source_type, source_ref, path_text, is_active
		FROM corpus_document
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Title, &doc.SourceType, &doc.SourceRef, &doc.PathText, &doc.IsActive)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("corpus document %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying corpus document: %w", err)
	}
	return &doc, nil
}

func (c *corpusStore) List(ctx context.Context) ([]domain.CorpusDocument, error) {
	return c.list(ctx, `
		SELECT id, title, source_type, source_ref, path_text, is_active
		FROM corpus_document
		ORDER BY id ASC
	`)
}

func (c *corpusStore) ListActive(ctx context.Context) ([]domain.CorpusDocument, error) {
	return c.list(ctx, `
		SELECT id, title, source_type, source_ref, path_text, is_active
		FROM corpus_document
		WHERE is_active = 1
		ORDER BY id ASC
	`)
}

func (c *corpusStore) list(ctx context.Context, query string) ([]domain.CorpusDocument, error) {
	rows, err := c.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var docs []domain.CorpusDocument
	for rows.Next() {
		var doc domain.CorpusDocument
		err := rows.Scan(&doc.ID, &doc.Title, &doc.SourceType, &doc.SourceRef, &doc.PathText, &doc.IsActive)
		if err != nil {
			return nil, fmt.Errorf("scanning corpus row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus rows: %w", err)
	}
	return docs, nil
}

func (c *corpusStore) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := c.store.db.ExecContext(ctx, `
		UPDATE corpus_document SET is_active = ? WHERE id = ?
	`, active, id)
	if err != nil {
		return fmt.Errorf("updating corpus membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking corpus membership update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("corpus document %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
