package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore over the user_document table.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

func (d *documentStore) SaveDocument(ctx context.Context, doc *domain.UserDocument) error {
	if doc.ID == 0 {
		res, err := d.store.db.ExecContext(ctx, `
			INSERT INTO user_document (owner, title, mime_type, size_bytes, status, path_raw, path_text)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, doc.Owner, doc.Title, doc.MIMEType, doc.SizeBytes, doc.Status, doc.PathRaw, doc.PathText)
		if err != nil {
			return fmt.Errorf("inserting document: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting document id: %w", err)
		}
		doc.ID = id
		return nil
	}

	res, err := d.store.db.ExecContext(ctx, `
		UPDATE user_document
		SET owner = ?, title = ?, mime_type = ?, size_bytes = ?, status = ?, path_raw = ?, path_text = ?
		WHERE id = ?
	`, doc.Owner, doc.Title, doc.MIMEType, doc.SizeBytes, doc.Status, doc.PathRaw, doc.PathText, doc.ID)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking document update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %d: %w", doc.ID, domain.ErrNotFound)
	}
	return nil
}

func (d *documentStore) GetDocument(ctx context.Context, id int64) (*domain.UserDocument, error) {
	var doc domain.UserDocument
	var pathRaw sql.NullString
	err := d.store.db.QueryRowContext(ctx, `
		SELECT id, owner, title, mime_type, size_bytes, status, path_raw, path_text
		FROM user_document
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Owner, &doc.Title, &doc.MIMEType,
		&doc.SizeBytes, &doc.Status, &pathRaw, &doc.PathText)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}
	doc.PathRaw = pathRaw.String
	return &doc, nil
}
