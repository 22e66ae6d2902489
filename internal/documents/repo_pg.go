package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, file_name, bucket_path, status, metadata, created_at, updated_at`

// Create inserts a new document and returns the stored row.
func (r *PGRepo) Create(ctx context.Context, doc Document) (Document, error) {
	const query = `
INSERT INTO documents (id, user_id, file_name, bucket_path, status, metadata)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + documentColumns

	metadata, err := marshalMetadata(doc.Metadata)
	if err != nil {
		return Document{}, err
	}

	row := r.DB.QueryRowContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.BucketPath,
		string(doc.Status),
		metadata,
	)
	return scanDocument(row)
}

// GetByID fetches a document by id scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, id, userID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1 AND user_id = $2`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser returns a newest-first window plus the exact total count.
// The count is a separate query, not the window size.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, int, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	const countQuery = `SELECT COUNT(*) FROM documents WHERE user_id = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// Delete removes a document row. Returns true iff a row was removed.
func (r *PGRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	const query = `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UpdateStatus transitions a document's status. A non-empty error
// message overwrites metadata with {"error": message}; prior metadata
// is replaced, not merged.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status, errorMessage string) (bool, error) {
	var (
		res sql.Result
		err error
	)
	if errorMessage != "" {
		metadata, merr := marshalMetadata(map[string]any{"error": errorMessage})
		if merr != nil {
			return false, merr
		}
		const query = `
UPDATE documents
SET status = $1, metadata = $2, updated_at = NOW()
WHERE id = $3`
		res, err = r.DB.ExecContext(ctx, query, string(status), metadata, id)
	} else {
		const query = `
UPDATE documents
SET status = $1, updated_at = NOW()
WHERE id = $2`
		res, err = r.DB.ExecContext(ctx, query, string(status), id)
	}
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var (
		doc      Document
		status   string
		metadata []byte
	)
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.BucketPath,
		&status,
		&metadata,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return Document{}, err
	}
	doc.Status = Status(status)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return json.Marshal(metadata)
}

var _ Repo = (*PGRepo)(nil)
