package documents

import "context"

// Repo defines persistence operations for document metadata. Every
// read, update, and delete is scoped by the owning user's id.
type Repo interface {
	Create(ctx context.Context, doc Document) (Document, error)
	GetByID(ctx context.Context, id, userID string) (Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, int, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status, errorMessage string) (bool, error)
}
