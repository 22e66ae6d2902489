package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used for local development and tests
// when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]Document)}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = doc.CreatedAt
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}
	r.docs[doc.ID] = doc
	return doc, nil
}

// GetByID fetches a document owned by the given user.
func (r *MemoryRepo) GetByID(ctx context.Context, id, userID string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// ListByUser returns a newest-first window and the user's total count.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []Document
	for _, doc := range r.docs {
		if doc.UserID == userID {
			owned = append(owned, doc)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := len(owned)
	if offset >= total {
		return []Document{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	window := make([]Document, end-offset)
	copy(window, owned[offset:end])
	return window, total, nil
}

// Delete removes a document. Returns true iff it existed and was owned.
func (r *MemoryRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}

// UpdateStatus transitions a document's status. A non-empty error
// message replaces the metadata with {"error": message}.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, status Status, errorMessage string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return false, nil
	}
	doc.Status = status
	if errorMessage != "" {
		doc.Metadata = map[string]any{"error": errorMessage}
	}
	doc.UpdatedAt = time.Now().UTC()
	r.docs[id] = doc
	return true, nil
}

var _ Repo = (*MemoryRepo)(nil)
