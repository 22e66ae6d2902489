package documents

import (
	"context"

	"ragdocs-backend/internal/shared/metrics"
	"ragdocs-backend/internal/shared/storage/object"
	"ragdocs-backend/internal/shared/telemetry"
)

// Service contains the document workflow logic. The object store and
// the metadata repo are separate resources with no shared transaction,
// so upload approximates atomicity with compensating actions.
type Service struct {
	Store     object.ObjectStore
	Repo      Repo
	Validator *Validator
}

// compensation is a best-effort undo step recorded as the upload saga
// progresses. Failures are logged and never propagated so they cannot
// mask the original error.
type compensation struct {
	name string
	undo func(ctx context.Context) error
}

// Upload validates the payload, writes it to the object store, then
// records the metadata row with status pending. The storage write comes
// first so a metadata row never references a missing object; if the
// insert fails the stored object is removed best-effort, leaving at
// worst a transient orphaned object when that removal also fails.
func (s *Service) Upload(ctx context.Context, userID, fileName, contentType string, payload []byte, metadata map[string]any) (Document, error) {
	metrics.IncUploadStarted()

	if err := s.Validator.Validate(fileName, contentType, int64(len(payload))); err != nil {
		metrics.IncUploadFailed()
		return Document{}, err
	}

	documentID, storagePath := GenerateStorageKey(userID, fileName)

	var compensations []compensation

	if err := s.Store.Put(ctx, storagePath, "application/pdf", payload); err != nil {
		telemetry.Error("document.upload.storage_write_failed", map[string]any{
			"user_id":     userID,
			"document_id": documentID,
			"bucket_path": storagePath,
			"error":       err.Error(),
		})
		metrics.IncUploadFailed()
		return Document{}, ErrStorageWrite
	}
	compensations = append(compensations, compensation{
		name: "remove_stored_object",
		undo: func(ctx context.Context) error { return s.Store.Remove(ctx, storagePath) },
	})

	doc, err := s.Repo.Create(ctx, Document{
		ID:         documentID,
		UserID:     userID,
		FileName:   fileName,
		BucketPath: storagePath,
		Status:     StatusPending,
		Metadata:   metadata,
	})
	if err != nil {
		telemetry.Error("document.upload.metadata_write_failed", map[string]any{
			"user_id":     userID,
			"document_id": documentID,
			"error":       err.Error(),
		})
		s.runCompensations(ctx, documentID, compensations)
		metrics.IncUploadFailed()
		return Document{}, ErrMetadataWrite
	}

	metrics.IncUploadCompleted()
	metrics.ObserveUploadSizeBytes(float64(len(payload)))
	telemetry.Info("document.upload.accepted", map[string]any{
		"user_id":     userID,
		"document_id": doc.ID,
		"bucket_path": doc.BucketPath,
		"size_bytes":  len(payload),
	})
	return doc, nil
}

func (s *Service) runCompensations(ctx context.Context, documentID string, steps []compensation) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if err := step.undo(ctx); err != nil {
			telemetry.Warn("document.upload.compensation_failed", map[string]any{
				"document_id": documentID,
				"step":        step.name,
				"error":       err.Error(),
			})
		}
	}
}

// Get returns a document owned by the user or ErrNotFound.
func (s *Service) Get(ctx context.Context, documentID, userID string) (Document, error) {
	return s.Repo.GetByID(ctx, documentID, userID)
}

// List returns a newest-first window of the user's documents plus the
// exact total count. Bounds clamping is the route layer's job.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, int, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a document. The metadata row is authoritative: the
// object removal is best-effort and its failure is logged, not
// surfaced, so a leaked object is possible but the document is gone.
func (s *Service) Delete(ctx context.Context, documentID, userID string) error {
	doc, err := s.Repo.GetByID(ctx, documentID, userID)
	if err != nil {
		return err
	}

	if err := s.Store.Remove(ctx, doc.BucketPath); err != nil {
		telemetry.Warn("document.delete.object_remove_failed", map[string]any{
			"user_id":     userID,
			"document_id": documentID,
			"bucket_path": doc.BucketPath,
			"error":       err.Error(),
		})
	}

	removed, err := s.Repo.Delete(ctx, documentID, userID)
	if err != nil {
		telemetry.Error("document.delete.row_delete_failed", map[string]any{
			"user_id":     userID,
			"document_id": documentID,
			"error":       err.Error(),
		})
		return ErrDeleteFailed
	}
	if !removed {
		return ErrNotFound
	}

	metrics.IncDelete()
	return nil
}

// Download returns the document's stored bytes along with its metadata
// for the response headers. The payload is buffered in memory.
func (s *Service) Download(ctx context.Context, documentID, userID string) (Document, []byte, error) {
	doc, err := s.Repo.GetByID(ctx, documentID, userID)
	if err != nil {
		return Document{}, nil, err
	}

	payload, err := s.Store.Get(ctx, doc.BucketPath)
	if err != nil {
		telemetry.Error("document.download.object_read_failed", map[string]any{
			"user_id":     userID,
			"document_id": documentID,
			"bucket_path": doc.BucketPath,
			"error":       err.Error(),
		})
		return Document{}, nil, ErrDownloadFailed
	}

	metrics.IncDownload()
	return doc, payload, nil
}
