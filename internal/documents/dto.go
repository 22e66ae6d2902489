package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID string         `json:"document_id"`
	FileName   string         `json:"file_name"`
	Status     string         `json:"status"`
	BucketPath string         `json:"bucket_path"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// UploadResponse acknowledges an accepted upload.
type UploadResponse struct {
	DocumentID string    `json:"document_id"`
	FileName   string    `json:"file_name"`
	Status     string    `json:"status"`
	BucketPath string    `json:"bucket_path"`
	CreatedAt  time.Time `json:"created_at"`
	Message    string    `json:"message"`
}

// ListResponse pairs a page of documents with the exact total count.
type ListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
}

func toResponse(doc Document) DocumentResponse {
	metadata := doc.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return DocumentResponse{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		Status:     string(doc.Status),
		BucketPath: doc.BucketPath,
		Metadata:   metadata,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func toUploadResponse(doc Document) UploadResponse {
	return UploadResponse{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		Status:     string(doc.Status),
		BucketPath: doc.BucketPath,
		CreatedAt:  doc.CreatedAt,
		Message:    "Document uploaded successfully and queued for processing",
	}
}

func toListResponse(docs []Document, total int) ListResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	return ListResponse{Documents: out, Total: total}
}
