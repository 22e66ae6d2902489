package documents

import "time"

// Status tracks a document through its processing lifecycle. Only the
// upload workflow creates rows (always pending); later transitions come
// from an external processing pipeline via UpdateStatus.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Document represents an uploaded PDF owned by a user.
type Document struct {
	ID         string
	UserID     string
	FileName   string
	BucketPath string
	Status     Status
	Metadata   map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
