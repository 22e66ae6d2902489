package documents

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ragdocs-backend/internal/shared/util"
)

// Validator holds the upload acceptance rules. Checks run in a fixed
// order and short-circuit on the first failure.
type Validator struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
}

// Validate checks a candidate upload. The declared content type is
// trusted here; byte sniffing is deliberately out of scope.
func (v *Validator) Validate(fileName, contentType string, size int64) error {
	if fileName == "" {
		return ErrMissingFile
	}
	if !v.mimeAllowed(contentType) {
		return ErrUnsupportedType
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return ErrUnsupportedType
	}
	if size > v.MaxSizeBytes {
		return ErrFileTooLarge
	}
	if size <= 0 {
		return ErrEmptyFile
	}
	return nil
}

func (v *Validator) mimeAllowed(contentType string) bool {
	for _, allowed := range v.AllowedMimeTypes {
		if strings.EqualFold(strings.TrimSpace(contentType), allowed) {
			return true
		}
	}
	return false
}

// GenerateStorageKey derives a fresh document id and its storage path.
// The path is {user_id}/{document_id}_{sanitized_name}: per-user
// namespacing plus a random UUID gives global uniqueness without a
// lookup. Collisions are negligible and not checked.
func GenerateStorageKey(userID, fileName string) (documentID, storagePath string) {
	documentID = uuid.NewString()
	sanitized := util.SanitizeFileName(fileName)
	storagePath = fmt.Sprintf("%s/%s_%s", userID, documentID, sanitized)
	return documentID, storagePath
}
