package documents

import "errors"

var (
	// ErrMissingFile indicates the multipart request carried no file part.
	ErrMissingFile = errors.New("no file provided")

	// ErrUnsupportedType indicates a disallowed content type or extension.
	ErrUnsupportedType = errors.New("only PDF files are supported")

	// ErrFileTooLarge indicates the payload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")

	// ErrEmptyFile indicates a zero-byte payload.
	ErrEmptyFile = errors.New("File is empty")

	// ErrNotFound indicates no document exists for that id and user.
	ErrNotFound = errors.New("document not found")

	// ErrStorageWrite indicates the object store rejected the upload.
	ErrStorageWrite = errors.New("failed to write file to storage")

	// ErrMetadataWrite indicates the metadata row could not be created.
	ErrMetadataWrite = errors.New("failed to record document metadata")

	// ErrDeleteFailed indicates the metadata row could not be removed.
	ErrDeleteFailed = errors.New("failed to delete document")

	// ErrDownloadFailed indicates the object could not be read back.
	ErrDownloadFailed = errors.New("failed to download document")
)
