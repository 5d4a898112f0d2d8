package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object. Key is what rows persist;
// Location is the provider URL at upload time.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader abstracts the object store holding profile photos, task
// record files and presentation PDFs.
type FileUploader interface {
	// Upload streams the reader's content under key with the given
	// content type.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete removes the object; absent keys are not an error.
	Delete(ctx context.Context, key string) error

	// GetPublicURL returns the browser-reachable URL for a stored key.
	GetPublicURL(key string) string
}
