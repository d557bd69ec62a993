package storage

import "context"

// ProgressFunc receives completed/total byte counts while an upload is in
// flight. Callbacks may fire at any frequency; callers apply last-value-wins.
type ProgressFunc func(completed, total int64)

// BlobStore defines the blob storage contract the media pipeline consumes:
// write bytes under a namespaced path with explicit content-type metadata,
// then resolve a durable download URL for the stored object.
type BlobStore interface {
	// PutBytes uploads data under path and returns the stored object ref.
	PutBytes(ctx context.Context, path string, data []byte, contentType string, onProgress ProgressFunc) (string, error)
	// GetDownloadURL resolves a retrievable URL for a previously stored ref.
	// New objects may not resolve immediately after upload.
	GetDownloadURL(ctx context.Context, ref string) (string, error)
	// Delete removes a stored object.
	Delete(ctx context.Context, ref string) error
}
