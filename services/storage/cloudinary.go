package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/asset"
)

// CloudinaryStore implements BlobStore backed by Cloudinary.
type CloudinaryStore struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinaryStore creates a BlobStore backed by the given Cloudinary client.
func NewCloudinaryStore(cld *cloudinary.Cloudinary, cloudName string) BlobStore {
	return &CloudinaryStore{cld: cld, cloudName: cloudName}
}

// progressReader wraps a reader and reports cumulative byte counts as the
// SDK consumes the payload.
type progressReader struct {
	r         io.Reader
	total     int64
	completed int64
	onRead    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.completed += int64(n)
		if p.onRead != nil {
			p.onRead(p.completed, p.total)
		}
	}
	return n, err
}

// resourceTypeFor maps a content type to Cloudinary's resource taxonomy,
// which files audio under "video".
func resourceTypeFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "audio/"), strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "raw"
	}
}

// PutBytes uploads data under path and returns the permanent public ID.
func (s *CloudinaryStore) PutBytes(ctx context.Context, path string, data []byte, contentType string, onProgress ProgressFunc) (string, error) {
	reader := &progressReader{
		r:      bytes.NewReader(data),
		total:  int64(len(data)),
		onRead: onProgress,
	}

	result, err := s.cld.Upload.Upload(ctx, reader, uploader.UploadParams{
		PublicID:     path,
		ResourceType: resourceTypeFor(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to upload %s: %w", path, err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("CloudinaryStore: no public ID returned for %s", path)
	}
	return result.PublicID, nil
}

// getAsset returns an asset instance based on the stored ref's media kind.
func (s *CloudinaryStore) getAsset(ref string) (*asset.Asset, error) {
	if strings.Contains(ref, "/voice_") {
		return s.cld.Video(ref)
	}
	return s.cld.Image(ref)
}

// GetDownloadURL constructs the public URL for a stored ref.
func (s *CloudinaryStore) GetDownloadURL(ctx context.Context, ref string) (string, error) {
	a, err := s.getAsset(ref)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to get asset %s: %w", ref, err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to get URL for %s: %w", ref, err)
	}
	return url, nil
}

// Delete removes a stored object given its public ID.
func (s *CloudinaryStore) Delete(ctx context.Context, ref string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: ref})
	if err != nil {
		return fmt.Errorf("CloudinaryStore: failed to delete %s: %w", ref, err)
	}
	return nil
}
