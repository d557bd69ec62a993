package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cupid/services/storage"
	"cupid/utils"
)

// fakeBlobStore records uploads and fails URL resolution a configurable
// number of times before succeeding.
type fakeBlobStore struct {
	putCalls     int
	putErr       error
	urlCalls     int
	urlFailures  int
	lastPath     string
	lastType     string
	lastProgress float64
}

func (f *fakeBlobStore) PutBytes(ctx context.Context, path string, data []byte, contentType string, onProgress storage.ProgressFunc) (string, error) {
	f.putCalls++
	if f.putErr != nil {
		return "", f.putErr
	}
	f.lastPath = path
	f.lastType = contentType
	if onProgress != nil {
		onProgress(int64(len(data)/2), int64(len(data)))
		onProgress(int64(len(data)), int64(len(data)))
		f.lastProgress = 1
	}
	return path, nil
}

func (f *fakeBlobStore) GetDownloadURL(ctx context.Context, ref string) (string, error) {
	f.urlCalls++
	if f.urlCalls <= f.urlFailures {
		return "", errors.New("object not yet available")
	}
	return "https://cdn.example.com/" + ref, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, ref string) error { return nil }

func testPipeline(store storage.BlobStore) *Pipeline {
	return &Pipeline{
		Store:         store,
		MaxDimension:  800,
		JPEGQuality:   50,
		SettleDelay:   0,
		RetryAttempts: 3,
		RetryInterval: time.Millisecond,
	}
}

func TestUploadPhotoReportsProgressAndResolvesURL(t *testing.T) {
	store := &fakeBlobStore{}
	p := testPipeline(store)

	task, err := p.UploadPhoto(context.Background(), "user-1", testPNG(t, 1200, 900))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	url, done, taskErr := task.Outcome()
	if !done || taskErr != nil {
		t.Fatalf("expected terminal success, got done=%v err=%v", done, taskErr)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/profiles/user-1/photo_") {
		t.Fatalf("unexpected resolved URL %q", url)
	}
	if task.Progress() != 1 {
		t.Fatalf("expected full progress, got %f", task.Progress())
	}
	if store.lastType != "image/jpeg" {
		t.Fatalf("expected image/jpeg content type, got %q", store.lastType)
	}
}

func TestUploadPhotoRetriesURLResolutionTwiceThenSucceeds(t *testing.T) {
	store := &fakeBlobStore{urlFailures: 2}
	p := testPipeline(store)

	start := time.Now()
	task, err := p.UploadPhoto(context.Background(), "user-1", testPNG(t, 100, 100))
	if err != nil {
		t.Fatalf("expected success on 3rd attempt, got %v", err)
	}
	if store.urlCalls != 3 {
		t.Fatalf("expected 3 resolution attempts, got %d", store.urlCalls)
	}
	if elapsed := time.Since(start); elapsed < 3*time.Millisecond {
		t.Fatalf("expected at least 3 retry delays, elapsed %v", elapsed)
	}
	if url, _, _ := task.Outcome(); url == "" {
		t.Fatal("expected resolved URL on task")
	}
}

func TestUploadPhotoExhaustsURLResolutionRetries(t *testing.T) {
	store := &fakeBlobStore{urlFailures: 10}
	p := testPipeline(store)

	_, err := p.UploadPhoto(context.Background(), "user-1", testPNG(t, 100, 100))
	if !errors.Is(err, utils.ErrMaxAttemptsReached) {
		t.Fatalf("expected max-attempts error, got %v", err)
	}
	if store.urlCalls != 3 {
		t.Fatalf("expected exactly 3 attempts before giving up, got %d", store.urlCalls)
	}
}

func TestUploadPhotoDoesNotRetryUploadErrors(t *testing.T) {
	store := &fakeBlobStore{putErr: errors.New("network down")}
	p := testPipeline(store)

	_, err := p.UploadPhoto(context.Background(), "user-1", testPNG(t, 100, 100))
	if err == nil {
		t.Fatal("expected upload error")
	}
	if store.putCalls != 1 {
		t.Fatalf("upload must not be retried, got %d attempts", store.putCalls)
	}
	if store.urlCalls != 0 {
		t.Fatalf("URL resolution must not run after a failed upload, got %d calls", store.urlCalls)
	}
}

func TestUploadPhotoFailsFastOnUndecodableImage(t *testing.T) {
	store := &fakeBlobStore{}
	p := testPipeline(store)

	_, err := p.UploadPhoto(context.Background(), "user-1", []byte("not an image"))
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
	if store.putCalls != 0 {
		t.Fatal("nothing should be uploaded for an undecodable image")
	}
}

func TestUploadProfileMediaSwallowsVoiceFailure(t *testing.T) {
	photoStore := &fakeBlobStore{}
	p := testPipeline(&voiceFailingStore{inner: photoStore})

	photoURL, voiceURL, err := p.UploadProfileMedia(context.Background(), "user-1", testPNG(t, 100, 100), []byte("audio-bytes"))
	if err != nil {
		t.Fatalf("photo leg should succeed despite voice failure: %v", err)
	}
	if photoURL == "" {
		t.Fatal("expected photo URL")
	}
	if voiceURL != "" {
		t.Fatalf("expected empty voice URL after swallowed failure, got %q", voiceURL)
	}
}

func TestUploadProfileMediaFailsWhenPhotoFails(t *testing.T) {
	store := &fakeBlobStore{putErr: errors.New("storage rejected write")}
	p := testPipeline(store)

	_, _, err := p.UploadProfileMedia(context.Background(), "user-1", testPNG(t, 100, 100), nil)
	if err == nil {
		t.Fatal("expected photo failure to surface")
	}
}

// voiceFailingStore delegates photo paths and rejects voice paths.
type voiceFailingStore struct {
	inner *fakeBlobStore
}

func (s *voiceFailingStore) PutBytes(ctx context.Context, path string, data []byte, contentType string, onProgress storage.ProgressFunc) (string, error) {
	if strings.Contains(path, "/voice_") {
		return "", errors.New("voice bucket unavailable")
	}
	return s.inner.PutBytes(ctx, path, data, contentType, onProgress)
}

func (s *voiceFailingStore) GetDownloadURL(ctx context.Context, ref string) (string, error) {
	return s.inner.GetDownloadURL(ctx, ref)
}

func (s *voiceFailingStore) Delete(ctx context.Context, ref string) error { return nil }
