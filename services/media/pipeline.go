package media

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cupid/config"
	"cupid/models"
	"cupid/services/storage"
	"cupid/utils"

	"go.uber.org/zap"
)

const (
	photoContentType = "image/jpeg"
	voiceContentType = "audio/m4a"
)

// Uploader is the contract the wizard consumes to turn staged media into
// durable URLs.
type Uploader interface {
	UploadPhoto(ctx context.Context, profileID string, data []byte) (*models.UploadTask, error)
	UploadVoiceIntro(ctx context.Context, profileID string, data []byte) (string, error)
	UploadProfileMedia(ctx context.Context, profileID string, photo, voice []byte) (photoURL, voiceURL string, err error)
}

// Pipeline implements Uploader: normalize the image, write it to blob
// storage under the profile's namespace, then resolve a download URL with a
// bounded fixed-delay retry. Only URL resolution is retried; encode and
// upload failures surface immediately.
type Pipeline struct {
	Store storage.BlobStore

	MaxDimension  int
	JPEGQuality   int
	SettleDelay   time.Duration
	RetryAttempts int
	RetryInterval time.Duration
}

// NewPipeline builds a Pipeline from the application configuration.
func NewPipeline(store storage.BlobStore) *Pipeline {
	return &Pipeline{
		Store:         store,
		MaxDimension:  config.AppConfig.PhotoMaxDimension,
		JPEGQuality:   config.AppConfig.PhotoJPEGQuality,
		SettleDelay:   time.Duration(config.AppConfig.URLSettleDelaySec) * time.Second,
		RetryAttempts: config.AppConfig.URLResolveAttempts,
		RetryInterval: time.Duration(config.AppConfig.URLResolveDelaySec) * time.Second,
	}
}

// UploadPhoto runs the full photo pipeline and returns the terminal task.
func (p *Pipeline) UploadPhoto(ctx context.Context, profileID string, data []byte) (*models.UploadTask, error) {
	encoded, err := NormalizePhoto(data, p.MaxDimension, p.JPEGQuality)
	if err != nil {
		task := models.NewUploadTask("", int64(len(data)))
		task.Fail(err)
		return task, err
	}

	path := fmt.Sprintf("profiles/%s/photo_%d", profileID, time.Now().Unix())
	task := models.NewUploadTask(path, int64(len(encoded)))

	ref, err := p.Store.PutBytes(ctx, path, encoded, photoContentType, task.SetProgress)
	if err != nil {
		err = fmt.Errorf("photo upload failed: %w", err)
		task.Fail(err)
		return task, err
	}

	url, err := p.resolveURL(ctx, ref)
	if err != nil {
		task.Fail(err)
		return task, err
	}

	task.Finish(url)
	return task, nil
}

// UploadVoiceIntro uploads a recorded voice clip as-is and resolves its URL.
func (p *Pipeline) UploadVoiceIntro(ctx context.Context, profileID string, data []byte) (string, error) {
	path := fmt.Sprintf("profiles/%s/voice_%d", profileID, time.Now().Unix())
	task := models.NewUploadTask(path, int64(len(data)))

	ref, err := p.Store.PutBytes(ctx, path, data, voiceContentType, task.SetProgress)
	if err != nil {
		err = fmt.Errorf("voice intro upload failed: %w", err)
		task.Fail(err)
		return "", err
	}

	url, err := p.resolveURL(ctx, ref)
	if err != nil {
		task.Fail(err)
		return "", err
	}

	task.Finish(url)
	return url, nil
}

// resolveURL waits out the backend's propagation window, then polls for a
// download URL with a fixed-delay retry. Exhaustion surfaces the distinct
// max-attempts error.
func (p *Pipeline) resolveURL(ctx context.Context, ref string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(p.SettleDelay):
	}

	var url string
	err := utils.RetryFixedDelay(ctx, p.RetryAttempts, p.RetryInterval, func() error {
		resolved, err := p.Store.GetDownloadURL(ctx, ref)
		if err != nil {
			return err
		}
		url = resolved
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve download URL for %s: %w", ref, err)
	}
	return url, nil
}

// UploadProfileMedia uploads the photo and the optional voice intro
// concurrently and joins on both. A voice failure is logged and swallowed;
// only the photo leg can fail the call.
func (p *Pipeline) UploadProfileMedia(ctx context.Context, profileID string, photo, voice []byte) (string, string, error) {
	var (
		wg       sync.WaitGroup
		photoURL string
		photoErr error
		voiceURL string
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		task, err := p.UploadPhoto(ctx, profileID, photo)
		if err != nil {
			photoErr = err
			return
		}
		photoURL, _, _ = task.Outcome()
	}()

	if len(voice) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			url, err := p.UploadVoiceIntro(ctx, profileID, voice)
			if err != nil {
				// The voice intro is best-effort; the profile saves without it.
				utils.GetLogger().Warn("voice intro upload failed, continuing without it",
					zap.String("profileID", profileID), zap.Error(err))
				return
			}
			voiceURL = url
		}()
	}

	wg.Wait()

	if photoErr != nil {
		return "", "", photoErr
	}
	return photoURL, voiceURL, nil
}
