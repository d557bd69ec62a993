// models/upload.go
package models

import "sync"

// UploadTask tracks one in-flight media upload: destination path, a
// monotonically observed progress fraction and the terminal outcome.
// Progress callbacks may arrive in any order; the last value wins.
type UploadTask struct {
	Path       string
	TotalBytes int64

	mu       sync.Mutex
	progress float64
	url      string
	err      error
	done     bool
}

// NewUploadTask returns a task for the given destination path and payload size.
func NewUploadTask(path string, totalBytes int64) *UploadTask {
	return &UploadTask{Path: path, TotalBytes: totalBytes}
}

// SetProgress records a completed/total byte fraction, clamped to [0,1].
func (t *UploadTask) SetProgress(completed, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done || total <= 0 {
		return
	}
	f := float64(completed) / float64(total)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	t.progress = f
}

// Progress returns the last observed fraction in [0,1].
func (t *UploadTask) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// Finish marks the task successful with the resolved URL.
func (t *UploadTask) Finish(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = true
	t.progress = 1
	t.url = url
}

// Fail marks the task terminally failed.
func (t *UploadTask) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = true
	t.err = err
}

// Outcome reports the terminal state: resolved URL, whether the task has
// finished at all, and the failure cause.
func (t *UploadTask) Outcome() (url string, done bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.url, t.done, t.err
}
