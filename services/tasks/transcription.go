package tasks

import (
	"encoding/json"
	"fmt"

	"cupid/config"
	"cupid/models"

	"github.com/hibiken/asynq"
)

const TypeVoiceTranscription = "voice:transcribe"

// NewVoiceTranscriptionTask builds the queued job for one voice intro.
func NewVoiceTranscriptionTask(payload models.VoiceTranscriptionPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeVoiceTranscription, b), nil
}

// Enqueuer pushes transcription jobs onto the task queue.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer connects a client to the task queue's Redis DB.
func NewEnqueuer() *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskDB,
		}),
	}
}

// EnqueueVoiceTranscription queues one transcription job.
func (e *Enqueuer) EnqueueVoiceTranscription(userID, voiceURL string) error {
	task, err := NewVoiceTranscriptionTask(models.VoiceTranscriptionPayload{
		UserID:   userID,
		VoiceURL: voiceURL,
	})
	if err != nil {
		return fmt.Errorf("failed to build transcription task: %w", err)
	}
	if _, err := e.client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue transcription task: %w", err)
	}
	return nil
}

// Close releases the queue connection.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
