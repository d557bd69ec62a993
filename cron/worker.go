package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"cupid/config"
	profileRepo "cupid/database/repository/profile"
	"cupid/models"
	"cupid/services/intelligence"
	"cupid/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitTranscriptionWorker runs the async worker in background.
func InitTranscriptionWorker(transcriber intelligence.Transcriber, profiles profileRepo.ProfileRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeVoiceTranscription, handleTranscriptionTask(transcriber, profiles))

	go monitorRedisConnection()

	go func() {
		log.Println("[TranscriptionWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TranscriptionWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TranscriptionWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleTranscriptionTask transcribes the voice intro and records the text
// on the profile. A profile without a transcript is fine; failures are
// logged and the job is not retried.
func handleTranscriptionTask(transcriber intelligence.Transcriber, profiles profileRepo.ProfileRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.VoiceTranscriptionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[TranscriptionHandler] Invalid payload: %v", err)
			return nil
		}

		transcript, err := transcriber.TranscribeVoiceIntro(ctx, p.VoiceURL)
		if err != nil {
			log.Printf("[TranscriptionHandler] Failed to transcribe voice intro for %s: %v", p.UserID, err)
			return nil
		}
		if transcript == "" {
			return nil
		}

		if err := profiles.UpdateFields(p.UserID, map[string]any{"voiceIntroTranscript": transcript}); err != nil {
			log.Printf("[TranscriptionHandler] Failed to store transcript for %s: %v", p.UserID, err)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[TranscriptionWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
