package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cupid/config"
	"cupid/models"
	"cupid/utils"

	"github.com/go-redis/redis/v8"
)

const draftKeyPrefix = "wizard:"

// DraftStore persists at most one in-progress setup draft per user.
type DraftStore interface {
	Get(userID string) (*models.WizardDraft, error)
	Save(draft *models.WizardDraft) error
	Delete(userID string) error
}

// RedisDraftStore keeps drafts as JSON under a sliding TTL, the same way
// registration sessions are held. Every Save renews the TTL.
type RedisDraftStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisDraftStore wires the store against the dedicated wizard cache.
func NewRedisDraftStore() *RedisDraftStore {
	return &RedisDraftStore{
		Client: utils.GetWizardCacheClient(),
		TTL:    time.Duration(config.AppConfig.WizardDraftTTLMin) * time.Minute,
	}
}

// Get returns the user's draft, or nil when none exists or it expired.
func (s *RedisDraftStore) Get(userID string) (*models.WizardDraft, error) {
	data, err := s.Client.Get(context.Background(), draftKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch setup draft: %w", err)
	}

	var draft models.WizardDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode setup draft: %w", err)
	}
	return &draft, nil
}

// Save writes the draft back and renews its TTL.
func (s *RedisDraftStore) Save(draft *models.WizardDraft) error {
	draft.LastUpdatedAt = time.Now()
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode setup draft: %w", err)
	}
	if err := s.Client.Set(context.Background(), draftKeyPrefix+draft.UserID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store setup draft: %w", err)
	}
	return nil
}

// Delete discards the user's draft.
func (s *RedisDraftStore) Delete(userID string) error {
	if err := s.Client.Del(context.Background(), draftKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to discard setup draft: %w", err)
	}
	return nil
}
