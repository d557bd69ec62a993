package profileRepo

import (
	"testing"

	"cupid/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

// countingRepo records how often each inner method is hit.
type countingRepo struct {
	profile    *models.UserProfile
	getByID    int
	setCalls   int
	updateHits int
}

func (r *countingRepo) GetByID(id string) (*models.UserProfile, error) {
	r.getByID++
	if r.profile == nil || r.profile.ID != id {
		return nil, nil
	}
	cp := *r.profile
	return &cp, nil
}

func (r *countingRepo) GetByEmail(email string) (*models.UserProfile, error) { return nil, nil }

func (r *countingRepo) Create(p *models.UserProfile) error {
	r.profile = p
	return nil
}

func (r *countingRepo) Set(p *models.UserProfile) error {
	r.setCalls++
	r.profile = p
	return nil
}

func (r *countingRepo) UpdateFields(id string, fields map[string]any) error {
	r.updateHits++
	if r.profile != nil && r.profile.ID == id {
		if v, ok := fields["bio"]; ok {
			r.profile.Bio = v.(string)
		}
	}
	return nil
}

func (r *countingRepo) Delete(id string) error {
	r.profile = nil
	return nil
}

func (r *countingRepo) GetByIDWithProjection(id string, projection bson.M) (*models.UserProfile, error) {
	return r.GetByID(id)
}

func newCachedRepo(t *testing.T) (ProfileRepository, *countingRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	inner := &countingRepo{}
	cached := NewCachedProfileRepo(inner, redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return cached, inner
}

func TestGetByIDServesSecondReadFromCache(t *testing.T) {
	cached, inner := newCachedRepo(t)
	inner.profile = &models.UserProfile{ID: "u1", Bio: "a long enough bio"}

	first, err := cached.GetByID("u1")
	if err != nil || first == nil {
		t.Fatalf("first read failed: %v", err)
	}
	second, err := cached.GetByID("u1")
	if err != nil || second == nil {
		t.Fatalf("second read failed: %v", err)
	}
	if inner.getByID != 1 {
		t.Fatalf("second read must come from the cache, inner hit %d times", inner.getByID)
	}
	if second.Bio != first.Bio {
		t.Fatalf("cached document diverged: %q vs %q", second.Bio, first.Bio)
	}
}

func TestSetRefreshesCachedCopy(t *testing.T) {
	cached, inner := newCachedRepo(t)
	inner.profile = &models.UserProfile{ID: "u1", Bio: "before"}

	if _, err := cached.GetByID("u1"); err != nil {
		t.Fatalf("prime failed: %v", err)
	}

	if err := cached.Set(&models.UserProfile{ID: "u1", Bio: "after"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	p, err := cached.GetByID("u1")
	if err != nil || p == nil {
		t.Fatalf("read after set failed: %v", err)
	}
	if p.Bio != "after" {
		t.Fatalf("overwrite must refresh the cache, got %q", p.Bio)
	}
	if inner.getByID != 1 {
		t.Fatalf("refreshed cache should still serve reads, inner hit %d times", inner.getByID)
	}
}

func TestUpdateFieldsDropsCachedCopy(t *testing.T) {
	cached, inner := newCachedRepo(t)
	inner.profile = &models.UserProfile{ID: "u1", Bio: "before"}

	if _, err := cached.GetByID("u1"); err != nil {
		t.Fatalf("prime failed: %v", err)
	}
	if err := cached.UpdateFields("u1", map[string]any{"bio": "after"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	p, err := cached.GetByID("u1")
	if err != nil || p == nil {
		t.Fatalf("read after update failed: %v", err)
	}
	if p.Bio != "after" {
		t.Fatalf("partial update must invalidate the cache, got %q", p.Bio)
	}
	if inner.getByID != 2 {
		t.Fatalf("expected a re-prime from the inner repo, got %d hits", inner.getByID)
	}
}

func TestDeleteDropsCachedCopy(t *testing.T) {
	cached, inner := newCachedRepo(t)
	inner.profile = &models.UserProfile{ID: "u1", Bio: "a long enough bio"}

	if _, err := cached.GetByID("u1"); err != nil {
		t.Fatalf("prime failed: %v", err)
	}
	if err := cached.Delete("u1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	p, err := cached.GetByID("u1")
	if err != nil {
		t.Fatalf("read after delete failed: %v", err)
	}
	if p != nil {
		t.Fatal("a deleted profile must not be served from the cache")
	}
}
