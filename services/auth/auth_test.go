package auth

import (
	"context"
	"errors"
	"testing"

	identityRepo "cupid/database/repository/identity"
	"cupid/models"
	"cupid/services/navigation"
	"cupid/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

type stubIdentityRepo struct {
	byID      map[string]*identityRepo.Identity
	deleteErr error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*identityRepo.Identity)}
}

func (r *stubIdentityRepo) GetByID(id string) (*identityRepo.Identity, error) {
	return r.byID[id], nil
}

func (r *stubIdentityRepo) GetByEmail(email string) (*identityRepo.Identity, error) {
	for _, ident := range r.byID {
		if ident.Email == email {
			return ident, nil
		}
	}
	return nil, nil
}

func (r *stubIdentityRepo) Create(ident *identityRepo.Identity) error {
	r.byID[ident.ID] = ident
	return nil
}

func (r *stubIdentityRepo) UpdatePasswordHash(id, hash string) error {
	if ident, ok := r.byID[id]; ok {
		ident.PasswordHash = hash
	}
	return nil
}

func (r *stubIdentityRepo) Delete(id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byID, id)
	return nil
}

func (r *stubIdentityRepo) GetByEmailWithProjection(email string, projection bson.M) (*identityRepo.Identity, error) {
	return r.GetByEmail(email)
}

type stubProfileRepo struct {
	byID      map[string]*models.UserProfile
	deleteErr error
	deleted   []string
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byID: make(map[string]*models.UserProfile)}
}

func (r *stubProfileRepo) GetByID(id string) (*models.UserProfile, error) {
	return r.byID[id], nil
}

func (r *stubProfileRepo) GetByEmail(email string) (*models.UserProfile, error) {
	for _, p := range r.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubProfileRepo) Create(p *models.UserProfile) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubProfileRepo) Set(p *models.UserProfile) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubProfileRepo) UpdateFields(id string, fields map[string]any) error { return nil }

func (r *stubProfileRepo) Delete(id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	delete(r.byID, id)
	return nil
}

func (r *stubProfileRepo) GetByIDWithProjection(id string, projection bson.M) (*models.UserProfile, error) {
	return r.GetByID(id)
}

func newTestAuthService(t *testing.T) (*DefaultAuthService, *stubIdentityRepo, *stubProfileRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	idents := newStubIdentityRepo()
	profiles := newStubProfileRepo()
	svc := &DefaultAuthService{
		Identities: idents,
		Profiles:   profiles,
		Nav:        navigation.NewStore(),
		Cache:      cache,
	}
	return svc, idents, profiles
}

func TestSignUpCreatesPlaceholderAndLandsInSetup(t *testing.T) {
	svc, idents, profiles := newTestAuthService(t)

	sess, err := svc.SignUp("new@cupid.app", "hunter22", "Asha")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if sess.Mode != navigation.ModeProfileSetup {
		t.Fatalf("a fresh account must land in profileSetup, got %s", sess.Mode)
	}
	if sess.Token == "" {
		t.Fatal("expected a session token")
	}

	ident, _ := idents.GetByEmail("new@cupid.app")
	if ident == nil {
		t.Fatal("expected identity record")
	}
	if ident.PasswordHash == "hunter22" {
		t.Fatal("password must never be stored in the clear")
	}

	p, _ := profiles.GetByID(sess.UserID)
	if p == nil || p.IsComplete() {
		t.Fatalf("expected an incomplete placeholder profile, got %+v", p)
	}
}

func TestSignUpRejectsBadForms(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.SignUp("not-an-email", "hunter22", "Asha"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.SignUp("a@b.com", "short", "Asha"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if _, err := svc.SignUp("a@b.com", "hunter22", "Asha"); err != nil {
		t.Fatalf("first sign up should succeed: %v", err)
	}
	if _, err := svc.SignUp("a@b.com", "hunter22", "Asha"); !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestSignInMapsCredentialFailures(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	if _, err := svc.SignUp("a@b.com", "hunter22", "Asha"); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	if _, err := svc.SignIn("missing@b.com", "hunter22"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.SignIn("a@b.com", "wrongpass"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if _, err := svc.SignIn("a@b.com", "hunter22"); err != nil {
		t.Fatalf("valid credentials should sign in: %v", err)
	}
}

func TestSignInModeFollowsProfileCompleteness(t *testing.T) {
	svc, _, profiles := newTestAuthService(t)
	sess, err := svc.SignUp("a@b.com", "hunter22", "Asha")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	p := profiles.byID[sess.UserID]
	p.Bio = "a long enough bio"
	p.Photos = []string{"https://cdn/p1.jpg"}

	again, err := svc.SignIn("a@b.com", "hunter22")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if again.Mode != navigation.ModeMain {
		t.Fatalf("complete profile should land in main, got %s", again.Mode)
	}
}

func TestCurrentSessionRoundTripAndSignOut(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	sess, err := svc.SignUp("a@b.com", "hunter22", "Asha")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	resolved, err := svc.CurrentSession(sess.Token)
	if err != nil {
		t.Fatalf("expected live session: %v", err)
	}
	if resolved.UserID != sess.UserID {
		t.Fatalf("token resolved to wrong user %s", resolved.UserID)
	}

	if err := svc.SignOut(sess.UserID, sess.Token); err != nil {
		t.Fatalf("sign out failed: %v", err)
	}
	if _, err := svc.CurrentSession(sess.Token); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("revoked token must not resolve, got %v", err)
	}
	if got := svc.Nav.ModeFor(sess.UserID); got != navigation.ModeAuthentication {
		t.Fatalf("expected authentication after sign out, got %s", got)
	}
}

func TestCurrentSessionRejectsForgedToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	if _, err := svc.CurrentSession("not.a.jwt"); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestDeleteAccountRemovesProfileBeforeIdentity(t *testing.T) {
	svc, idents, profiles := newTestAuthService(t)
	sess, err := svc.SignUp("a@b.com", "hunter22", "Asha")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	if err := svc.DeleteAccount(sess.UserID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if p, _ := profiles.GetByID(sess.UserID); p != nil {
		t.Fatal("profile document should be gone")
	}
	if ident, _ := idents.GetByID(sess.UserID); ident != nil {
		t.Fatal("identity record should be gone")
	}
	if _, err := svc.CurrentSession(sess.Token); !errors.Is(err, ErrNotSignedIn) {
		t.Fatal("session should be revoked after a full delete")
	}
}

func TestDeleteAccountKeepsSessionWhenIdentityDeleteFails(t *testing.T) {
	svc, idents, profiles := newTestAuthService(t)
	sess, err := svc.SignUp("a@b.com", "hunter22", "Asha")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	idents.deleteErr = errors.New("identity backend unavailable")
	if err := svc.DeleteAccount(sess.UserID); err == nil {
		t.Fatal("expected the identity failure to surface")
	}

	if p, _ := profiles.GetByID(sess.UserID); p != nil {
		t.Fatal("profile document is deleted first and stays deleted")
	}
	if _, err := svc.CurrentSession(sess.Token); err != nil {
		t.Fatalf("session must stay signed in for a retry: %v", err)
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	if _, err := svc.SignUp("a@b.com", "hunter22", "Asha"); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	if err := svc.SendPasswordReset("missing@b.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.SendPasswordReset("a@b.com"); err != nil {
		t.Fatalf("reset issue failed: %v", err)
	}

	// The token is not returned by the API; read it back from the cache the
	// way the mail sender would.
	keys, err := svc.Cache.Keys(context.Background(), utils.ResetTokenPrefix+"*").Result()
	if err != nil || len(keys) != 1 {
		t.Fatalf("expected exactly one reset token, got %v (%v)", keys, err)
	}
	token := keys[0][len(utils.ResetTokenPrefix):]

	if err := svc.ResetPassword(token, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ResetPassword(token, "newpassword9"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if err := svc.ResetPassword(token, "anotherpass"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatal("a reset token must be single use")
	}

	if _, err := svc.SignIn("a@b.com", "hunter22"); !errors.Is(err, ErrWrongPassword) {
		t.Fatal("old password should no longer work")
	}
	if _, err := svc.SignIn("a@b.com", "newpassword9"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}
