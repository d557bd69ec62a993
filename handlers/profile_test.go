package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cupid/models"
	"cupid/services/profile"

	"github.com/gin-gonic/gin"
)

// stubSessionService returns canned results so handler mapping can be
// asserted in isolation.
type stubSessionService struct {
	saveErr   error
	updateErr error
	profile   *models.UserProfile
}

func (s *stubSessionService) Load(userID string) (*models.UserProfile, error) {
	return s.profile, nil
}

func (s *stubSessionService) Save(p *models.UserProfile) error { return s.saveErr }

func (s *stubSessionService) UpdateProfile(userID string, req models.UserProfileUpdateRequest) (*models.UserProfile, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.profile, nil
}

func (s *stubSessionService) AddPhoto(ctx context.Context, userID string, photo []byte) (*models.UserProfile, error) {
	return s.profile, nil
}

func (s *stubSessionService) RemovePhoto(userID string, photoURL string) (*models.UserProfile, error) {
	return s.profile, nil
}

func newProfileTestRouter(svc *stubSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetSessionService(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "u1") })
	r.PUT("/profile", SaveProfileHandler)
	r.PATCH("/profile", UpdateProfileHandler)
	return r
}

func TestSaveProfileHidesBackendInternals(t *testing.T) {
	svc := &stubSessionService{
		saveErr: fmt.Errorf("failed to save profile: %w",
			fmt.Errorf("connection(mongo-primary.internal:27017) write exception")),
	}
	r := newProfileTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(`{"bio":"a long enough bio"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("a backend failure must be a 500, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "mongo") || strings.Contains(body, "27017") {
		t.Fatalf("backend internals leaked to the client: %s", body)
	}
	if !strings.Contains(body, "Failed to save profile") {
		t.Fatalf("expected the generic message, got %s", body)
	}
}

func TestSaveProfileSurfacesValidationFailure(t *testing.T) {
	svc := &stubSessionService{
		saveErr: fmt.Errorf("%w: 30-25", profile.ErrInvalidAgeRange),
	}
	r := newProfileTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("a validation failure must be a 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), profile.ErrInvalidAgeRange.Error()) {
		t.Fatalf("validation failures are shown verbatim, got %s", w.Body.String())
	}
}

func TestUpdateProfileErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation failure", profile.ErrBioTooShort, http.StatusBadRequest},
		{"backend failure", fmt.Errorf("failed to update profile: %w", fmt.Errorf("db busy")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newProfileTestRouter(&stubSessionService{updateErr: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/profile", strings.NewReader(`{"bio":"short"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tc.wantStatus, w.Code, w.Body.String())
			}
			if tc.wantStatus == http.StatusInternalServerError && strings.Contains(w.Body.String(), "db busy") {
				t.Fatalf("backend internals leaked: %s", w.Body.String())
			}
		})
	}
}
