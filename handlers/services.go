// File: handlers/services.go
package handlers

import (
	"cupid/services/auth"
	"cupid/services/profile"
	"cupid/services/wizard"
)

var (
	authSvc    auth.AuthService
	sessionSvc profile.SessionService
	wizardSvc  wizard.WizardService
)

// SetAuthService injects the identity service implementation.
func SetAuthService(s auth.AuthService) {
	authSvc = s
}

// SetSessionService injects the profile session service implementation.
func SetSessionService(s profile.SessionService) {
	sessionSvc = s
}

// SetWizardService injects the profile-setup wizard implementation.
func SetWizardService(s wizard.WizardService) {
	wizardSvc = s
}
