// Package validation holds the pure form predicates used by the sign-up
// form, the setup wizard and the edit-profile flow. None of them touch
// state; callers gate controls or reject requests on the boolean result.
package validation

import "strings"

// EmailValid reports whether s looks like an email address.
func EmailValid(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// PasswordValid reports whether a password meets the minimum length.
func PasswordValid(s string) bool {
	return len(s) >= 6
}

// NameValid reports whether a display name is long enough.
func NameValid(s string) bool {
	return len(s) >= 2
}

// BioValid reports whether a bio meets the setup minimum. The sign-up form
// itself does not require a bio; only the wizard's about step does.
func BioValid(s string) bool {
	return len(s) >= 10
}

// InterestsValid reports whether enough interest tags were picked.
func InterestsValid(interests []string) bool {
	return len(interests) >= 3
}

// AgeRangeValid reports whether an age-range preference is well formed:
// 18 <= min < max <= 80.
func AgeRangeValid(min, max int) bool {
	return min >= 18 && min < max && max <= 80
}
