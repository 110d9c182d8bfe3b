// ABOUTME: Request body validation for auth and preferences endpoints
// ABOUTME: Violations are reported as 422 with a list of field messages

package api

import (
	"regexp"
)

// minPasswordLength is the minimum accepted password size on sign-up and sign-in.
const minPasswordLength = 6

// maxExerciseNameLength is the longest accepted custom exercise name.
const maxExerciseNameLength = 30

// emailPattern accepts anything shaped local@domain.tld. Real deliverability
// is not checked; the normalized address just has to be usable as a lookup key.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// allowedThemes are the accepted preference theme values.
var allowedThemes = map[string]bool{
	"system": true,
	"dark":   true,
	"light":  true,
}

// validateCredentials checks an email/password pair, returning one message
// per violated field. Sign-up and sign-in share the same rules.
func validateCredentials(email, password string) []string {
	var details []string
	if !emailPattern.MatchString(email) {
		details = append(details, "email: value is not a valid email address")
	}
	if len(password) < minPasswordLength {
		details = append(details, "password: should be at least 6 characters")
	}
	return details
}

// validateExerciseName checks a custom exercise name.
func validateExerciseName(name string) []string {
	if name == "" {
		return []string{"name: field is required"}
	}
	if len(name) > maxExerciseNameLength {
		return []string{"name: should be at most 30 characters"}
	}
	return nil
}

// validateTheme checks a preference theme value.
func validateTheme(theme string) []string {
	if !allowedThemes[theme] {
		return []string{"theme: should be 'system', 'dark' or 'light'"}
	}
	return nil
}
