package crypto

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances hashing expense against login latency.
const bcryptCost = 10

// bcryptMaxInput is the most input bytes bcrypt reads. Passwords are
// truncated to this length before hashing and verification, so a long
// password and its 72-byte prefix hash and verify identically.
const bcryptMaxInput = 72

// passwordSpecials is the set of characters that satisfy the
// special-character requirement in ValidatePassword.
const passwordSpecials = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// ValidationResult accumulates every violation found so callers can show
// them all at once.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// HashPassword hashes a password with bcrypt, generating a fresh salt per call.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a password against a bcrypt hash. Any internal
// failure (malformed hash, oversized input) is treated as a non-match.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}

// bcryptInput converts a password to the bytes bcrypt actually consumes.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}
	return b
}

// ValidateUsername checks a username against the account naming rules:
// 3-30 characters, letters/digits/underscore/hyphen only, starting with
// a letter or digit. All checks run; violations accumulate.
func ValidateUsername(username string) ValidationResult {
	var errs []string

	length := utf8.RuneCountInString(username)
	if length < 3 {
		errs = append(errs, "username must be at least 3 characters long")
	}
	if length > 30 {
		errs = append(errs, "username must be less than 30 characters long")
	}

	valid := length > 0
	for _, r := range username {
		if !isUsernameRune(r) {
			valid = false
			break
		}
	}
	if !valid {
		errs = append(errs, "username can only contain letters, numbers, underscores, and hyphens")
	}

	first, _ := utf8.DecodeRuneInString(username)
	if !isAlphanumeric(first) {
		errs = append(errs, "username must start with a letter or number")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidatePassword checks password strength: length within [8,128] characters
// and at least one ASCII uppercase letter, lowercase letter, digit, and
// special character. Character classes match the signup contract exactly, so
// letters outside A-Z/a-z count toward length but toward no class.
func ValidatePassword(password string) ValidationResult {
	var errs []string

	length := utf8.RuneCountInString(password)
	if length < 8 {
		errs = append(errs, "password must be at least 8 characters long")
	}
	if length > 128 {
		errs = append(errs, "password must be less than 128 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		errs = append(errs, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain at least one number")
	}
	if !hasSpecial {
		errs = append(errs, "password must contain at least one special character")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func isUsernameRune(r rune) bool {
	return isAlphanumeric(r) || r == '_' || r == '-'
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
