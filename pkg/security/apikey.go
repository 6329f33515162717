// Package security provides validation and safe handling of API keys
// and admin tokens.
package security

import (
	"crypto/subtle"
	"regexp"
	"strings"
)

var (
	keyPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	keyStripper = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	hexPattern  = regexp.MustCompile(`^[a-fA-F0-9]+$`)
)

// KeyValidator validates and sanitizes API keys and tokens.
type KeyValidator struct {
	minLength int
	maxLength int
}

// NewKeyValidator creates a validator with reasonable length defaults.
func NewKeyValidator() *KeyValidator {
	return &KeyValidator{
		minLength: 8,
		maxLength: 128,
	}
}

// ValidateKey checks key format and length constraints.
func (v *KeyValidator) ValidateKey(key string) bool {
	if key == "" {
		return false
	}
	if len(key) < v.minLength || len(key) > v.maxLength {
		return false
	}
	return keyPattern.MatchString(key)
}

// SanitizeKey trims whitespace and strips characters that are unsafe
// in URLs and headers.
func (v *KeyValidator) SanitizeKey(key string) string {
	return keyStripper.ReplaceAllString(strings.TrimSpace(key), "")
}

// MaskKey returns a redacted form suitable for logging.
func (v *KeyValidator) MaskKey(key string) string {
	if len(key) == 0 {
		return "[empty]"
	}
	if len(key) <= 8 {
		return "[***]"
	}
	return key[:3] + "..." + key[len(key)-3:]
}

// SecureCompare performs a constant-time comparison of two keys.
func (v *KeyValidator) SecureCompare(key1, key2 string) bool {
	return subtle.ConstantTimeCompare([]byte(key1), []byte(key2)) == 1
}

// IsValidAdminToken validates the format of an admin token.
// Tokens are free-form but must satisfy the generic key constraints.
func (v *KeyValidator) IsValidAdminToken(token string) bool {
	return v.ValidateKey(token)
}

// IsValidOMDbKey validates an OMDb API key. OMDb keys are short
// hexadecimal strings, typically 8 characters.
func (v *KeyValidator) IsValidOMDbKey(key string) bool {
	if len(key) < 6 || len(key) > 16 {
		return false
	}
	return hexPattern.MatchString(key)
}
