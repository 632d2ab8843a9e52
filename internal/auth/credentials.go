package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Built-in account used when no external credential store is configured
const (
	DefaultUsername = "testuser"
	DefaultPassword = "testpass"
)

// CredentialLookup returns the stored password (plaintext or bcrypt hash) for
// a username. found is false when the user does not exist.
type CredentialLookup interface {
	Lookup(ctx context.Context, username string) (stored string, found bool, err error)
}

// StaticCredentials is an in-memory CredentialLookup keyed by username
type StaticCredentials map[string]string

// NewStaticCredentials creates a lookup holding a single account
func NewStaticCredentials(username, password string) StaticCredentials {
	return StaticCredentials{username: password}
}

// Lookup implements CredentialLookup
func (s StaticCredentials) Lookup(_ context.Context, username string) (string, bool, error) {
	stored, ok := s[username]
	return stored, ok, nil
}

// Verifier checks username/password pairs against a CredentialLookup
type Verifier struct {
	Credentials CredentialLookup
}

// NewVerifier creates a new Verifier
func NewVerifier(credentials CredentialLookup) *Verifier {
	return &Verifier{Credentials: credentials}
}

// Verify reports whether username and password match a known account.
// An empty field is a caller error (ErrMissingCredentials), not a mismatch.
func (v *Verifier) Verify(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, ErrMissingCredentials
	}

	stored, found, err := v.Credentials.Lookup(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to look up credentials: %w", err)
	}
	if !found {
		return false, nil
	}

	return passwordMatches(stored, password), nil
}

// passwordMatches compares bcrypt hashes with bcrypt and everything else with
// plain string equality. The built-in account is stored in plaintext.
func passwordMatches(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return stored == password
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// HashPassword returns a bcrypt hash suitable for storing in a credential store
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
