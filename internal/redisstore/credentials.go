package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tokenAuthAPI/internal/auth"
)

var ErrBackend = errors.New("credential store backend unavailable")

// CredentialStore keeps stored passwords in a single Redis hash
// "<prefix>:credentials" keyed by username.
type CredentialStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewCredentialStore creates a CredentialStore; an empty prefix defaults to "auth"
func NewCredentialStore(redisClient redis.UniversalClient, prefix string) *CredentialStore {
	if prefix == "" {
		prefix = "auth"
	}
	return &CredentialStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *CredentialStore) key() string {
	return s.prefix + ":credentials"
}

// Lookup implements auth.CredentialLookup
func (s *CredentialStore) Lookup(ctx context.Context, username string) (string, bool, error) {
	stored, err := s.redis.HGet(ctx, s.key(), username).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return stored, true, nil
}

// Provision stores a bcrypt hash of password for username, replacing any previous entry
func (s *CredentialStore) Provision(ctx context.Context, username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.redis.HSet(ctx, s.key(), username, hash).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}
