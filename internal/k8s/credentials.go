package k8s

import (
	"context"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/util/validation"

	"tokenAuthAPI/internal/auth"
)

const (
	credentialsSecretName = "credentials"
	namespacePrefix       = "user-"
)

// CredentialStore keeps one "credentials" secret per user in the namespace
// "user-<username>" with the keys "username" and "password".
type CredentialStore struct {
	Client K8sClient
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(client K8sClient) *CredentialStore {
	return &CredentialStore{Client: client}
}

// UserNamespace returns the namespace holding a user's credentials
func UserNamespace(username string) string {
	return namespacePrefix + username
}

// validUserNamespace returns why the user's namespace is not a legal DNS-1123 label, if it is not
func validUserNamespace(username string) []string {
	return validation.IsDNS1123Label(UserNamespace(username))
}

// Lookup implements auth.CredentialLookup. Usernames that cannot name a
// namespace cannot have stored credentials and are reported as not found.
func (s *CredentialStore) Lookup(ctx context.Context, username string) (string, bool, error) {
	if errs := validUserNamespace(username); len(errs) > 0 {
		return "", false, nil
	}

	data, err := s.Client.GetSecret(ctx, UserNamespace(username), credentialsSecretName)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read credentials for %q: %w", username, err)
	}

	stored, ok := data["password"]
	if !ok || stored == "" {
		return "", false, fmt.Errorf("credentials secret for %q has no password", username)
	}
	return stored, true, nil
}

// Provision creates the user namespace and stores a bcrypt hash of password
func (s *CredentialStore) Provision(ctx context.Context, username, password string) error {
	if errs := validUserNamespace(username); len(errs) > 0 {
		return fmt.Errorf("username %q cannot be used as a namespace name: %s", username, strings.Join(errs, "; "))
	}

	namespace := UserNamespace(username)

	if err := s.Client.CreateNamespace(ctx, namespace); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	creds := map[string]string{
		"username": username,
		"password": hash,
	}
	if err := s.Client.CreateSecret(ctx, namespace, credentialsSecretName, creds); err != nil {
		return fmt.Errorf("failed to store credentials for %q: %w", username, err)
	}
	return nil
}
