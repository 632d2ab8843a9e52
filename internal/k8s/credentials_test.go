package k8s

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"tokenAuthAPI/internal/auth"
)

// erroringClient fails every call with err
type erroringClient struct{ err error }

func (e erroringClient) CreateSecret(context.Context, string, string, map[string]string) error {
	return e.err
}

func (e erroringClient) GetSecret(context.Context, string, string) (map[string]string, error) {
	return nil, e.err
}

func (e erroringClient) CreateNamespace(context.Context, string) error { return e.err }

func newCredentialStoreForTest() *CredentialStore {
	return NewCredentialStore(&Client{ClientSet: fake.NewSimpleClientset()})
}

func TestCredentialStore_ProvisionAndLookup(t *testing.T) {
	ctx := context.Background()
	store := newCredentialStoreForTest()

	require.NoError(t, store.Provision(ctx, "bob", "s3cr3t"))

	stored, found, err := store.Lookup(ctx, "bob")
	require.NoError(t, err)
	require.True(t, found)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("s3cr3t")))

	// the verifier accepts the stored hash
	v := auth.NewVerifier(store)
	ok, err := v.Verify(ctx, "bob", "s3cr3t")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify(ctx, "bob", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialStore_LookupSecretLayout(t *testing.T) {
	ctx := context.Background()
	client := &Client{ClientSet: fake.NewSimpleClientset()}
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	_, _ = client.ClientSet.CoreV1().Secrets("user-carol").Create(ctx, &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "credentials"},
		Data: map[string][]byte{
			"username": []byte("carol"),
			"password": hash,
		},
	}, metav1.CreateOptions{})
	_, _ = client.ClientSet.CoreV1().Secrets("user-dave").Create(ctx, &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "credentials"},
		Data:       map[string][]byte{"username": []byte("dave")},
	}, metav1.CreateOptions{})

	store := NewCredentialStore(client)

	stored, found, err := store.Lookup(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, string(hash), stored)

	_, found, err = store.Lookup(ctx, "nobody")
	assert.NoError(t, err)
	assert.False(t, found)

	_, _, err = store.Lookup(ctx, "dave")
	assert.Error(t, err)
}

func TestCredentialStore_BackendErrors(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("connection refused")
	store := NewCredentialStore(erroringClient{err: backendErr})

	_, found, err := store.Lookup(ctx, "bob")
	assert.False(t, found)
	assert.ErrorIs(t, err, backendErr)

	assert.ErrorIs(t, store.Provision(ctx, "bob", "pw"), backendErr)
}

func TestCredentialStore_ProvisionDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newCredentialStoreForTest()

	require.NoError(t, store.Provision(ctx, "erin", "pw"))
	assert.Error(t, store.Provision(ctx, "erin", "pw"))
}

// Usernames that cannot form a namespace never reach the API server
func TestCredentialStore_UnusableUsernames(t *testing.T) {
	ctx := context.Background()
	store := NewCredentialStore(erroringClient{err: errors.New("must not be called")})

	tests := []struct {
		name     string
		username string
	}{
		{"slash", "a/b"},
		{"percent", "a%2fb"},
		{"uppercase", "Alice"},
		{"dot", "alice.smith"},
		{"too long", strings.Repeat("a", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, found, err := store.Lookup(ctx, tt.username)
			assert.NoError(t, err)
			assert.False(t, found)
			assert.Empty(t, stored)

			// the verifier sees an unknown user, not a backend failure
			ok, err := auth.NewVerifier(store).Verify(ctx, tt.username, "x")
			assert.NoError(t, err)
			assert.False(t, ok)

			err = store.Provision(ctx, tt.username, "x")
			assert.ErrorContains(t, err, "cannot be used as a namespace name")
		})
	}
}
