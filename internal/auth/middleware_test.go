package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Simple handler that reads username from context and writes it back
func usernameEchoHandler(w http.ResponseWriter, r *http.Request) {
	username, ok := GetUsername(r.Context())
	if !ok {
		http.Error(w, "username not found in context", http.StatusInternalServerError)
		return
	}
	_, _ = io.WriteString(w, username)
}

func TestTokenMiddleware_TableDriven(t *testing.T) {
	jwtMgr := NewJWTManager("test-secret-1", DefaultTokenDuration)
	other := NewJWTManager("other-secret", DefaultTokenDuration)

	valid, err := jwtMgr.Issue("alice", issuedAt)
	require.NoError(t, err)
	foreign, err := other.Issue("alice", issuedAt)
	require.NoError(t, err)

	tests := []struct {
		name           string
		token          string
		now            time.Time
		expectedStatus int
		expectedBody   string
		expectedMsg    string
	}{
		{
			name:           "valid token reaches handler",
			token:          valid,
			now:            issuedAt,
			expectedStatus: http.StatusOK,
			expectedBody:   "alice",
		},
		{
			name:           "missing token",
			now:            issuedAt,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Token is missing!",
		},
		{
			name:           "expired token",
			token:          valid,
			now:            issuedAt.Add(time.Hour + time.Second),
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Token has expired!",
		},
		{
			name:           "garbage token",
			token:          "this.is.not.a.valid.token",
			now:            issuedAt,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid token!",
		},
		{
			name:           "token signed with another secret",
			token:          foreign,
			now:            issuedAt,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid token!",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := TokenMiddleware(jwtMgr, func() time.Time { return tc.now }, http.HandlerFunc(usernameEchoHandler))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.token != "" {
				req.Header.Set(TokenHeader, tc.token)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, rr.Body.String())
			}
			if tc.expectedMsg != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, tc.expectedMsg, body["message"])
			}
		})
	}
}

// The Authorization: Bearer convention is not accepted
func TestTokenMiddleware_IgnoresAuthorizationHeader(t *testing.T) {
	jwtMgr := NewJWTManager("test-secret-1", DefaultTokenDuration)
	token, err := jwtMgr.Issue("bob", issuedAt)
	require.NoError(t, err)

	h := TokenMiddleware(jwtMgr, func() time.Time { return issuedAt }, http.HandlerFunc(usernameEchoHandler))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Token is missing!")
}

func TestMethodMiddleware(t *testing.T) {
	h := MethodMiddleware(http.MethodPost)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"message":"Method not allowed"}`, rr.Body.String())
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{ErrMissingCredentials, "Username and password are required!"},
		{ErrInvalidCredentials, "Invalid credentials!"},
		{ErrMissingToken, "Token is missing!"},
		{ErrTokenExpired, "Token has expired!"},
		{ErrTokenInvalid, "Invalid token!"},
		{io.EOF, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Message(tt.err))
		})
	}
}
