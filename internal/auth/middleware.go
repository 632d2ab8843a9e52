package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tokenAuthAPI/internal/models"
)

// TokenHeader is the request header carrying the token
const TokenHeader = "x-access-token"

// TokenMiddleware validates the token in the x-access-token header and injects
// the identity into the request context. Requests without a valid token never
// reach next.
func TokenMiddleware(tokens TokenService, now func() time.Time, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			WriteError(w, http.StatusUnauthorized, ErrMissingToken)
			return
		}

		username, err := tokens.Validate(token, now())
		if err != nil {
			if !errors.Is(err, ErrTokenExpired) {
				slog.Debug("token rejected", "path", r.URL.Path, "error", err)
			}
			WriteError(w, http.StatusUnauthorized, err)
			return
		}

		ctx := WithUsername(r.Context(), username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MethodMiddleware enforces allowed HTTP methods for a handler
func MethodMiddleware(allowedMethods ...string) func(http.Handler) http.Handler {
	methods := make(map[string]struct{}, len(allowedMethods))
	for _, m := range allowedMethods {
		methods[m] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := methods[r.Method]; !ok {
				WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteError writes {"message": ...} for err with the given status
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteMessage(w, status, Message(err))
}

// WriteMessage writes a JSON {"message": ...} body with the given status
func WriteMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.MessageResponse{Message: message}); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
