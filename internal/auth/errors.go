package auth

import "errors"

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Message returns the client-facing message for an auth error.
// These strings are part of the API contract and must not change.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "Username and password are required!"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials!"
	case errors.Is(err, ErrMissingToken):
		return "Token is missing!"
	case errors.Is(err, ErrTokenExpired):
		return "Token has expired!"
	case errors.Is(err, ErrTokenInvalid):
		return "Invalid token!"
	default:
		return "Internal server error"
	}
}
