package server

import (
	"net/http"
	"time"

	"tokenAuthAPI/internal/auth"
	"tokenAuthAPI/internal/handlers"
)

// scopedRoute represents a single API route
type scopedRoute struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
	Protected   bool // whether the route requires a token
}

// NewRouter initializes all routes and returns an http.Handler.
// now is the clock used for token validation.
func NewRouter(tokens auth.TokenService, now func() time.Time, authHandler handlers.AuthHandlerInterface) http.Handler {
	routes := []scopedRoute{
		// Public routes
		{
			Name:        "Login",
			Method:      http.MethodPost,
			Pattern:     "/login",
			HandlerFunc: authHandler.Login,
			Protected:   false,
		},
		{
			Name:        "Logout",
			Method:      http.MethodPost,
			Pattern:     "/logout",
			HandlerFunc: authHandler.Logout,
			Protected:   false,
		},

		// Protected routes
		{
			Name:        "Protected",
			Method:      http.MethodGet,
			Pattern:     "/protected",
			HandlerFunc: authHandler.Protected,
			Protected:   true,
		},
		{
			Name:        "Refresh",
			Method:      http.MethodPost,
			Pattern:     "/refresh",
			HandlerFunc: authHandler.Refresh,
			Protected:   true,
		},
	}

	mux := http.NewServeMux()
	for _, route := range routes {
		var handler http.Handler = route.HandlerFunc

		// Wrap protected routes with the token middleware
		if route.Protected {
			handler = auth.TokenMiddleware(tokens, now, handler)
		}

		// The method check runs first so a wrong method never costs a token validation
		handler = auth.MethodMiddleware(route.Method)(handler)
		mux.Handle(route.Pattern, handler)
	}

	return LoggingMiddleware(mux)
}
