package handlers

import "net/http"

// AuthHandlerInterface defines the behavior the router expects from any auth handler implementation (real or mock).
type AuthHandlerInterface interface {
	Login(w http.ResponseWriter, r *http.Request)
	Protected(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

var _ AuthHandlerInterface = (*AuthHandler)(nil)
