package models

// LoginRequest represents the incoming JSON payload for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued token
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is used for informational and error responses
type MessageResponse struct {
	Message string `json:"message"`
}
