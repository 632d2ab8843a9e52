package mocks

import (
	"time"
)

// MockJWTManager implements auth.TokenService for handler tests
type MockJWTManager struct {
	Token       string
	VerifyUser  string // identity returned by Validate
	IssueErr    error
	ValidateErr error

	IssuedFor []string
	IssuedAt  []time.Time
}

func (m *MockJWTManager) Issue(identity string, now time.Time) (string, error) {
	m.IssuedFor = append(m.IssuedFor, identity)
	m.IssuedAt = append(m.IssuedAt, now)
	return m.Token, m.IssueErr
}

func (m *MockJWTManager) Validate(token string, now time.Time) (string, error) {
	return m.VerifyUser, m.ValidateErr
}

// Refresh is not called by the HTTP layer, which validates in the middleware and then issues
func (m *MockJWTManager) Refresh(token string, now time.Time) (string, error) {
	return m.Token, m.ValidateErr
}
