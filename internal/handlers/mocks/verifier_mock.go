package mocks

import "context"

// MockVerifier implements handlers.CredentialVerifier
type MockVerifier struct {
	OK     bool
	Err    error
	Called bool
}

func (m *MockVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	m.Called = true
	return m.OK, m.Err
}
