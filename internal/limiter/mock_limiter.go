package limiter

import "sync"

// MockLimiter is a test double for the Limiter interface
type MockLimiter struct {
	mu sync.Mutex

	AllowResult bool     // what Allow returns
	AllowCalls  []string // clients Allow was called with
	CloseCalled bool
	CloseError  error
}

// NewMockLimiter creates a mock limiter that always answers allowResult
func NewMockLimiter(allowResult bool) *MockLimiter {
	return &MockLimiter{AllowResult: allowResult}
}

// Allow implements the Limiter interface
func (m *MockLimiter) Allow(client string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AllowCalls = append(m.AllowCalls, client)
	return m.AllowResult
}

// Close implements the Limiter interface
func (m *MockLimiter) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
