package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockModel is the ModelID reported by MockProvider.
const MockModel = "mock"

// MockResponse scripts one Generate result. Err, when set, wins.
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason StopReason
	Err        error
}

// MockProvider replays scripted responses in order and keeps every
// request it saw. Structured requests go through the same schema check as
// the real vendors, so a script can exercise ErrInvalidResponse.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse

	// Calls holds the requests in arrival order.
	Calls []Request
}

// NewMockProvider returns a provider that answers with script.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// Generate pops the next scripted response. An exhausted script behaves
// like an unreachable vendor.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	}
	next := m.script[0]
	m.script = m.script[1:]
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}
	stop := next.StopReason
	if stop == "" {
		stop = StopEnd
	}
	return finish(req, string(next.Content), next.Usage, MockModel, stop)
}

func (m *MockProvider) ModelID() string { return MockModel }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

// CallCount returns len(Calls) under the lock.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
