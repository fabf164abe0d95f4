package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	teamDraws         int
	matchesReplicated int
	messagesGenerated int
	messageFallbacks  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncTeamDraws() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamDraws++
}

func (m *Mock) IncMatchesReplicated(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesReplicated += count
}

func (m *Mock) IncMessagesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesGenerated++
}

func (m *Mock) IncMessageFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messageFallbacks++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TeamDraws returns the number of times IncTeamDraws was called.
func (m *Mock) TeamDraws() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamDraws
}

// MatchesReplicated returns the accumulated replicated match count.
func (m *Mock) MatchesReplicated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesReplicated
}

// MessagesGenerated returns the number of times IncMessagesGenerated was called.
func (m *Mock) MessagesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messagesGenerated
}

// MessageFallbacks returns the number of times IncMessageFallbacks was called.
func (m *Mock) MessageFallbacks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messageFallbacks
}

// StartupTime returns the last recorded startup duration.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
