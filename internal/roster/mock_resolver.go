package roster

import (
	"context"
	"sync"

	"github.com/quizhub/class-notifier/internal/domain"
)

// MockResolver is a hand-written, in-memory Resolver used in unit tests.
// No mock-generation library needed.
type MockResolver struct {
	mu      sync.RWMutex
	classes map[string][]domain.Recipient

	// ResolveErr, when set, is returned from every Resolve call —
	// used to simulate an unreachable store.
	ResolveErr error

	// Calls counts Resolve invocations, for fail-fast assertions.
	Calls int
}

func NewMockResolver() *MockResolver {
	return &MockResolver{classes: make(map[string][]domain.Recipient)}
}

// Enroll registers recipients for a class, in the order given.
func (m *MockResolver) Enroll(classID string, recipients ...domain.Recipient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes[classID] = append(m.classes[classID], recipients...)
}

func (m *MockResolver) Resolve(_ context.Context, classID string) ([]domain.Recipient, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	recipients, ok := m.classes[classID]
	if !ok || len(recipients) == 0 {
		return nil, domain.ErrNoRecipients
	}
	out := make([]domain.Recipient, len(recipients))
	copy(out, recipients)
	return out, nil
}

var _ Resolver = (*MockResolver)(nil)
