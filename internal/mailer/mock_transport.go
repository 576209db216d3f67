package mailer

import (
	"context"
	"sync"

	"github.com/quizhub/class-notifier/internal/domain"
)

// MockTransport is a hand-written, in-memory Transport used in unit tests.
// It records every submitted message and can fail selected recipients.
type MockTransport struct {
	mu   sync.Mutex
	sent []domain.ComposedMessage

	// FailFor maps a recipient address to the error Send returns for it.
	FailFor map[string]error

	// SendErr, when set, fails every send regardless of recipient.
	SendErr error
}

func NewMockTransport() *MockTransport {
	return &MockTransport{FailFor: make(map[string]error)}
}

func (m *MockTransport) Send(_ context.Context, msg *domain.ComposedMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		return m.SendErr
	}
	if err, ok := m.FailFor[msg.To]; ok {
		return err
	}
	m.sent = append(m.sent, *msg)
	return nil
}

// Sent returns a copy of all successfully submitted messages, in order.
func (m *MockTransport) Sent() []domain.ComposedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ComposedMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

var _ Transport = (*MockTransport)(nil)
