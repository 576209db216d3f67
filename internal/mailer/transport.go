package mailer

import (
	"context"

	"github.com/quizhub/class-notifier/internal/domain"
)

// Transport abstracts the blocking "submit message" operation of the mail
// infrastructure. Mocking this interface in tests gives full control over
// delivery behaviour without touching a real SMTP server.
type Transport interface {
	Send(ctx context.Context, msg *domain.ComposedMessage) error
}
