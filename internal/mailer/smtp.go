package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/quizhub/class-notifier/internal/domain"
)

// SMTPTransport submits messages over SMTP with STARTTLS.
// The dialer is created once and reused; each Send opens one connection
// (DialAndSend), which is acceptable at this traffic level.
type SMTPTransport struct {
	dialer     *gomail.Dialer
	senderName string
}

func NewSMTPTransport(host string, port int, username, password, senderName string) *SMTPTransport {
	return &SMTPTransport{
		dialer:     gomail.NewDialer(host, port, username, password),
		senderName: senderName,
	}
}

// Send submits one composed message. gomail's DialAndSend has no context
// support, so it runs in a goroutine and is abandoned when ctx expires;
// a deadline hit surfaces as domain.ErrSendTimeout.
func (t *SMTPTransport) Send(ctx context.Context, msg *domain.ComposedMessage) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From, t.senderName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if len(msg.Inline) > 0 {
		payload := msg.Inline
		m.Attach(msg.InlineName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(payload)
			return err
		}))
	}

	done := make(chan error, 1)
	go func() {
		done <- t.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", domain.ErrSendTimeout, msg.To)
		}
		return ctx.Err()
	}
}

// compile-time check that SMTPTransport implements Transport
var _ Transport = (*SMTPTransport)(nil)
