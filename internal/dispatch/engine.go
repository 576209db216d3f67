package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quizhub/class-notifier/internal/compose"
	"github.com/quizhub/class-notifier/internal/domain"
	"github.com/quizhub/class-notifier/internal/mailer"
)

// Hooks carries the metric callback functions injected by main.
// Using a struct keeps the engine constructor signature clean.
type Hooks struct {
	OnSent   func(kind domain.Kind, latency time.Duration)
	OnFailed func(kind domain.Kind)
}

// Engine executes composed messages against the mail transport.
// Batches run sequentially on the caller's goroutine: the transport sits
// behind a shared SMTP quota, so deliveries are paced rather than fanned
// out. One failing recipient never aborts delivery to the rest.
type Engine struct {
	transport   mailer.Transport
	newPacer    func() Pacer
	sendTimeout time.Duration
	logger      *zap.Logger
	hooks       Hooks
}

// NewEngine constructs the engine. hooks callbacks are optional (nil = no-op).
func NewEngine(
	transport mailer.Transport,
	newPacer func() Pacer,
	sendTimeout time.Duration,
	logger *zap.Logger,
	hooks Hooks,
) *Engine {
	if hooks.OnSent == nil {
		hooks.OnSent = func(domain.Kind, time.Duration) {}
	}
	if hooks.OnFailed == nil {
		hooks.OnFailed = func(domain.Kind) {}
	}
	return &Engine{
		transport:   transport,
		newPacer:    newPacer,
		sendTimeout: sendTimeout,
		logger:      logger,
		hooks:       hooks,
	}
}

// DispatchAll composes and sends one message per recipient, in order.
//
// A fresh pacer gates the gap between consecutive sends; no delay is
// imposed before the first. Composition or transport failure for one
// recipient is recorded in the result and the loop continues. Cancellation
// is checked between recipients, so an aborted request stops the batch at
// the next recipient boundary with the partial result intact.
func (e *Engine) DispatchAll(ctx context.Context, tmpl domain.Template, recipients []domain.Recipient) *domain.DispatchResult {
	result := &domain.DispatchResult{}
	pacer := e.newPacer()

	for i, r := range recipients {
		if i > 0 {
			if err := pacer.Wait(ctx); err != nil {
				// ctx cancelled while pacing — report the partial result.
				e.logger.Warn("batch cancelled while pacing",
					zap.String("kind", string(tmpl.Kind)),
					zap.Int("attempted", result.Attempted))
				return result
			}
		}

		result.Attempted++
		if err := e.send(ctx, tmpl, r); err != nil {
			result.Failures = append(result.Failures, domain.SendFailure{
				Recipient: r.Email,
				Reason:    err.Error(),
			})
			continue
		}
		result.Succeeded++
	}

	e.logger.Info("batch dispatched",
		zap.String("kind", string(tmpl.Kind)),
		zap.Int("attempted", result.Attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", len(result.Failures)))

	return result
}

// DispatchOne is the degenerate single-recipient case: no pacing, and the
// failure is surfaced directly rather than aggregated.
func (e *Engine) DispatchOne(ctx context.Context, tmpl domain.Template, r domain.Recipient) error {
	return e.send(ctx, tmpl, r)
}

func (e *Engine) send(ctx context.Context, tmpl domain.Template, r domain.Recipient) error {
	start := time.Now()
	log := e.logger.With(
		zap.String("kind", string(tmpl.Kind)),
		zap.String("recipient", r.Email),
	)

	msg, err := compose.Compose(tmpl, r)
	if err != nil {
		log.Warn("compose failed", zap.Error(err))
		e.hooks.OnFailed(tmpl.Kind)
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, e.sendTimeout)
	defer cancel()

	if err := e.transport.Send(sendCtx, msg); err != nil {
		log.Warn("transport send failed", zap.Error(err))
		e.hooks.OnFailed(tmpl.Kind)
		return err
	}

	elapsed := time.Since(start)
	e.hooks.OnSent(tmpl.Kind, elapsed)
	log.Info("notification sent", zap.Duration("latency", elapsed))
	return nil
}
