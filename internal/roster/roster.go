package roster

import (
	"context"

	"github.com/quizhub/class-notifier/internal/domain"
)

// Resolver maps a class identifier to the concrete set of student
// recipients enrolled in it. The pgx implementation is in pg_resolver.go;
// tests use a hand-written mock (mock_resolver.go).
//
// Resolve returns domain.ErrNoRecipients when the class has no enrolled
// students, and an error wrapping domain.ErrStoreUnavailable when the store
// cannot be reached — callers distinguish the two with errors.Is.
type Resolver interface {
	Resolve(ctx context.Context, classID string) ([]domain.Recipient, error)
}
