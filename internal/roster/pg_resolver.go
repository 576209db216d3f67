package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizhub/class-notifier/internal/domain"
)

type pgResolver struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPgResolver returns a Resolver backed by PostgreSQL. Every Resolve call
// is bounded by timeout and uses one scoped connection from the pool,
// released before dispatch begins — never held across pacing delays.
func NewPgResolver(pool *pgxpool.Pool, timeout time.Duration) Resolver {
	return &pgResolver{pool: pool, timeout: timeout}
}

func (r *pgResolver) Resolve(ctx context.Context, classID string) ([]domain.Recipient, error) {
	if classID == "" {
		return nil, fmt.Errorf("%w: class_id", domain.ErrMissingField)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire connection: %v", domain.ErrStoreUnavailable, err)
	}
	defer conn.Release()

	// DISTINCT deduplicates students enrolled through overlapping sections;
	// ORDER BY u.id fixes the store order for deterministic batches.
	rows, err := conn.Query(ctx, `
		SELECT DISTINCT u.email, u.name, u.role, u.id
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		WHERE e.class_id = $1
		  AND u.role = 'student'
		ORDER BY u.id`, classID)
	if err != nil {
		return nil, fmt.Errorf("%w: query roster: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var recipients []domain.Recipient
	for rows.Next() {
		var rec domain.Recipient
		var id int64
		if err := rows.Scan(&rec.Email, &rec.Name, &rec.Role, &id); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read roster rows: %v", domain.ErrStoreUnavailable, err)
	}

	// Zero rows is a distinct, caller-reportable condition, not a store failure.
	if len(recipients) == 0 {
		return nil, domain.ErrNoRecipients
	}
	return recipients, nil
}

// compile-time check that pgResolver implements Resolver
var _ Resolver = (*pgResolver)(nil)
