package breach

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dataguardian/pkg/logger"
)

// PostgresStore is a breach membership store backed by a
// breach_hashes(digest text primary key, sources text[]) table. Lookup
// failures degrade to not-found so an unreachable database never turns
// into a request failure.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewPostgresStore creates a new PostgresStore over the given pool
func NewPostgresStore(pool *pgxpool.Pool, log *logger.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: log.WithComponent("breach-store-pg"),
	}
}

// Check looks up the email's digest in the breach_hashes table
func (s *PostgresStore) Check(ctx context.Context, email string) (bool, []string) {
	var sources []string
	err := s.pool.QueryRow(ctx,
		`SELECT sources FROM breach_hashes WHERE digest = $1`,
		Digest(email),
	).Scan(&sources)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("breach lookup failed, reporting not-found")
		return false, nil
	}

	return len(sources) > 0, sources
}
