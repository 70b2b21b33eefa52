package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolation = "23505"

// PostgresStore is a MappingStore backed by the wechat_openids table
// (see migrations/). The unique index on openid is what guarantees that
// concurrent provisioning of the same subject yields a single mapping.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed mapping store.
// The pool should be obtained from pkg/db.Connect.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Find returns the mapping for an openid.
func (s *PostgresStore) Find(ctx context.Context, openid string) (Mapping, error) {
	const q = `
		SELECT openid, user_id, username, created_at, updated_at
		FROM wechat_openids
		WHERE openid = $1`

	var m Mapping
	err := s.pool.QueryRow(ctx, q, openid).Scan(&m.OpenID, &m.UserID, &m.Username, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Mapping{}, ErrMappingNotFound
		}
		return Mapping{}, err
	}

	return m, nil
}

// Create persists a new mapping. A unique violation on the openid maps to
// ErrMappingExists.
func (s *PostgresStore) Create(ctx context.Context, m Mapping) error {
	const q = `
		INSERT INTO wechat_openids (openid, user_id, username, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`

	_, err := s.pool.Exec(ctx, q, m.OpenID, m.UserID, m.Username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrMappingExists
		}
		return err
	}

	return nil
}

// Delete removes the mapping for an openid.
func (s *PostgresStore) Delete(ctx context.Context, openid string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM wechat_openids WHERE openid = $1`, openid)
	return err
}

var _ MappingStore = (*PostgresStore)(nil)
