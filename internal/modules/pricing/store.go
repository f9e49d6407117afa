// README: Pricing rule store backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// GetRule returns the stored rule for key, or nil when none exists. Absence
// is not an error: the engine treats a missing rule as neutral.
func (s *Store) GetRule(ctx context.Context, key string) (*Rule, error) {
	row := s.db.QueryRow(ctx, `
        SELECT key, enabled, config
        FROM pricing_rules
        WHERE key = $1`, key)

	var r Rule
	err := row.Scan(&r.Key, &r.Enabled, &r.Config)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
