// README: Catalog store backed by PostgreSQL.
package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ghaseel/internal/types"
)

var ErrServiceNotFound = errors.New("service not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetService(ctx context.Context, id types.ID) (*Service, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, slug, name_en, name_ar, team_price, solo_price, est_minutes, visible, sort_order
        FROM services
        WHERE id = $1`, string(id))

	var sv Service
	err := row.Scan(&sv.ID, &sv.Slug, &sv.NameEn, &sv.NameAr,
		&sv.TeamPrice, &sv.SoloPrice, &sv.EstMinutes, &sv.Visible, &sv.SortOrder)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

// ListAddons returns the addons that exist among ids. Unknown ids are simply
// absent from the result; each addon appears at most once regardless of
// duplicates in the input.
func (s *Store) ListAddons(ctx context.Context, ids []types.ID) ([]Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}
	rows, err := s.db.Query(ctx, `
        SELECT id, name_en, name_ar, price, est_minutes
        FROM addons
        WHERE id = ANY($1)
        ORDER BY id`, raw)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addons []Addon
	for rows.Next() {
		var a Addon
		if err := rows.Scan(&a.ID, &a.NameEn, &a.NameAr, &a.Price, &a.EstMinutes); err != nil {
			return nil, err
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}
