// README: Zone store backed by PostgreSQL; geometry parsed once on read.
package zone

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ghaseel/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ListZones(ctx context.Context) ([]Zone, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name_en, name_ar, notes, geometry
        FROM zones
        ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []Zone
	for rows.Next() {
		var z Zone
		var raw []byte
		if err := rows.Scan(&z.ID, &z.NameEn, &z.NameAr, &z.Notes, &raw); err != nil {
			return nil, err
		}
		z.Geometry = ParseGeometry(raw)
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

func (s *Store) GetZone(ctx context.Context, id types.ID) (*Zone, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name_en, name_ar, notes, geometry
        FROM zones
        WHERE id = $1`, string(id))

	var z Zone
	var raw []byte
	err := row.Scan(&z.ID, &z.NameEn, &z.NameAr, &z.Notes, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	z.Geometry = ParseGeometry(raw)
	return &z, nil
}
