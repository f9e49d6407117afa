// README: Occupancy store reads confirmed bookings from PostgreSQL.
package schedule

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ghaseel/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ConfirmedOverlapping(ctx context.Context, zoneID types.ID, from, to time.Time) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, zone_id, starts_at, ends_at
        FROM bookings
        WHERE zone_id = $1
          AND status = 'confirmed'
          AND starts_at < $3
          AND ends_at > $2
        ORDER BY starts_at`, string(zoneID), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.ZoneID, &b.Start, &b.End); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
