// README: Booking store backed by PostgreSQL; capacity checks run inside the writing transaction.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

// CreateWithCapacityCheck inserts a confirmed booking after re-counting the
// overlapping confirmed bookings inside the same transaction. The zone row is
// locked first: counting the overlapping bookings alone locks nothing when the
// window is empty, so concurrent inserts must serialize on the zone instead.
func (s *Store) CreateWithCapacityCheck(ctx context.Context, b *Booking, capacity int) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockZone(ctx, tx, b.ZoneID); err != nil {
		return err
	}

	var overlapping int
	err = tx.QueryRow(ctx, `
        SELECT COUNT(*) FROM bookings
        WHERE zone_id = $1
          AND status = 'confirmed'
          AND starts_at < $3
          AND ends_at > $2`, string(b.ZoneID), b.Start, b.End).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping >= capacity {
		return ErrSlotTaken
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO bookings (
            id, customer_id, zone_id, service_id, addon_ids, car_type, solo,
            lat, lng, status, status_version, starts_at, ends_at,
            base_price, addons_total, distance_fee, total_price, estimated_minutes,
            created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7,
            $8, $9, $10, $11, $12, $13,
            $14, $15, $16, $17, $18,
            $19
        )`,
		string(b.ID), string(b.CustomerID), string(b.ZoneID), string(b.ServiceID),
		idsToStrings(b.AddonIDs), b.CarType, b.Solo,
		b.Location.Lat, b.Location.Lng, string(b.Status), b.StatusVersion, b.Start, b.End,
		b.BasePrice, b.AddonsTotal, b.DistanceFee, b.TotalPrice, b.EstimatedMinutes,
		b.CreatedAt,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RescheduleWithCapacityCheck moves a postponed booking back to confirmed in
// a new window, re-counting capacity and CAS-ing on status_version inside one
// transaction. Serializes on the zone row like CreateWithCapacityCheck.
func (s *Store) RescheduleWithCapacityCheck(ctx context.Context, b *Booking, start, end time.Time, capacity int) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockZone(ctx, tx, b.ZoneID); err != nil {
		return err
	}

	var overlapping int
	err = tx.QueryRow(ctx, `
        SELECT COUNT(*) FROM bookings
        WHERE zone_id = $1
          AND status = 'confirmed'
          AND id <> $2
          AND starts_at < $4
          AND ends_at > $3`, string(b.ZoneID), string(b.ID), start, end).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping >= capacity {
		return ErrSlotTaken
	}

	tag, err := tx.Exec(ctx, `
        UPDATE bookings
        SET status = 'confirmed',
            status_version = status_version + 1,
            starts_at = $1,
            ends_at = $2
        WHERE id = $3 AND status = $4 AND status_version = $5`,
		start, end, string(b.ID), string(b.Status), b.StatusVersion,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrConflict
	}
	return tx.Commit(ctx)
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, customer_id, zone_id, service_id, addon_ids, car_type, solo,
               lat, lng, status, status_version, starts_at, ends_at,
               base_price, addons_total, distance_fee, total_price, estimated_minutes,
               created_at, departed_at, started_at, finished_at, canceled_at, status_reason
        FROM bookings
        WHERE id = $1`, string(id),
	)

	var b Booking
	var addonIDs []string
	var departedAt, startedAt, finishedAt, canceledAt sql.NullTime
	var statusReason sql.NullString

	err := row.Scan(
		&b.ID, &b.CustomerID, &b.ZoneID, &b.ServiceID, &addonIDs, &b.CarType, &b.Solo,
		&b.Location.Lat, &b.Location.Lng, &b.Status, &b.StatusVersion, &b.Start, &b.End,
		&b.BasePrice, &b.AddonsTotal, &b.DistanceFee, &b.TotalPrice, &b.EstimatedMinutes,
		&b.CreatedAt, &departedAt, &startedAt, &finishedAt, &canceledAt, &statusReason,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	for _, a := range addonIDs {
		b.AddonIDs = append(b.AddonIDs, types.ID(a))
	}
	b.DepartedAt = toTimePtr(departedAt)
	b.StartedAt = toTimePtr(startedAt)
	b.FinishedAt = toTimePtr(finishedAt)
	b.CanceledAt = toTimePtr(canceledAt)
	if statusReason.Valid {
		b.StatusReason = &statusReason.String
	}
	return &b, nil
}

// UpdateStatus performs the optimistic transition: it only succeeds when the
// booking is still in the expected status and version. Returns false when a
// concurrent writer got there first.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, reason *string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE bookings
        SET status = $1,
            status_version = status_version + 1,
            departed_at = CASE WHEN $1 = 'on_the_way' THEN NOW() ELSE departed_at END,
            started_at = CASE WHEN $1 = 'started' THEN NOW() ELSE started_at END,
            finished_at = CASE WHEN $1 = 'finished' THEN NOW() ELSE finished_at END,
            canceled_at = CASE WHEN $1 = 'canceled' THEN NOW() ELSE canceled_at END,
            status_reason = COALESCE($2, status_reason)
        WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to),
		reason,
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO booking_state_events (
            booking_id, from_status, to_status, actor_type, created_at
        ) VALUES ($1, $2, $3, $4, $5)`,
		string(e.BookingID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		e.CreatedAt,
	)
	return err
}

// lockZone takes the per-zone write lock for the duration of tx.
func lockZone(ctx context.Context, tx pgx.Tx, zoneID types.ID) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM zones WHERE id = $1 FOR UPDATE`, string(zoneID)).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBadRequest
	}
	return err
}

func idsToStrings(ids []types.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
