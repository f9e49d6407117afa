// README: Availability scheduler generates candidate windows and tests crew capacity.
package schedule

import (
	"context"
	"time"

	"ghaseel/internal/config"
	"ghaseel/internal/modules/zone"
	"ghaseel/internal/types"
)

type Zones interface {
	GetZone(ctx context.Context, id types.ID) (*zone.Zone, error)
}

// Bookings lists confirmed bookings in a zone overlapping [from, to).
type Bookings interface {
	ConfirmedOverlapping(ctx context.Context, zoneID types.ID, from, to time.Time) ([]Booking, error)
}

type Service struct {
	zones    Zones
	bookings Bookings
	cfg      config.ScheduleConfig
}

func NewService(zones Zones, bookings Bookings, cfg config.ScheduleConfig) *Service {
	return &Service{zones: zones, bookings: bookings, cfg: cfg}
}

// AvailableSlots generates the zone's candidate windows for the given day and
// marks each available or not for a service of durationMin minutes. Windows
// overlap by design: a 90-minute window every 60 minutes gives finer start
// choices than the window length alone. Returns zone.ErrNotFound for an
// unknown zone.
func (s *Service) AvailableSlots(ctx context.Context, zoneID types.ID, durationMin int, day time.Time) ([]TimeSlot, error) {
	if _, err := s.zones.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}

	open, close := s.operatingWindow(day)
	window := time.Duration(s.cfg.WindowMinutes) * time.Minute
	step := time.Duration(s.cfg.StepMinutes) * time.Minute

	booked, err := s.bookings.ConfirmedOverlapping(ctx, zoneID, open, close)
	if err != nil {
		return nil, err
	}

	// A request whose duration plus buffer cannot fit the fixed window makes
	// every slot unavailable; capacity is not even consulted.
	fits := durationMin+s.cfg.BufferMinutes <= s.cfg.WindowMinutes

	var slots []TimeSlot
	for t := open; !t.Add(window).After(close); t = t.Add(step) {
		end := t.Add(window)
		slots = append(slots, TimeSlot{
			Start:     t,
			End:       end,
			Available: fits && s.underCapacity(booked, t, end),
			ZoneID:    zoneID,
		})
	}
	return slots, nil
}

// IsSlotFree reports whether an arbitrary window has spare capacity. It is a
// boolean guard, not an error path: an unknown zone or an inverted window is
// simply not free. The answer is advisory — the authoritative capacity check
// runs inside the booking-creation transaction.
func (s *Service) IsSlotFree(ctx context.Context, zoneID types.ID, start, end time.Time) bool {
	if !start.Before(end) {
		return false
	}
	if _, err := s.zones.GetZone(ctx, zoneID); err != nil {
		return false
	}
	booked, err := s.bookings.ConfirmedOverlapping(ctx, zoneID, start, end)
	if err != nil {
		return false
	}
	return s.underCapacity(booked, start, end)
}

func (s *Service) underCapacity(booked []Booking, start, end time.Time) bool {
	count := 0
	for _, b := range booked {
		if overlaps(start, end, b.Start, b.End) {
			count++
		}
	}
	return count < s.cfg.Capacity
}

// operatingWindow anchors the configured open/close times onto the given day.
// Unparseable times fall back to the 08:00–18:00 defaults; degraded
// configuration never aborts an availability query.
func (s *Service) operatingWindow(day time.Time) (time.Time, time.Time) {
	open := anchorClock(day, s.cfg.OpenTime, 8, 0)
	close := anchorClock(day, s.cfg.CloseTime, 18, 0)
	return open, close
}

func anchorClock(day time.Time, clock string, defHour, defMin int) time.Time {
	h, m := defHour, defMin
	if t, err := time.Parse("15:04", clock); err == nil {
		h, m = t.Hour(), t.Minute()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}
