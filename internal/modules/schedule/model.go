// README: Derived time-slot model and occupancy view for availability queries.
package schedule

import (
	"time"

	"ghaseel/internal/types"
)

// TimeSlot is a candidate appointment window. Slots are derived per query and
// never persisted; two identical queries over unchanged bookings produce
// identical slots.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	ZoneID    types.ID  `json:"zone_id"`
}

// Booking is the read-only occupancy view of a confirmed booking. Only
// confirmed bookings count toward capacity, so the store filters on status
// and this view carries none.
type Booking struct {
	ID     types.ID
	ZoneID types.ID
	Start  time.Time
	End    time.Time
}

// overlaps is the half-open interval test: [a1,a2) and [b1,b2) overlap iff
// a1 < b2 && b1 < a2.
func overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}
