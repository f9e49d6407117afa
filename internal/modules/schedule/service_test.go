package schedule

import (
	"context"
	"reflect"
	"testing"
	"time"

	"ghaseel/internal/config"
	"ghaseel/internal/modules/zone"
	"ghaseel/internal/types"
)

type fakeZones struct {
	ids map[types.ID]bool
}

func (f *fakeZones) GetZone(ctx context.Context, id types.ID) (*zone.Zone, error) {
	if !f.ids[id] {
		return nil, zone.ErrNotFound
	}
	return &zone.Zone{ID: id}, nil
}

type fakeBookings struct {
	bookings []Booking
}

func (f *fakeBookings) ConfirmedOverlapping(ctx context.Context, zoneID types.ID, from, to time.Time) ([]Booking, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.ZoneID == zoneID && overlaps(b.Start, b.End, from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func defaultCfg() config.ScheduleConfig {
	return config.ScheduleConfig{
		OpenTime:      "08:00",
		CloseTime:     "18:00",
		WindowMinutes: 90,
		StepMinutes:   60,
		BufferMinutes: 30,
		Capacity:      3,
	}
}

var testDay = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
}

func newTestService(bookings []Booking, cfg config.ScheduleConfig) *Service {
	return NewService(
		&fakeZones{ids: map[types.ID]bool{"z_riyadh": true}},
		&fakeBookings{bookings: bookings},
		cfg,
	)
}

func TestAvailableSlots_Generation(t *testing.T) {
	svc := newTestService(nil, defaultCfg())

	slots, err := svc.AvailableSlots(context.Background(), "z_riyadh", 60, testDay)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}

	// 08:00–18:00 with 90-minute windows stepped hourly: last window that
	// still closes by 18:00 starts at 16:00.
	if len(slots) != 9 {
		t.Fatalf("got %d slots, want 9", len(slots))
	}
	if !slots[0].Start.Equal(at(8, 0)) || !slots[0].End.Equal(at(9, 30)) {
		t.Errorf("first slot = %v–%v, want 08:00–09:30", slots[0].Start, slots[0].End)
	}
	if !slots[8].Start.Equal(at(16, 0)) || !slots[8].End.Equal(at(17, 30)) {
		t.Errorf("last slot = %v–%v, want 16:00–17:30", slots[8].Start, slots[8].End)
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.After(slots[i-1].Start) {
			t.Fatalf("slots out of chronological order at %d", i)
		}
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %v should be available on an empty schedule", s.Start)
		}
		if s.ZoneID != "z_riyadh" {
			t.Errorf("slot zone = %s, want z_riyadh", s.ZoneID)
		}
	}
}

func TestAvailableSlots_CapacityBlocksSlot(t *testing.T) {
	// Three confirmed bookings fully overlapping the 10:00–11:30 window.
	full := []Booking{
		{ID: "b1", ZoneID: "z_riyadh", Start: at(10, 0), End: at(11, 30)},
		{ID: "b2", ZoneID: "z_riyadh", Start: at(10, 0), End: at(11, 30)},
		{ID: "b3", ZoneID: "z_riyadh", Start: at(10, 0), End: at(11, 30)},
	}
	svc := newTestService(full, defaultCfg())

	slots, err := svc.AvailableSlots(context.Background(), "z_riyadh", 60, testDay)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	for _, s := range slots {
		switch {
		case s.Start.Equal(at(10, 0)):
			if s.Available {
				t.Error("10:00 slot should be blocked at full capacity")
			}
		case s.Start.Equal(at(9, 0)), s.Start.Equal(at(11, 0)):
			// Overlapping neighbours of the saturated window are blocked too.
			if s.Available {
				t.Errorf("%v slot overlaps three bookings and should be blocked", s.Start)
			}
		case s.Start.Equal(at(8, 0)):
			// Ends at 09:30, before the bookings start.
			if !s.Available {
				t.Error("08:00 slot should be free")
			}
		}
	}

	// With one booking fewer the window opens up again.
	svc = newTestService(full[:2], defaultCfg())
	slots, err = svc.AvailableSlots(context.Background(), "z_riyadh", 60, testDay)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	for _, s := range slots {
		if s.Start.Equal(at(10, 0)) && !s.Available {
			t.Error("10:00 slot should be available with two of three crews booked")
		}
	}
}

func TestAvailableSlots_DurationPlusBufferMustFitWindow(t *testing.T) {
	svc := newTestService(nil, defaultCfg())

	// 61 + 30 > 90: every slot is unavailable even on an empty schedule.
	slots, err := svc.AvailableSlots(context.Background(), "z_riyadh", 61, testDay)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("got %d slots, want 9 (slots are still generated)", len(slots))
	}
	for _, s := range slots {
		if s.Available {
			t.Errorf("slot %v should be unavailable for an oversized service", s.Start)
		}
	}

	// 60 + 30 == 90 fits exactly.
	slots, err = svc.AvailableSlots(context.Background(), "z_riyadh", 60, testDay)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if !slots[0].Available {
		t.Error("60-minute service should fit a 90-minute window with a 30-minute buffer")
	}
}

func TestAvailableSlots_ZoneNotFound(t *testing.T) {
	svc := newTestService(nil, defaultCfg())
	_, err := svc.AvailableSlots(context.Background(), "z_missing", 60, testDay)
	if err != zone.ErrNotFound {
		t.Errorf("expected zone.ErrNotFound, got %v", err)
	}
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	booked := []Booking{
		{ID: "b1", ZoneID: "z_riyadh", Start: at(9, 0), End: at(10, 30)},
	}
	svc := newTestService(booked, defaultCfg())

	first, err := svc.AvailableSlots(context.Background(), "z_riyadh", 60, testDay)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	second, err := svc.AvailableSlots(context.Background(), "z_riyadh", 60, testDay)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two identical queries returned different slots")
	}
}

func TestAvailableSlots_DegradedOperatingHours(t *testing.T) {
	cfg := defaultCfg()
	cfg.OpenTime = "not-a-time"
	cfg.CloseTime = ""
	svc := newTestService(nil, cfg)

	slots, err := svc.AvailableSlots(context.Background(), "z_riyadh", 60, testDay)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	// Falls back to the 08:00–18:00 defaults instead of erroring.
	if len(slots) != 9 || !slots[0].Start.Equal(at(8, 0)) {
		t.Errorf("degraded hours should fall back to defaults, got %d slots", len(slots))
	}
}

func TestIsSlotFree(t *testing.T) {
	booked := []Booking{
		{ID: "b1", ZoneID: "z_riyadh", Start: at(10, 0), End: at(11, 30)},
		{ID: "b2", ZoneID: "z_riyadh", Start: at(10, 0), End: at(11, 30)},
		{ID: "b3", ZoneID: "z_riyadh", Start: at(10, 30), End: at(12, 0)},
	}
	svc := newTestService(booked, defaultCfg())
	ctx := context.Background()

	if svc.IsSlotFree(ctx, "z_riyadh", at(10, 0), at(11, 30)) {
		t.Error("window overlapping three confirmed bookings should not be free")
	}
	if !svc.IsSlotFree(ctx, "z_riyadh", at(14, 0), at(15, 30)) {
		t.Error("empty afternoon window should be free")
	}
	// Half-open intervals: a window starting exactly when b1/b2 end only
	// overlaps b3.
	if !svc.IsSlotFree(ctx, "z_riyadh", at(11, 30), at(13, 0)) {
		t.Error("back-to-back window should be free under the half-open overlap test")
	}
	// Unknown zone and inverted windows are not free, not errors.
	if svc.IsSlotFree(ctx, "z_missing", at(14, 0), at(15, 30)) {
		t.Error("unknown zone should not be free")
	}
	if svc.IsSlotFree(ctx, "z_riyadh", at(15, 30), at(14, 0)) {
		t.Error("inverted window should not be free")
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 time.Time
		want           bool
	}{
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"partial", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"touching ends", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(13, 0), at(14, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.a1, tt.a2, tt.b1, tt.b2); got != tt.want {
				t.Errorf("overlaps() = %v, want %v", got, tt.want)
			}
			// The test is symmetric in the two intervals.
			if got := overlaps(tt.b1, tt.b2, tt.a1, tt.a2); got != tt.want {
				t.Errorf("overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}
