// README: Booking service implements creation with capacity re-check and state transitions.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"ghaseel/internal/config"
	"ghaseel/internal/modules/pricing"
	"ghaseel/internal/modules/zone"
	"ghaseel/internal/types"
)

var (
	ErrInvalidState = errors.New("invalid state transition")
	ErrNotFound     = errors.New("booking not found")
	ErrConflict     = errors.New("booking state conflict")
	ErrSlotTaken    = errors.New("slot no longer available")
	ErrBadRequest   = errors.New("bad request")
)

type Quoter interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (pricing.Quote, error)
}

type Scheduler interface {
	IsSlotFree(ctx context.Context, zoneID types.ID, start, end time.Time) bool
}

type Resolver interface {
	Resolve(ctx context.Context, p types.Point) (*zone.Zone, error)
}

// Holds is the short-TTL reservation counter consulted between the advisory
// slot check and the insert. Optional: a nil Holds skips the step and leaves
// the transactional re-check as the only guard.
type Holds interface {
	Acquire(ctx context.Context, zoneID types.ID, start time.Time, capacity int) (bool, error)
	Release(ctx context.Context, zoneID types.ID, start time.Time) error
}

type Service struct {
	store     *Store
	quoter    Quoter
	scheduler Scheduler
	resolver  Resolver
	holds     Holds
	cfg       config.ScheduleConfig
}

func NewService(store *Store, quoter Quoter, scheduler Scheduler, resolver Resolver, holds Holds, cfg config.ScheduleConfig) *Service {
	return &Service{store: store, quoter: quoter, scheduler: scheduler, resolver: resolver, holds: holds, cfg: cfg}
}

type CreateCommand struct {
	CustomerID types.ID
	ServiceID  types.ID
	AddonIDs   []types.ID
	CarType    string
	Solo       bool
	ZoneID     types.ID     // empty: resolve from Location
	Location   *types.Point // nil only with an explicit ZoneID
	Start      time.Time
	End        time.Time
}

type PostponeCommand struct {
	BookingID types.ID
	Reason    string
}

type RescheduleCommand struct {
	BookingID types.ID
	Start     time.Time
	End       time.Time
}

type CancelCommand struct {
	BookingID types.ID
	ActorType string
	Reason    string
}

// Create quotes, checks the slot, and inserts the booking. The availability
// answer is advisory; the insert re-checks capacity inside its own
// transaction, so two callers racing for the last crew cannot both win.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.CustomerID == "" || cmd.ServiceID == "" || !cmd.Start.Before(cmd.End) {
		return "", ErrBadRequest
	}

	zoneID := cmd.ZoneID
	if zoneID == "" {
		if cmd.Location == nil {
			return "", ErrBadRequest
		}
		z, err := s.resolver.Resolve(ctx, *cmd.Location)
		if err != nil {
			return "", err
		}
		zoneID = z.ID
	}

	quote, err := s.quoter.Quote(ctx, pricing.QuoteRequest{
		ServiceID: cmd.ServiceID,
		AddonIDs:  cmd.AddonIDs,
		CarType:   cmd.CarType,
		ZoneID:    zoneID,
		Point:     cmd.Location,
		Solo:      cmd.Solo,
	})
	if err != nil {
		return "", err
	}

	if !s.scheduler.IsSlotFree(ctx, zoneID, cmd.Start, cmd.End) {
		return "", ErrSlotTaken
	}

	if s.holds != nil {
		ok, err := s.holds.Acquire(ctx, zoneID, cmd.Start, s.cfg.Capacity)
		if err == nil && !ok {
			return "", ErrSlotTaken
		}
		// A hold-store failure is not fatal; the insert transaction is the
		// authoritative guard.
		if err == nil {
			defer func() { _ = s.holds.Release(ctx, zoneID, cmd.Start) }()
		}
	}

	var loc types.Point
	if cmd.Location != nil {
		loc = *cmd.Location
	}

	now := time.Now()
	b := &Booking{
		ID:               newID(),
		CustomerID:       cmd.CustomerID,
		ZoneID:           zoneID,
		ServiceID:        cmd.ServiceID,
		AddonIDs:         quote.AddonIDs,
		CarType:          cmd.CarType,
		Solo:             cmd.Solo,
		Location:         loc,
		Status:           StatusConfirmed,
		StatusVersion:    0,
		Start:            cmd.Start,
		End:              cmd.End,
		BasePrice:        quote.BasePrice,
		AddonsTotal:      quote.AddonsTotal,
		DistanceFee:      quote.DistanceFee,
		TotalPrice:       quote.TotalPrice,
		EstimatedMinutes: quote.EstimatedMinutes,
		CreatedAt:        now,
	}
	if err := s.store.CreateWithCapacityCheck(ctx, b, s.cfg.Capacity); err != nil {
		return "", err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: StatusNone,
		ToStatus:   StatusConfirmed,
		ActorType:  "customer",
		CreatedAt:  now,
	})
	return b.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

// Depart marks the crew as on the way.
func (s *Service) Depart(ctx context.Context, id types.ID) error {
	return s.transition(ctx, id, StatusOnTheWay, "crew", nil)
}

// Start marks the wash as started at the customer's location.
func (s *Service) Start(ctx context.Context, id types.ID) error {
	return s.transition(ctx, id, StatusStarted, "crew", nil)
}

// Finish completes the visit.
func (s *Service) Finish(ctx context.Context, id types.ID) error {
	return s.transition(ctx, id, StatusFinished, "crew", nil)
}

// Postpone takes a confirmed booking off the schedule, freeing its window.
func (s *Service) Postpone(ctx context.Context, cmd PostponeCommand) error {
	var reason *string
	if cmd.Reason != "" {
		reason = &cmd.Reason
	}
	return s.transition(ctx, cmd.BookingID, StatusPostponed, "customer", reason)
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	actor := cmd.ActorType
	if actor == "" {
		actor = "customer"
	}
	var reason *string
	if cmd.Reason != "" {
		reason = &cmd.Reason
	}
	return s.transition(ctx, cmd.BookingID, StatusCanceled, actor, reason)
}

// Reschedule moves a postponed booking back onto the schedule in a new
// window. The window is validated the same way Create validates the original
// one: advisory check first, then a capacity re-check inside the update
// transaction.
func (s *Service) Reschedule(ctx context.Context, cmd RescheduleCommand) error {
	if !cmd.Start.Before(cmd.End) {
		return ErrBadRequest
	}
	b, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, StatusConfirmed) {
		return ErrInvalidState
	}
	if !s.scheduler.IsSlotFree(ctx, b.ZoneID, cmd.Start, cmd.End) {
		return ErrSlotTaken
	}
	if err := s.store.RescheduleWithCapacityCheck(ctx, b, cmd.Start, cmd.End, s.cfg.Capacity); err != nil {
		return err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   StatusConfirmed,
		ActorType:  "customer",
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *Service) transition(ctx context.Context, id types.ID, to Status, actor string, reason *string) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, b.ID, b.Status, to, b.StatusVersion, reason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   to,
		ActorType:  actor,
		CreatedAt:  time.Now(),
	})
	return nil
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
