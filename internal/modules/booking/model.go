// README: Booking aggregate, status definitions, and state-transition table.
package booking

import (
	"time"

	"ghaseel/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusConfirmed Status = "confirmed"
	StatusOnTheWay  Status = "on_the_way"
	StatusStarted   Status = "started"
	StatusFinished  Status = "finished"
	StatusPostponed Status = "postponed"
	StatusCanceled  Status = "canceled"
)

type Booking struct {
	ID            types.ID
	CustomerID    types.ID
	ZoneID        types.ID
	ServiceID     types.ID
	AddonIDs      []types.ID
	CarType       string
	Solo          bool
	Location      types.Point
	Status        Status
	StatusVersion int
	Start         time.Time
	End           time.Time

	// Price breakdown frozen at creation time.
	BasePrice        float64
	AddonsTotal      float64
	DistanceFee      float64
	TotalPrice       float64
	EstimatedMinutes int

	CreatedAt  time.Time
	DepartedAt *time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
	CanceledAt *time.Time

	// StatusReason is the caller-supplied reason for the most recent postpone
	// or cancel, when one was given.
	StatusReason *string
}

type Event struct {
	ID         int64
	BookingID  types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	CreatedAt  time.Time
}

// AllowedTransitions represents the wash visit lifecycle as code. Only
// confirmed bookings occupy crew capacity, so postponing a visit frees its
// window until it is rescheduled back to confirmed.
var AllowedTransitions = map[Status][]Status{
	StatusConfirmed: {StatusOnTheWay, StatusPostponed, StatusCanceled},
	StatusOnTheWay:  {StatusStarted, StatusCanceled},
	StatusStarted:   {StatusFinished},
	StatusPostponed: {StatusConfirmed, StatusCanceled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
