// README: Booking handlers for create/get and lifecycle transitions.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ghaseel/internal/modules/booking"
	"ghaseel/internal/types"
)

// BookingService is the slice of the booking service the handlers call.
type BookingService interface {
	Create(ctx context.Context, cmd booking.CreateCommand) (types.ID, error)
	Get(ctx context.Context, id types.ID) (*booking.Booking, error)
	Depart(ctx context.Context, id types.ID) error
	Start(ctx context.Context, id types.ID) error
	Finish(ctx context.Context, id types.ID) error
	Postpone(ctx context.Context, cmd booking.PostponeCommand) error
	Reschedule(ctx context.Context, cmd booking.RescheduleCommand) error
	Cancel(ctx context.Context, cmd booking.CancelCommand) error
}

type BookingHandler struct {
	booking  BookingService
	geocoder Geocoder
}

func NewBookingHandler(svc BookingService, geocoder Geocoder) *BookingHandler {
	return &BookingHandler{booking: svc, geocoder: geocoder}
}

type createBookingReq struct {
	CustomerID string   `json:"customer_id"`
	ServiceID  string   `json:"service_id"`
	AddonIDs   []string `json:"addon_ids"`
	CarType    string   `json:"car_type"`
	Solo       bool     `json:"solo"`
	ZoneID     string   `json:"zone_id"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	Address    string   `json:"address"`
	Start      string   `json:"start"` // RFC 3339
	End        string   `json:"end"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.CustomerID == "" || req.ServiceID == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		writeError(c, http.StatusBadRequest, "start must be RFC 3339")
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		writeError(c, http.StatusBadRequest, "end must be RFC 3339")
		return
	}

	var point *types.Point
	switch {
	case req.Lat != nil && req.Lng != nil:
		point = &types.Point{Lat: *req.Lat, Lng: *req.Lng}
	case req.Address != "":
		if h.geocoder == nil {
			writeError(c, http.StatusBadRequest, "address lookup not configured")
			return
		}
		loc, gerr := h.geocoder.Locate(c.Request.Context(), req.Address)
		if gerr != nil {
			writeError(c, http.StatusBadRequest, "address could not be located")
			return
		}
		point = &loc
	case req.ZoneID != "":
		// Zone picked explicitly; no location needed.
	default:
		writeError(c, http.StatusBadRequest, "zone_id, lat/lng, or address required")
		return
	}

	addonIDs := make([]types.ID, len(req.AddonIDs))
	for i, id := range req.AddonIDs {
		addonIDs[i] = types.ID(id)
	}

	id, err := h.booking.Create(c.Request.Context(), booking.CreateCommand{
		CustomerID: types.ID(req.CustomerID),
		ServiceID:  types.ID(req.ServiceID),
		AddonIDs:   addonIDs,
		CarType:    req.CarType,
		Solo:       req.Solo,
		ZoneID:     types.ID(req.ZoneID),
		Location:   point,
		Start:      start,
		End:        end,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"booking_id": id, "status": booking.StatusConfirmed})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	b, err := h.booking.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"booking_id":         b.ID,
		"status":             b.Status,
		"zone_id":            b.ZoneID,
		"start":              b.Start,
		"end":                b.End,
		"total_price":        b.TotalPrice,
		"estimated_duration": b.EstimatedMinutes,
	})
}

func (h *BookingHandler) Depart(c *gin.Context) {
	h.simpleTransition(c, h.booking.Depart)
}

func (h *BookingHandler) Start(c *gin.Context) {
	h.simpleTransition(c, h.booking.Start)
}

func (h *BookingHandler) Finish(c *gin.Context) {
	h.simpleTransition(c, h.booking.Finish)
}

type postponeReq struct {
	Reason string `json:"reason"`
	Start  string `json:"start"` // optional new window: reschedule immediately
	End    string `json:"end"`
}

func (h *BookingHandler) Postpone(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	// Reason and new window are both optional; a body-less postpone is fine,
	// same as cancel.
	var req postponeReq
	_ = c.ShouldBindJSON(&req)
	if err := h.booking.Postpone(c.Request.Context(), booking.PostponeCommand{
		BookingID: types.ID(id),
		Reason:    req.Reason,
	}); err != nil {
		writeDomainError(c, err)
		return
	}
	if req.Start == "" && req.End == "" {
		writeJSON(c, http.StatusOK, map[string]any{"status": booking.StatusPostponed})
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		writeError(c, http.StatusBadRequest, "start must be RFC 3339")
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		writeError(c, http.StatusBadRequest, "end must be RFC 3339")
		return
	}
	if err := h.booking.Reschedule(c.Request.Context(), booking.RescheduleCommand{
		BookingID: types.ID(id),
		Start:     start,
		End:       end,
	}); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": booking.StatusConfirmed})
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	var req cancelReq
	_ = c.ShouldBindJSON(&req)
	if err := h.booking.Cancel(c.Request.Context(), booking.CancelCommand{
		BookingID: types.ID(id),
		ActorType: "customer",
		Reason:    req.Reason,
	}); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": booking.StatusCanceled})
}

func (h *BookingHandler) simpleTransition(c *gin.Context, fn func(ctx context.Context, id types.ID) error) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	if err := fn(c.Request.Context(), types.ID(id)); err != nil {
		writeDomainError(c, err)
		return
	}
	b, err := h.booking.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": b.Status})
}
