// README: Zone resolution handler (coordinate or address to service zone).
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ghaseel/internal/modules/zone"
	"ghaseel/internal/types"
)

// Geocoder converts a street address to coordinates. Optional: nil disables
// address-based resolution.
type Geocoder interface {
	Locate(ctx context.Context, address string) (types.Point, error)
}

type ZoneHandler struct {
	zones    *zone.Service
	geocoder Geocoder
}

func NewZoneHandler(zones *zone.Service, geocoder Geocoder) *ZoneHandler {
	return &ZoneHandler{zones: zones, geocoder: geocoder}
}

type resolveZoneReq struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address"`
}

type zoneResp struct {
	ZoneID types.ID `json:"zone_id"`
	NameEn string   `json:"name_en"`
	NameAr string   `json:"name_ar"`
}

func (h *ZoneHandler) Resolve(c *gin.Context) {
	var req resolveZoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	var p types.Point
	switch {
	case req.Lat != nil && req.Lng != nil:
		p = types.Point{Lat: *req.Lat, Lng: *req.Lng}
	case req.Address != "":
		if h.geocoder == nil {
			writeError(c, http.StatusBadRequest, "address lookup not configured")
			return
		}
		loc, err := h.geocoder.Locate(c.Request.Context(), req.Address)
		if err != nil {
			writeError(c, http.StatusBadRequest, "address could not be located")
			return
		}
		p = loc
	default:
		writeError(c, http.StatusBadRequest, "lat/lng or address required")
		return
	}

	z, err := h.zones.Resolve(c.Request.Context(), p)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, zoneResp{ZoneID: z.ID, NameEn: z.NameEn, NameAr: z.NameAr})
}
