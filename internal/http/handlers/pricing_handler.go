// README: Quote handler exposes the pricing engine.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ghaseel/internal/modules/pricing"
	"ghaseel/internal/types"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

type quoteReq struct {
	ServiceID string   `json:"service_id"`
	AddonIDs  []string `json:"addon_ids"`
	CarType   string   `json:"car_type"`
	ZoneID    string   `json:"zone_id"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Solo      bool     `json:"solo"`
}

func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ServiceID == "" || req.ZoneID == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}

	addonIDs := make([]types.ID, len(req.AddonIDs))
	for i, id := range req.AddonIDs {
		addonIDs[i] = types.ID(id)
	}
	// Coordinates are optional; without them the distance fee is neutral.
	var point *types.Point
	if req.Lat != nil && req.Lng != nil {
		point = &types.Point{Lat: *req.Lat, Lng: *req.Lng}
	}
	q, err := h.pricing.Quote(c.Request.Context(), pricing.QuoteRequest{
		ServiceID: types.ID(req.ServiceID),
		AddonIDs:  addonIDs,
		CarType:   req.CarType,
		ZoneID:    types.ID(req.ZoneID),
		Point:     point,
		Solo:      req.Solo,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}
