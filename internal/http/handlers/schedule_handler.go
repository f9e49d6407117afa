// README: Availability handler lists a zone's candidate slots for a day.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ghaseel/internal/modules/schedule"
	"ghaseel/internal/types"
)

type ScheduleHandler struct {
	schedule *schedule.Service
}

func NewScheduleHandler(svc *schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{schedule: svc}
}

func (h *ScheduleHandler) ListSlots(c *gin.Context) {
	zoneID := c.Param("id")
	if zoneID == "" {
		writeError(c, http.StatusBadRequest, "missing zone id")
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		writeError(c, http.StatusBadRequest, "duration must be a positive number of minutes")
		return
	}

	slots, err := h.schedule.AvailableSlots(c.Request.Context(), types.ID(zoneID), duration, day)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"zone_id": zoneID, "slots": slots})
}
