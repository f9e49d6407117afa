// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ghaseel/internal/modules/booking"
	"ghaseel/internal/modules/catalog"
	"ghaseel/internal/modules/zone"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch err {
	case booking.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case zone.ErrNotFound, catalog.ErrServiceNotFound, booking.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case booking.ErrInvalidState, booking.ErrConflict, booking.ErrSlotTaken:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
