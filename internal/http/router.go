// README: HTTP router registration; delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ghaseel/internal/http/handlers"
	"ghaseel/internal/http/middleware"
	"ghaseel/internal/modules/booking"
	"ghaseel/internal/modules/pricing"
	"ghaseel/internal/modules/schedule"
	"ghaseel/internal/modules/zone"
)

type RouterDeps struct {
	Zones    *zone.Service
	Pricing  *pricing.Service
	Schedule *schedule.Service
	Booking  *booking.Service
	Geocoder handlers.Geocoder // optional
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.RateLimit(50, 100),
	)

	zoneHandler := handlers.NewZoneHandler(deps.Zones, deps.Geocoder)
	r.POST("/api/zones/resolve", zoneHandler.Resolve)

	pricingHandler := handlers.NewPricingHandler(deps.Pricing)
	r.POST("/api/pricing/quote", pricingHandler.Quote)

	scheduleHandler := handlers.NewScheduleHandler(deps.Schedule)
	r.GET("/api/zones/:id/slots", scheduleHandler.ListSlots)

	bookingHandler := handlers.NewBookingHandler(deps.Booking, deps.Geocoder)
	r.POST("/api/bookings", bookingHandler.Create)
	r.GET("/api/bookings/:id", bookingHandler.Get)
	r.POST("/api/bookings/:id/depart", bookingHandler.Depart)
	r.POST("/api/bookings/:id/start", bookingHandler.Start)
	r.POST("/api/bookings/:id/finish", bookingHandler.Finish)
	r.POST("/api/bookings/:id/postpone", bookingHandler.Postpone)
	r.POST("/api/bookings/:id/cancel", bookingHandler.Cancel)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
