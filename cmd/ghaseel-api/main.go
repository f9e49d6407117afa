// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"ghaseel/internal/config"
	httptransport "ghaseel/internal/http"
	"ghaseel/internal/http/handlers"
	"ghaseel/internal/infra"
	"ghaseel/internal/maps"
	"ghaseel/internal/modules/booking"
	"ghaseel/internal/modules/catalog"
	"ghaseel/internal/modules/pricing"
	"ghaseel/internal/modules/schedule"
	"ghaseel/internal/modules/zone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	zoneStore := zone.NewStore(dbPool)
	zoneSvc := zone.NewService(zoneStore)

	catalogStore := catalog.NewStore(dbPool)
	ruleStore := pricing.NewStore(dbPool)
	pricingSvc := pricing.NewService(catalogStore, zoneStore, ruleStore)

	scheduleSvc := schedule.NewService(zoneStore, schedule.NewStore(dbPool), cfg.Schedule)

	holdStore := booking.NewHoldStore(redisClient)
	bookingStore := booking.NewStore(dbPool)
	bookingSvc := booking.NewService(bookingStore, pricingSvc, scheduleSvc, zoneSvc, holdStore, cfg.Schedule)

	var geocoder handlers.Geocoder
	if cfg.Maps.APIKey != "" {
		g, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		geocoder = g
	} else {
		log.Print("GHASEEL_MAPS_API_KEY not set; address-based requests disabled")
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Zones:    zoneSvc,
		Pricing:  pricingSvc,
		Schedule: scheduleSvc,
		Booking:  bookingSvc,
		Geocoder: geocoder,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: cors.Default().Handler(router)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
