package main // Entry point of the seat map service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/room-seatmap/internal/catalog"
	"github.com/iliyamo/room-seatmap/internal/config"
	"github.com/iliyamo/room-seatmap/internal/database"
	"github.com/iliyamo/room-seatmap/internal/handler"
	"github.com/iliyamo/room-seatmap/internal/middleware"
	"github.com/iliyamo/room-seatmap/internal/queue"
	"github.com/iliyamo/room-seatmap/internal/repository"
	"github.com/iliyamo/room-seatmap/internal/router"
	"github.com/iliyamo/room-seatmap/internal/seatmap"
	queue_publisher "github.com/iliyamo/room-seatmap/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	log.Printf("catalog: %d locations, %d time slots", len(cat.Layouts.Locations()), len(cat.TimeSlots.All()))

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable, rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := &queue.Consumer{URL: cfg.AMQPURL}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("selection-consumer: stopped: %v", err)
		}
	}()

	h := handler.NewSeatMapHandler(
		seatmap.New(cat.Layouts, cat.TimeSlots),
		cat.TimeSlots,
		repository.NewReservationRepo(db, cfg.Location),
		queue_publisher.New(cfg.AMQPURL),
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	router.RegisterRoutes(e)
	router.RegisterPublic(e, h, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterMember(e, h, cfg.JWTSecret, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
