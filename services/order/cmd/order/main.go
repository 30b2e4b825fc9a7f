package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/Skotchmaster/restaurant_pos/pkg/db"
	"github.com/Skotchmaster/restaurant_pos/pkg/events"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	loggingmw "github.com/Skotchmaster/restaurant_pos/pkg/middleware/logging"

	ordercfg "github.com/Skotchmaster/restaurant_pos/services/order/internal/config"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/httpserver"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/service"
)

func main() {
	cfg := ordercfg.Load("services/order/.env")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		publisher = producer
	} else {
		logger.Warn("kafka brokers not configured, events disabled")
	}

	r := &repo.GormRepo{DB: db}
	orders := &service.OrderService{
		Repo:   r,
		Events: publisher,
		Opts: service.Options{
			AwardOn:          cfg.AwardOn,
			StrictCatalog:    cfg.StrictCatalog,
			ReorderThreshold: cfg.ReorderThreshold,
		},
	}
	analytics := &service.AnalyticsService{Repo: r, Location: cfg.Location}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		OrderHandler:     &httpserver.OrderHTTP{Svc: orders},
		AnalyticsHandler: &httpserver.AnalyticsHTTP{Svc: analytics},
		JWTSecret:        cfg.JWTAccessSecret,
		DB:               db,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("order service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("order service stopped")
}
