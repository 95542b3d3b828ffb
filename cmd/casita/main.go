package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	analyticsapp "casita/internal/app/analytics"
	"casita/internal/app/booking"
	"casita/internal/app/cascade"
	catalogapp "casita/internal/app/catalog"
	"casita/internal/app/policies"
	syncapp "casita/internal/app/sync"
	domainanalytics "casita/internal/domain/analytics"
	"casita/internal/domain/pricing"
	"casita/internal/infra/broker/kafka"
	"casita/internal/infra/cache"
	"casita/internal/infra/config"
	ginserver "casita/internal/infra/http/gin"
	"casita/internal/infra/obs"
	"casita/internal/infra/storage/gormstore"
	"casita/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.Store)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	closers  []func() error
}

func (a application) close(logger *slog.Logger) {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, error) {
	var app application

	var deps struct {
		engine       *pricing.Engine
		aggregator   *domainanalytics.Aggregator
		catalogSvc   *catalogapp.Service
		cascadeSvc   *cascade.Service
		bookingSvc   *booking.Service
		syncSvc      *syncapp.Service
		analyticsSvc *analyticsapp.Service
	}

	var publisher policies.EventPublisher = policies.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return app, fmt.Errorf("kafka producer: %w", err)
		}
		app.closers = append(app.closers, producer.Close)
		publisher = kafka.EventPublisher{Producer: producer, Topic: cfg.KafkaTopic}
		logger.Info("kafka producer connected", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	switch cfg.Store {
	case "memory":
		factory := memory.NewFactory()
		deps.engine = &pricing.Engine{
			Properties:      factory.Properties,
			Units:           factory.Units,
			Rules:           factory.Rules,
			Logger:          logger,
			MaxCalendarDays: cfg.CalendarMaxDays,
		}
		deps.aggregator = &domainanalytics.Aggregator{
			Units:        factory.Units,
			Reservations: factory.Reservations,
		}
		deps.catalogSvc = &catalogapp.Service{UoW: factory, Logger: logger}
		deps.cascadeSvc = &cascade.Service{UoW: factory, Publisher: publisher, Logger: logger}
		deps.bookingSvc = &booking.Service{UoW: factory, Engine: deps.engine, Publisher: publisher, Logger: logger}
		deps.syncSvc = &syncapp.Service{Cascade: deps.cascadeSvc, History: factory.SmartPricing, Logger: logger}
	case "sqlite", "postgres":
		db, err := gormstore.Open(cfg.Store, cfg.DatabaseDSN)
		if err != nil {
			return app, err
		}
		factory := gormstore.NewFactory(db)
		deps.engine = &pricing.Engine{
			Properties:      gormstore.NewPropertyRepository(db),
			Units:           gormstore.NewUnitRepository(db),
			Rules:           gormstore.NewRuleRepository(db),
			Logger:          logger,
			MaxCalendarDays: cfg.CalendarMaxDays,
		}
		deps.aggregator = &domainanalytics.Aggregator{
			Units:        gormstore.NewUnitRepository(db),
			Reservations: gormstore.NewReservationRepository(db),
		}
		deps.catalogSvc = &catalogapp.Service{UoW: factory, Logger: logger}
		deps.cascadeSvc = &cascade.Service{UoW: factory, Publisher: publisher, Logger: logger}
		deps.bookingSvc = &booking.Service{UoW: factory, Engine: deps.engine, Publisher: publisher, Logger: logger}
		deps.syncSvc = &syncapp.Service{Cascade: deps.cascadeSvc, History: gormstore.NewSmartPricingRepository(db), Logger: logger}
	default:
		return app, fmt.Errorf("unknown store %q", cfg.Store)
	}

	deps.analyticsSvc = &analyticsapp.Service{
		Aggregator: deps.aggregator,
		Engine:     deps.engine,
		Units:      deps.engine.Units,
		Cache:      cache.NewTTLCache(),
		CacheTTL:   cfg.MetricsCacheTTL,
		Logger:     logger,
	}

	app.handlers = ginserver.Handlers{
		Pricing: ginserver.PricingHandler{Engine: deps.engine},
		Property: ginserver.PropertyHandler{
			Catalog:    deps.catalogSvc,
			CascadeSvc: deps.cascadeSvc,
			Sync:       deps.syncSvc,
		},
		Reservation: ginserver.ReservationHandler{
			Booking:   deps.bookingSvc,
			Analytics: deps.analyticsSvc,
		},
		Metrics: ginserver.MetricsHandler{Analytics: deps.analyticsSvc},
	}
	return app, nil
}
