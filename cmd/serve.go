package main

import (
	"context"
	"net/http"
	"os"

	"mergington-activities/config"
	"mergington-activities/internal/events"
	"mergington-activities/internal/observability"
	"mergington-activities/internal/repository"
	"mergington-activities/internal/seed"
	"mergington-activities/internal/transport/http/middleware"
	"mergington-activities/internal/transport/http/server/handlers-fiber"
	"mergington-activities/internal/usecase"
	"mergington-activities/pkg/logger"
	"mergington-activities/static"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func runServe(ctx context.Context) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	catalog, err := seed.Load(cfg.Storage.SeedFile)
	if err != nil {
		log.Errorw("seed catalog error", "error", err, "seed_file", cfg.Storage.SeedFile)
		return err
	}

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg, catalog)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return err
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return err
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	publisher := newPublisher(log, cfg.Kafka)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warnw("event publisher close error", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	uc := usecase.New(log, repo, publisher, metrics, cfg.HTTP.RequestTimeout)
	if _, err := uc.Activities(ctx); err != nil {
		log.Errorw("initial roster read error", "error", err)
		return err
	}

	serv := newApp(cfg, log, uc, reg)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", cfg.ServerAddr(), "backend", cfg.Storage.Backend)
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Errorw("failed to start server", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := serv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout, "error", err)
	}
	return nil
}

func newApp(cfg *config.Config, log *zap.SugaredLogger, uc usecase.InterfaceUsecase, reg *prometheus.Registry) *fiber.App {
	serv := fiber.New(fiber.Config{
		ReadTimeout:           cfg.HTTP.RequestTimeout,
		WriteTimeout:          cfg.HTTP.RequestTimeout,
		DisableStartupMessage: true,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	serv.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	mountFrontEnd(serv, log, cfg.HTTP.StaticDir)

	h := handlers_fiber.NewHandler(log, uc)
	handlers_fiber.RegisterHandlers(serv, h)
	return serv
}

// mountFrontEnd serves dir under /static, or the embedded front-end when dir
// is unset or missing.
func mountFrontEnd(serv *fiber.App, log *zap.SugaredLogger, dir string) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			serv.Static("/static", dir)
			return
		}
		log.Warnw("static directory not found, serving built-in front-end", "dir", dir)
	}
	serv.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(static.Files)}))
}

func newPublisher(log *zap.SugaredLogger, cfg config.KafkaConfig) events.Publisher {
	if len(cfg.Brokers) == 0 {
		return events.Nop{}
	}
	log.Infow("publishing roster events", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return events.NewKafkaPublisher(log, cfg.Brokers, cfg.Topic)
}
