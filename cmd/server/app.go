package main

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/phrazzld/elbship/internal/config"
	"github.com/phrazzld/elbship/internal/domain/elblog"
	"github.com/phrazzld/elbship/internal/events"
	"github.com/phrazzld/elbship/internal/platform/loggly"
	"github.com/phrazzld/elbship/internal/platform/s3"
	"github.com/phrazzld/elbship/internal/platform/sns"
	"github.com/phrazzld/elbship/internal/service"
	"github.com/phrazzld/elbship/internal/task"
)

// appDeps overrides the external clients. Nil fields get the real ones.
type appDeps struct {
	fetcher   service.LogFetcher
	forwarder service.BatchForwarder
	confirmer service.SubscriptionConfirmer
}

// application is the service context: the queue and every collaborator of
// the worker and the receiver, built once and shared by both.
type application struct {
	config *config.Config
	logger *slog.Logger

	queue         *task.Queue
	emitter       *events.InMemoryEventEmitter
	shipper       *service.LogShipper
	notifications *service.NotificationService
	runner        *task.Runner

	// dropped counts tasks given up after exhausting their retries.
	dropped atomic.Int64
}

func newApplication(cfg *config.Config, logger *slog.Logger, deps appDeps) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	format, err := elblog.ParseFormat(cfg.Sink.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid sink format: %w", err)
	}

	if deps.fetcher == nil {
		fetcher, err := s3.NewFetcher(cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage fetcher: %w", err)
		}
		deps.fetcher = fetcher
	}
	if deps.forwarder == nil {
		forwarder, err := loggly.NewForwarder(cfg.Sink, logger, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create sink forwarder: %w", err)
		}
		deps.forwarder = forwarder
	}
	if deps.confirmer == nil {
		deps.confirmer = sns.NewHTTPConfirmer(nil, logger)
	}

	app.shipper, err = service.NewLogShipper(deps.fetcher, deps.forwarder, format, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create log shipper: %w", err)
	}

	app.queue = task.NewQueue(logger)

	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.emitter.RegisterHandler(events.LogObjectEventType, task.NewEnqueueEventHandler(app.queue, logger))

	app.notifications = service.NewNotificationService(app.emitter, deps.confirmer, cfg.Storage.Scheme, logger)

	app.runner = task.NewRunner(app.queue, app.shipper, task.RunnerConfig{
		MaxTries:    cfg.Task.MaxTries,
		BackoffBase: cfg.Task.BackoffBase(),
		IdlePause:   cfg.Task.IdlePause(),
	}, logger)
	app.runner.SetGiveUpHandler(func(_ task.Task, _ *task.ExhaustedError) {
		app.dropped.Add(1)
	})

	logger.Info("application initialized",
		"sink_format", format,
		"max_tries", cfg.Task.MaxTries)
	return app, nil
}
