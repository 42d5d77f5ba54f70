package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"SigBoard/internal/handler/api"
	pkgch "SigBoard/pkg/clickhouse"
	"SigBoard/pkg/config"
	xhttp "SigBoard/pkg/http"
	pkgkafka "SigBoard/pkg/kafka"
	xlogger "SigBoard/pkg/logger"
	"SigBoard/pkg/poll"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg      *config.Config
	log      *xlogger.Logger
	handler  xhttp.Handler
	hub      *api.WSHub
	consumer *pkgkafka.Consumer
	ingest   pkgkafka.MessageHandler
	rdb      *goredis.Client
	chClient *pkgch.Client

	httpServer *xhttp.Server
	poller     *poll.Poller
}

// New creates a new App instance with all dependencies. consumer, ingest and
// chClient may be nil when the corresponding backend is not configured.
func New(
	cfg *config.Config,
	log *xlogger.Logger,
	handler xhttp.Handler,
	hub *api.WSHub,
	consumer *pkgkafka.Consumer,
	ingest pkgkafka.MessageHandler,
	rdb *goredis.Client,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		hub:      hub,
		consumer: consumer,
		ingest:   ingest,
		rdb:      rdb,
		chClient: chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(a.log),
	)

	// Start consumer if configured
	if a.consumer != nil && a.ingest != nil {
		a.consumer.RegisterHandler(a.ingest)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", xlogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", xlogger.String("topic", a.ingest.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", xlogger.Error(err))
		return err
	}
	a.log.Info("http server started", xlogger.Int("port", a.cfg.Server.Port))

	// The poller exercises the public endpoints exactly as an external client
	// would, and feeds every applied view into the WebSocket hub.
	base := fmt.Sprintf("http://127.0.0.1:%d", a.cfg.Server.Port)
	a.poller = poll.New(base,
		poll.WithInterval(a.cfg.Board.PollInterval),
		poll.WithLimit(a.cfg.Board.DefaultLimit),
		poll.WithLogger(a.log),
	)
	a.poller.Start(ctx)

	go func() {
		for view := range a.poller.Updates() {
			a.hub.Broadcast(view)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.poller.Stop()
	a.hub.Close()

	if a.consumer != nil {
		stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := a.consumer.Stop(stopCtx); err != nil {
			a.log.Warn("kafka consumer stop error", xlogger.Error(err))
		}
		cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", xlogger.Error(err))
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", xlogger.Error(err))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.log.Warn("redis close error", xlogger.Error(err))
	}

	a.log.Info("shutdown complete")
	return nil
}
