package di

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domrepo "SigBoard/internal/domain/repository"
	"SigBoard/internal/handler/api"
	internalrepo "SigBoard/internal/repository"
	"SigBoard/internal/usecase"
	pkgch "SigBoard/pkg/clickhouse"
	"SigBoard/pkg/config"
	xhttp "SigBoard/pkg/http"
	pkgkafka "SigBoard/pkg/kafka"
	xlogger "SigBoard/pkg/logger"
	"SigBoard/pkg/metrics"
	pkgredis "SigBoard/pkg/redis"
	"SigBoard/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRedisClient creates the Redis client.
func ProvideRedisClient(cfg *config.Config) (*goredis.Client, error) {
	client, err := pkgredis.NewClient(
		pkgredis.WithAddr(cfg.Redis.Addr),
		pkgredis.WithPassword(cfg.Redis.Password),
		pkgredis.WithDB(cfg.Redis.DB),
		pkgredis.WithPool(cfg.Redis.PoolSize, cfg.Redis.MinIdleConns, 0),
		pkgredis.WithDialTimeout(cfg.Redis.DialTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("redis client: %w", err)
	}
	return client, nil
}

// ProvideRecordStore creates the Redis-backed record store.
func ProvideRecordStore(client *goredis.Client, cfg *config.Config) domrepo.RecordStore {
	return internalrepo.NewRedisRecordStore(client,
		int64(cfg.Board.SignalsCap),
		int64(cfg.Board.ScansCap),
		cfg.Board.StatusTTL,
	)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates the ClickHouse client and applies the
// archive schema. Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.ArchiveSchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideArchive creates the signal archive. Returns nil when ClickHouse is
// not available; ingest treats a nil archive as "archival disabled".
func ProvideArchive(chClient *pkgch.Client) domrepo.SignalArchive {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseArchive(chClient.DB(), "sigboard.signals_archive")
}

// ProvideReader creates the typed read boundary.
func ProvideReader(store domrepo.RecordStore, log *xlogger.Logger, m domrepo.Metrics) *usecase.Reader {
	return usecase.NewReader(store, log, m)
}

// ProvideSnapshotService creates the snapshot composer.
func ProvideSnapshotService(reader *usecase.Reader, cfg *config.Config) *usecase.SnapshotService {
	return usecase.NewSnapshotService(reader, cfg.Board.DefaultLimit)
}

// ProvideIngestHandler creates the Kafka ingest handler. Returns nil when no
// topic is configured.
func ProvideIngestHandler(
	cfg *config.Config,
	store domrepo.RecordStore,
	archive domrepo.SignalArchive,
	m domrepo.Metrics,
	log *xlogger.Logger,
) pkgkafka.MessageHandler {
	if cfg.Kafka.Topic == "" {
		return nil
	}
	return usecase.NewRecordIngestHandler(cfg.Kafka.Topic, store, archive, m, log)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML. Returns
// nil when no topic is configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Kafka.Topic == "" {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideWSHub creates the WebSocket broadcast hub.
func ProvideWSHub(log *xlogger.Logger, m domrepo.Metrics) *api.WSHub {
	return api.NewWSHub(log, m)
}

// ProvideBoardHandler creates the HTTP handler for the board surface.
func ProvideBoardHandler(
	log *xlogger.Logger,
	snap *usecase.SnapshotService,
	store domrepo.RecordStore,
	hub *api.WSHub,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewBoardHandler(log, snap, store, hub, cfg.Board.DefaultLimit, cfg.Board.LimitCap)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *xlogger.Logger,
	handler xhttp.Handler,
	hub *api.WSHub,
	consumer *pkgkafka.Consumer,
	ingest pkgkafka.MessageHandler,
	rdb *goredis.Client,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, log, handler, hub, consumer, ingest, rdb, chClient)
}
