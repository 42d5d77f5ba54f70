package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"SigBoard/internal/domain/models"
	domrepo "SigBoard/internal/domain/repository"
	pkgkafka "SigBoard/pkg/kafka"
	xlogger "SigBoard/pkg/logger"
	"SigBoard/pkg/util"
)

// Envelope kinds accepted from the records topic.
const (
	KindSignal = "signal"
	KindScan   = "scan"
	KindStatus = "status"
)

// RecordIngestHandler consumes producer records from Kafka and applies them
// to the record store. Signals are additionally archived to ClickHouse when
// an archive is configured; an archive failure is logged but never fails the
// ingest, since the store append already succeeded and a retry would
// duplicate it.
type RecordIngestHandler struct {
	topic   string
	store   domrepo.RecordStore
	archive domrepo.SignalArchive
	metrics domrepo.Metrics
	logger  *xlogger.Logger
}

func NewRecordIngestHandler(
	topic string,
	store domrepo.RecordStore,
	archive domrepo.SignalArchive,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
) *RecordIngestHandler {
	return &RecordIngestHandler{
		topic:   topic,
		store:   store,
		archive: archive,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *RecordIngestHandler) Topic() string { return h.topic }

func (h *RecordIngestHandler) Handle(ctx context.Context, b []byte) error {
	var env models.IngestEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		h.metrics.RecordIngestError("envelope")
		return fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Kind {
	case KindSignal:
		return h.applySignal(ctx, env)
	case KindScan:
		return h.applyScan(ctx, env)
	case KindStatus:
		return h.applyStatus(ctx, env)
	default:
		// Unknown kinds are dropped, not retried.
		h.metrics.RecordIngestError("unknown_kind")
		h.logger.Warn("dropping record with unknown kind", xlogger.String("kind", env.Kind))
		return nil
	}
}

func (h *RecordIngestHandler) applySignal(ctx context.Context, env models.IngestEnvelope) error {
	var sig models.Signal
	if err := json.Unmarshal(env.Data, &sig); err != nil {
		h.metrics.RecordIngestError(KindSignal)
		return fmt.Errorf("decode signal: %w", err)
	}
	if sig.Timestamp.IsZero() {
		sig.Timestamp = models.NewTime(util.ParseTimeDefault(env.TS, time.Now().UTC()))
	}

	if err := h.store.Append(ctx, domrepo.ListSignals, &sig); err != nil {
		h.metrics.RecordIngestError(KindSignal)
		return err
	}
	h.metrics.RecordIngest(KindSignal)

	if h.archive != nil {
		if err := h.archive.ArchiveSignal(ctx, &sig); err != nil {
			h.metrics.RecordIngestError("archive")
			h.logger.Error("signal archive write failed",
				xlogger.String("symbol", sig.Symbol),
				xlogger.Error(err),
			)
		}
	}
	return nil
}

func (h *RecordIngestHandler) applyScan(ctx context.Context, env models.IngestEnvelope) error {
	var scan models.Scan
	if err := json.Unmarshal(env.Data, &scan); err != nil {
		h.metrics.RecordIngestError(KindScan)
		return fmt.Errorf("decode scan: %w", err)
	}
	if scan.Timestamp.IsZero() {
		scan.Timestamp = models.NewTime(util.ParseTimeDefault(env.TS, time.Now().UTC()))
	}

	if err := h.store.Append(ctx, domrepo.ListScans, &scan); err != nil {
		h.metrics.RecordIngestError(KindScan)
		return err
	}
	h.metrics.RecordIngest(KindScan)
	return nil
}

func (h *RecordIngestHandler) applyStatus(ctx context.Context, env models.IngestEnvelope) error {
	var status models.BotStatus
	if err := json.Unmarshal(env.Data, &status); err != nil {
		h.metrics.RecordIngestError(KindStatus)
		return fmt.Errorf("decode status: %w", err)
	}
	if status.UpdatedAt.IsZero() {
		status.UpdatedAt = models.NewTime(util.ParseTimeDefault(env.TS, time.Now().UTC()))
	}

	if err := h.store.SetStatus(ctx, &status); err != nil {
		h.metrics.RecordIngestError(KindStatus)
		return err
	}
	h.metrics.RecordIngest(KindStatus)
	return nil
}

var _ pkgkafka.MessageHandler = (*RecordIngestHandler)(nil)
