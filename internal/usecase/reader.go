package usecase

import (
	"context"
	"encoding/json"
	"time"

	"SigBoard/internal/domain/models"
	domrepo "SigBoard/internal/domain/repository"
	xlogger "SigBoard/pkg/logger"
)

// DefaultLimit is the record count served when the caller does not specify one.
const DefaultLimit = 20

// Reader is the typed read boundary over the record store. It degrades to
// empty/absent on backend failure: a transient read error is logged and
// counted here and never propagates to the serving path. Staleness is
// preferred over unavailability.
type Reader struct {
	store   domrepo.RecordStore
	logger  *xlogger.Logger
	metrics domrepo.Metrics
}

func NewReader(store domrepo.RecordStore, logger *xlogger.Logger, metrics domrepo.Metrics) *Reader {
	return &Reader{store: store, logger: logger, metrics: metrics}
}

// GetSignals returns up to limit signals, most-recent-first.
// limit <= 0 yields an empty slice.
func (r *Reader) GetSignals(ctx context.Context, limit int) []models.Signal {
	out := []models.Signal{}
	for _, raw := range r.rangeList(ctx, domrepo.ListSignals, limit) {
		var sig models.Signal
		if err := json.Unmarshal(raw, &sig); err != nil {
			r.metrics.RecordDecodeError(domrepo.ListSignals)
			r.logger.Warn("skipping undecodable signal record", xlogger.Error(err))
			continue
		}
		out = append(out, sig)
	}
	return out
}

// GetScans returns up to limit scans, most-recent-first.
// limit <= 0 yields an empty slice.
func (r *Reader) GetScans(ctx context.Context, limit int) []models.Scan {
	out := []models.Scan{}
	for _, raw := range r.rangeList(ctx, domrepo.ListScans, limit) {
		var scan models.Scan
		if err := json.Unmarshal(raw, &scan); err != nil {
			r.metrics.RecordDecodeError(domrepo.ListScans)
			r.logger.Warn("skipping undecodable scan record", xlogger.Error(err))
			continue
		}
		out = append(out, scan)
	}
	return out
}

// GetBotStatus returns the current status, or nil when it was never written
// or the backend is unavailable. Absence is a valid state, not an error.
func (r *Reader) GetBotStatus(ctx context.Context) *models.BotStatus {
	start := time.Now()
	raw, err := r.store.GetStatus(ctx)
	r.metrics.RecordStoreOp("get_status", time.Since(start).Seconds())

	if err != nil {
		if domrepo.IsNotFound(err) {
			return nil
		}
		r.metrics.RecordDegradedRead(domrepo.KeyBotStatus)
		r.logger.Error("bot status read degraded to absent", xlogger.Error(err))
		return nil
	}

	var status models.BotStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		r.metrics.RecordDecodeError(domrepo.KeyBotStatus)
		r.logger.Error("bot status record undecodable", xlogger.Error(err))
		return nil
	}
	return &status
}

func (r *Reader) rangeList(ctx context.Context, list string, limit int) [][]byte {
	if limit <= 0 {
		return nil
	}

	start := time.Now()
	raw, err := r.store.Range(ctx, list, 0, int64(limit))
	r.metrics.RecordStoreOp("range_"+list, time.Since(start).Seconds())

	if err != nil {
		r.metrics.RecordDegradedRead(list)
		r.logger.Error("list read degraded to empty",
			xlogger.String("list", list),
			xlogger.Int("limit", limit),
			xlogger.Error(err),
		)
		return nil
	}
	return raw
}
