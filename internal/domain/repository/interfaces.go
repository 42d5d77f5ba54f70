package repository

import (
	"context"
	"errors"

	"SigBoard/internal/domain/models"
)

// Persisted key layout. Preserved for compatibility with existing deployments.
const (
	ListSignals  = "signals"
	ListScans    = "scans"
	KeyBotStatus = "bot_status"
)

// ErrUnavailable is the uniform failure for any backend problem (network,
// auth, timeout). Callers see only this taxonomy, never driver errors.
var ErrUnavailable = errors.New("record store unavailable")

// ErrNotFound marks an absent scalar. Absence is a valid state, not a failure.
var ErrNotFound = errors.New("record not found")

// IsUnavailable reports whether err is a backend availability failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsNotFound reports whether err marks an absent record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// RecordStore holds the two bounded most-recent-first lists and the single
// bot_status scalar. It is the sole owner of persisted state.
type RecordStore interface {
	// Append prepends a record to the named list and trims it to the
	// list's write-time cap. Visible to readers as soon as it returns.
	Append(ctx context.Context, list string, record interface{}) error

	// Range returns up to count raw records starting at offset,
	// most-recent-first. A missing list yields an empty result, not an
	// error. count <= 0 yields an empty result without touching the
	// backend.
	Range(ctx context.Context, list string, offset, count int64) ([][]byte, error)

	// GetStatus returns the raw bot_status record or ErrNotFound.
	GetStatus(ctx context.Context) ([]byte, error)

	// SetStatus atomically replaces bot_status.
	SetStatus(ctx context.Context, record interface{}) error

	// Health pings the backend.
	Health(ctx context.Context) error
}

// SignalArchive keeps an unbounded history of signals beyond the trimmed
// Redis window.
type SignalArchive interface {
	ArchiveSignal(ctx context.Context, sig *models.Signal) error
	Health(ctx context.Context) error
}

// Metrics abstracts the Prometheus recorder.
type Metrics interface {
	RecordStoreOp(op string, seconds float64)
	RecordDegradedRead(source string)
	RecordDecodeError(source string)
	RecordIngest(kind string)
	RecordIngestError(kind string)
	WSClientConnected()
	WSClientDisconnected()
}
