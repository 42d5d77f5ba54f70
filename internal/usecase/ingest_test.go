package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SigBoard/internal/domain/models"
	domrepo "SigBoard/internal/domain/repository"
	xlogger "SigBoard/pkg/logger"
)

type fakeArchive struct {
	signals []*models.Signal
	err     error
}

func (f *fakeArchive) ArchiveSignal(_ context.Context, sig *models.Signal) error {
	if f.err != nil {
		return f.err
	}
	f.signals = append(f.signals, sig)
	return nil
}

func (f *fakeArchive) Health(context.Context) error { return f.err }

func envelope(t *testing.T, kind string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	b, err := json.Marshal(models.IngestEnvelope{Kind: kind, Data: raw})
	require.NoError(t, err)
	return b
}

func TestIngestSignalAppendsAndArchives(t *testing.T) {
	store := newFakeStore()
	archive := &fakeArchive{}
	h := NewRecordIngestHandler("records", store, archive, nopMetrics{}, xlogger.Nop())

	msg := envelope(t, KindSignal, &models.Signal{Symbol: "PEPE", TotalScore: 87.5})
	require.NoError(t, h.Handle(context.Background(), msg))

	require.Len(t, store.lists[domrepo.ListSignals], 1)
	require.Len(t, archive.signals, 1)
	assert.Equal(t, "PEPE", archive.signals[0].Symbol)
	assert.False(t, archive.signals[0].Timestamp.IsZero(), "missing timestamp is backfilled")
}

func TestIngestScanAppends(t *testing.T) {
	store := newFakeStore()
	h := NewRecordIngestHandler("records", store, nil, nopMetrics{}, xlogger.Nop())

	msg := envelope(t, KindScan, &models.Scan{Symbol: "WIF", IsValidSignal: true})
	require.NoError(t, h.Handle(context.Background(), msg))

	require.Len(t, store.lists[domrepo.ListScans], 1)
	assert.Empty(t, store.lists[domrepo.ListSignals])
}

func TestIngestStatusReplacesScalar(t *testing.T) {
	store := newFakeStore()
	h := NewRecordIngestHandler("records", store, nil, nopMetrics{}, xlogger.Nop())

	msg := envelope(t, KindStatus, &models.BotStatus{Status: models.StatusRunning, ScanCount: 9})
	require.NoError(t, h.Handle(context.Background(), msg))

	var got models.BotStatus
	require.NoError(t, json.Unmarshal(store.status, &got))
	assert.Equal(t, models.StatusRunning, got.Status)
	assert.Equal(t, int64(9), got.ScanCount)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestIngestUnknownKindIsDropped(t *testing.T) {
	store := newFakeStore()
	h := NewRecordIngestHandler("records", store, nil, nopMetrics{}, xlogger.Nop())

	msg := envelope(t, "heartbeat", map[string]string{"x": "y"})
	// Returning nil keeps the consumer from retrying a message it can never apply.
	assert.NoError(t, h.Handle(context.Background(), msg))
	assert.Empty(t, store.lists)
	assert.Nil(t, store.status)
}

func TestIngestBadEnvelopeErrors(t *testing.T) {
	h := NewRecordIngestHandler("records", newFakeStore(), nil, nopMetrics{}, xlogger.Nop())
	assert.Error(t, h.Handle(context.Background(), []byte("{not json")))
}

func TestIngestArchiveFailureDoesNotFailMessage(t *testing.T) {
	store := newFakeStore()
	archive := &fakeArchive{err: errors.New("clickhouse down")}
	h := NewRecordIngestHandler("records", store, archive, nopMetrics{}, xlogger.Nop())

	msg := envelope(t, KindSignal, &models.Signal{Symbol: "PEPE"})
	// The store append succeeded; retrying would duplicate the record.
	assert.NoError(t, h.Handle(context.Background(), msg))
	require.Len(t, store.lists[domrepo.ListSignals], 1)
}

func TestIngestStoreFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.err = domrepo.ErrUnavailable
	h := NewRecordIngestHandler("records", store, nil, nopMetrics{}, xlogger.Nop())

	msg := envelope(t, KindSignal, &models.Signal{Symbol: "PEPE"})
	assert.Error(t, h.Handle(context.Background(), msg))
}
