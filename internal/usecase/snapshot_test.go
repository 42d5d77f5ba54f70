package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SigBoard/internal/domain/models"
	domrepo "SigBoard/internal/domain/repository"
)

func newTestSnapshot(store domrepo.RecordStore) *SnapshotService {
	return NewSnapshotService(newTestReader(store), 10)
}

func TestSnapshotAbsentStatusServesOfflineDefault(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Append(context.Background(), domrepo.ListScans, &models.Scan{Symbol: "PEPE"}))
	svc := newTestSnapshot(store)

	snap := svc.GetSnapshot(context.Background())

	assert.Equal(t, models.StatusOffline, snap.Status.Status)
	assert.NotNil(t, snap.Status.Watchlist, "offline default carries an empty watchlist, not null")
	require.Len(t, snap.RecentScans, 1)
	assert.Equal(t, "PEPE", snap.RecentScans[0].Symbol)

	// The default is served, never persisted.
	assert.Nil(t, store.status)
}

func TestSnapshotComposesBothReads(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SetStatus(context.Background(), &models.BotStatus{
		Status:    models.StatusRunning,
		ScanCount: 5,
	}))
	require.NoError(t, store.Append(context.Background(), domrepo.ListScans, &models.Scan{Symbol: "A"}))
	require.NoError(t, store.Append(context.Background(), domrepo.ListScans, &models.Scan{Symbol: "B"}))
	svc := newTestSnapshot(store)

	snap := svc.GetSnapshot(context.Background())

	assert.Equal(t, models.StatusRunning, snap.Status.Status)
	assert.Equal(t, int64(5), snap.Status.ScanCount)
	require.Len(t, snap.RecentScans, 2)
	assert.Equal(t, "B", snap.RecentScans[0].Symbol)
}

func TestSnapshotFullyDegraded(t *testing.T) {
	store := newFakeStore()
	store.err = domrepo.ErrUnavailable
	svc := newTestSnapshot(store)

	snap := svc.GetSnapshot(context.Background())

	assert.Equal(t, models.StatusOffline, snap.Status.Status)
	assert.Empty(t, snap.RecentScans)
}

func TestSignalsSnapshotCountMatchesSlice(t *testing.T) {
	store := newFakeStore()
	seedSignals(t, store, "AAA", "BBB", "CCC")
	svc := newTestSnapshot(store)

	snap := svc.GetSignalsSnapshot(context.Background(), 2)
	assert.Len(t, snap.Signals, 2)
	assert.Equal(t, 2, snap.Count)

	snap = svc.GetSignalsSnapshot(context.Background(), 50)
	assert.Len(t, snap.Signals, 3)
	assert.Equal(t, 3, snap.Count)
}

func TestSignalsSnapshotEmptyStore(t *testing.T) {
	svc := newTestSnapshot(newFakeStore())

	snap := svc.GetSignalsSnapshot(context.Background(), 20)
	assert.NotNil(t, snap.Signals, "empty board must serialize as [], not null")
	assert.Equal(t, 0, snap.Count)
}
