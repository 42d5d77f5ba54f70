package usecase

import (
	"context"
	"sync"

	"SigBoard/internal/domain/models"
)

// SnapshotService composes the independent store reads into the two
// client-facing response shapes. It holds no state of its own; every call
// re-reads through the Reader.
type SnapshotService struct {
	reader     *Reader
	scansLimit int
}

func NewSnapshotService(reader *Reader, scansLimit int) *SnapshotService {
	if scansLimit <= 0 {
		scansLimit = DefaultLimit
	}
	return &SnapshotService{reader: reader, scansLimit: scansLimit}
}

// GetSnapshot serves the /status shape. The status and scans reads are
// independent and issued concurrently; a torn read (status from T1, scans
// from T2) is accepted. An absent status is replaced by the offline default,
// which is never written back to the store; scans still populate on their own.
func (s *SnapshotService) GetSnapshot(ctx context.Context) models.StatusSnapshot {
	var (
		wg     sync.WaitGroup
		status *models.BotStatus
		scans  []models.Scan
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		status = s.reader.GetBotStatus(ctx)
	}()
	go func() {
		defer wg.Done()
		scans = s.reader.GetScans(ctx, s.scansLimit)
	}()
	wg.Wait()

	snap := models.StatusSnapshot{RecentScans: scans}
	if status != nil {
		snap.Status = *status
	} else {
		snap.Status = models.OfflineStatus()
	}
	return snap
}

// GetSignalsSnapshot serves the /signals shape. Count is derived from the
// returned slice, never from a stored counter.
func (s *SnapshotService) GetSignalsSnapshot(ctx context.Context, limit int) models.SignalsSnapshot {
	signals := s.reader.GetSignals(ctx, limit)
	return models.SignalsSnapshot{
		Signals: signals,
		Count:   len(signals),
	}
}
