package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"SigBoard/internal/domain/models"
	domrepo "SigBoard/internal/domain/repository"
)

func TestAppendTrimsToCap(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisRecordStore(db, 100, 50, 2*time.Minute)

	sig := &models.Signal{Symbol: "PEPE", PriceUSD: 0.0000012}
	data, _ := json.Marshal(sig)

	mock.ExpectTxPipeline()
	mock.ExpectLPush(domrepo.ListSignals, data).SetVal(1)
	mock.ExpectLTrim(domrepo.ListSignals, 0, 99).SetVal("OK")
	mock.ExpectTxPipelineExec()

	if err := store.Append(context.Background(), domrepo.ListSignals, sig); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppendScansUsesOwnCap(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisRecordStore(db, 100, 50, 2*time.Minute)

	scan := &models.Scan{Symbol: "WIF"}
	data, _ := json.Marshal(scan)

	mock.ExpectTxPipeline()
	mock.ExpectLPush(domrepo.ListScans, data).SetVal(1)
	mock.ExpectLTrim(domrepo.ListScans, 0, 49).SetVal("OK")
	mock.ExpectTxPipelineExec()

	if err := store.Append(context.Background(), domrepo.ListScans, scan); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRangeBounds(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisRecordStore(db, 100, 50, 2*time.Minute)

	mock.ExpectLRange(domrepo.ListSignals, 0, 19).SetVal([]string{`{"symbol":"A"}`, `{"symbol":"B"}`})

	got, err := store.Range(context.Background(), domrepo.ListSignals, 0, 20)
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if string(got[0]) != `{"symbol":"A"}` {
		t.Fatalf("unexpected first record %s", got[0])
	}
}

func TestRangeZeroCountSkipsBackend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisRecordStore(db, 100, 50, 2*time.Minute)

	// No expectations registered: any command issued would fail the test.
	got, err := store.Range(context.Background(), domrepo.ListSignals, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetStatusAbsentIsNotFound(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisRecordStore(db, 100, 50, 2*time.Minute)

	mock.ExpectGet(domrepo.KeyBotStatus).RedisNil()

	_, err := store.GetStatus(context.Background())
	if !domrepo.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if domrepo.IsUnavailable(err) {
		t.Fatalf("absence must not read as unavailability")
	}
}

func TestGetStatusBackendFailureIsUnavailable(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisRecordStore(db, 100, 50, 2*time.Minute)

	mock.ExpectGet(domrepo.KeyBotStatus).SetErr(context.DeadlineExceeded)

	_, err := store.GetStatus(context.Background())
	if !domrepo.IsUnavailable(err) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if domrepo.IsNotFound(err) {
		t.Fatalf("backend failure must not read as absence")
	}
}

func TestSetStatusCarriesTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisRecordStore(db, 100, 50, 2*time.Minute)

	status := &models.BotStatus{Status: models.StatusRunning, ScanCount: 3}
	data, _ := json.Marshal(status)

	mock.ExpectSet(domrepo.KeyBotStatus, data, 2*time.Minute).SetVal("OK")

	if err := store.SetStatus(context.Background(), status); err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRangeBackendFailureIsUnavailable(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisRecordStore(db, 100, 50, 2*time.Minute)

	mock.ExpectLRange(domrepo.ListScans, 0, 9).SetErr(context.DeadlineExceeded)

	_, err := store.Range(context.Background(), domrepo.ListScans, 0, 10)
	if !domrepo.IsUnavailable(err) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
