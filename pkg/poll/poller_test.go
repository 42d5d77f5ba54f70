package poll

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"SigBoard/internal/domain/models"
)

func newBoardServer(t *testing.T, fail *atomic.Bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		if fail != nil && fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(models.StatusSnapshot{
			Status:      models.BotStatus{Status: models.StatusRunning, ScanCount: 7},
			RecentScans: []models.Scan{{Symbol: "PEPE"}},
		})
	})
	mux.HandleFunc("/signals", func(w http.ResponseWriter, r *http.Request) {
		if fail != nil && fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(models.SignalsSnapshot{
			Signals: []models.Signal{{Symbol: "WIF"}},
			Count:   1,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func waitForView(t *testing.T, p *Poller) View {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if v, ok := p.Snapshot(); ok {
			return v
		}
		select {
		case <-deadline:
			t.Fatal("no view applied before deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPollerFetchesImmediately(t *testing.T) {
	srv := newBoardServer(t, nil)
	p := New(srv.URL, WithInterval(time.Hour), WithLimit(5))
	p.Start(context.Background())
	defer p.Stop()

	v := waitForView(t, p)
	if v.Status.Status != models.StatusRunning {
		t.Fatalf("unexpected status %q", v.Status.Status)
	}
	if len(v.Signals) != 1 || v.Signals[0].Symbol != "WIF" {
		t.Fatalf("unexpected signals %+v", v.Signals)
	}
	if len(v.RecentScans) != 1 {
		t.Fatalf("unexpected scans %+v", v.RecentScans)
	}
	if v.FetchedAt.IsZero() {
		t.Fatal("FetchedAt not set")
	}
}

func TestPollerKeepsPreviousViewOnFailure(t *testing.T) {
	var fail atomic.Bool
	srv := newBoardServer(t, &fail)
	p := New(srv.URL, WithInterval(10*time.Millisecond))
	p.Start(context.Background())
	defer p.Stop()

	first := waitForView(t, p)

	fail.Store(true)
	time.Sleep(50 * time.Millisecond)

	v, ok := p.Snapshot()
	if !ok {
		t.Fatal("view lost after failed cycle")
	}
	if v.FetchedAt != first.FetchedAt {
		// A later successful cycle may have landed before fail flipped;
		// either way the view must still be the last good one.
		if v.Status.Status != models.StatusRunning {
			t.Fatalf("view corrupted after failure: %+v", v)
		}
	}
}

func TestPollerNoViewBeforeFirstSuccess(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := newBoardServer(t, &fail)
	p := New(srv.URL, WithInterval(time.Hour))
	p.Start(context.Background())
	defer p.Stop()

	time.Sleep(30 * time.Millisecond)
	if _, ok := p.Snapshot(); ok {
		t.Fatal("snapshot reported a view before any fetch succeeded")
	}
}

func TestPollerStopFreezesView(t *testing.T) {
	srv := newBoardServer(t, nil)
	p := New(srv.URL, WithInterval(5*time.Millisecond))
	p.Start(context.Background())

	waitForView(t, p)
	p.Stop()

	v1, _ := p.Snapshot()
	time.Sleep(30 * time.Millisecond)
	v2, _ := p.Snapshot()
	if v1.FetchedAt != v2.FetchedAt {
		t.Fatal("view changed after Stop")
	}
}

func TestPollerUpdatesChannel(t *testing.T) {
	srv := newBoardServer(t, nil)
	p := New(srv.URL, WithInterval(time.Hour))
	p.Start(context.Background())
	defer p.Stop()

	select {
	case v := <-p.Updates():
		if v.Status.Status != models.StatusRunning {
			t.Fatalf("unexpected update %+v", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no update published")
	}
}
