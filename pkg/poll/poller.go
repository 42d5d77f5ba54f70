package poll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SigBoard/internal/domain/models"
	xhttp "SigBoard/pkg/http"
	xlogger "SigBoard/pkg/logger"
)

// View is the client-side copy of the board state. It is replaced as a whole
// on each successful fetch cycle and never partially mutated.
type View struct {
	Status      models.BotStatus `json:"status"`
	RecentScans []models.Scan    `json:"recent_scans"`
	Signals     []models.Signal  `json:"signals"`
	FetchedAt   time.Time        `json:"fetched_at"`
}

// Option configures Poller.
type Option func(*Poller)

// Poller periodically re-pulls the /status and /signals snapshots and swaps
// its local view atomically. A failed cycle leaves the previous view intact;
// after Stop returns, no in-flight cycle can mutate the view.
type Poller struct {
	base     string
	limit    int
	interval time.Duration
	client   *xhttp.Client
	logger   *xlogger.Logger

	mu      sync.RWMutex
	view    View
	hasView bool
	stopped bool

	updates  chan View
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a poller against the given base URL (scheme://host:port).
func New(base string, opts ...Option) *Poller {
	p := &Poller{
		base:     base,
		limit:    20,
		interval: 30 * time.Second,
		logger:   xlogger.Nop(),
		updates:  make(chan View, 1),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		p.client = xhttp.NewClient(xhttp.WithTimeout(10 * time.Second))
	}
	return p
}

// WithInterval sets the poll period.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLimit sets the signals fetch limit.
func WithLimit(n int) Option {
	return func(p *Poller) {
		if n > 0 {
			p.limit = n
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *xhttp.Client) Option {
	return func(p *Poller) {
		p.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *xlogger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// Start fetches immediately, then re-fetches on the configured period until
// ctx is canceled or Stop is called. It does not block.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	go func() {
		defer close(p.done)

		p.fetchCycle(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.fetchCycle(ctx)
			}
		}
	}()
}

// Stop tears the poller down. After it returns, the view will not change
// again: in-flight fetch results are discarded at the apply boundary.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()

		if p.cancel != nil {
			p.cancel()
			<-p.done
		}
		close(p.updates)
	})
}

// Snapshot returns the current view and whether any fetch has succeeded yet.
func (p *Poller) Snapshot() (View, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view, p.hasView
}

// Updates emits each freshly applied view. The channel has a depth of one
// and drops stale entries, so a slow consumer only ever lags by one cycle.
func (p *Poller) Updates() <-chan View {
	return p.updates
}

// fetchCycle pulls both snapshots; only when every fetch succeeds is the
// whole view replaced. Any failure retains the previous view unchanged.
func (p *Poller) fetchCycle(ctx context.Context) {
	var (
		wg      sync.WaitGroup
		status  models.StatusSnapshot
		signals models.SignalsSnapshot
		errs    [2]error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = p.client.GetJSON(ctx, p.base+"/status", &status)
	}()
	go func() {
		defer wg.Done()
		url := fmt.Sprintf("%s/signals?limit=%d", p.base, p.limit)
		errs[1] = p.client.GetJSON(ctx, url, &signals)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			p.logger.Warn("poll cycle failed, keeping previous view", xlogger.Error(err))
			return
		}
	}

	p.apply(View{
		Status:      status.Status,
		RecentScans: status.RecentScans,
		Signals:     signals.Signals,
		FetchedAt:   time.Now(),
	})
}

func (p *Poller) apply(v View) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.view = v
	p.hasView = true
	p.mu.Unlock()

	// Drop the stale pending update, if any, then publish the fresh one.
	select {
	case <-p.updates:
	default:
	}
	select {
	case p.updates <- v:
	default:
	}
}
