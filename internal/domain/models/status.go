package models

// Bot status values.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
	StatusOffline = "offline"
)

// BotStatus is the single mutable health snapshot of the scanner process.
// Each write fully replaces the previous value.
type BotStatus struct {
	Status        string   `json:"status"`
	ScanCount     int64    `json:"scan_count"`
	SignalsSent   int64    `json:"signals_sent"`
	ErrorsCount   int64    `json:"errors_count"`
	LastScan      *Time    `json:"last_scan"`
	Watchlist     []string `json:"watchlist"`
	WatchlistSize int      `json:"watchlist_size"`
	UpdatedAt     Time     `json:"updated_at"`
}

// OfflineStatus returns the default status served when bot_status is absent
// or unreadable. It is response-only and is never written back to the store.
func OfflineStatus() BotStatus {
	return BotStatus{
		Status:    StatusOffline,
		Watchlist: []string{},
	}
}
