package models

import "encoding/json"

// SignalsRequest binds the /signals query string. After binding, an explicit
// limit=0 is indistinguishable from an absent limit: both serve the default.
// Only the typed accessors treat 0 as "no records".
type SignalsRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=0"`
}

// StatusSnapshot is the wire shape of GET /status.
type StatusSnapshot struct {
	Status      BotStatus `json:"status"`
	RecentScans []Scan    `json:"recent_scans"`
}

// SignalsSnapshot is the wire shape of GET /signals.
// Count is always len(Signals), not a stored counter.
type SignalsSnapshot struct {
	Signals []Signal `json:"signals"`
	Count   int      `json:"count"`
}

// IngestEnvelope is the message shape consumed from the records topic.
// TS is an optional producer-side timestamp (RFC3339 or unix seconds) used
// when the record payload itself carries no timestamp.
type IngestEnvelope struct {
	Kind string          `json:"kind"`
	TS   string          `json:"ts,omitempty"`
	Data json.RawMessage `json:"data"`
}
