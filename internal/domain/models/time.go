package models

import (
	"fmt"
	"strings"
	"time"

	"SigBoard/pkg/util"
)

// Time decodes every timestamp form found in persisted records: RFC 3339,
// the naive ISO-8601 strings the scanner writes (no UTC offset, taken as
// UTC), and unix seconds. Encoding is plain RFC 3339 via the embedded
// time.Time.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time { return Time{Time: t} }

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, ok := util.ParseTime(s)
	if !ok {
		return fmt.Errorf("unrecognized time %q", s)
	}
	t.Time = parsed
	return nil
}
