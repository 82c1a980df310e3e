package timeutil

import "time"

const (
	// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision, used in payloads.
	RFC3339Millis = "2006-01-02T15:04:05.000Z"
	// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision, used in logs.
	RFC3339Micros = "2006-01-02T15:04:05.000000Z"
)

// Time marshals to JSON as RFC3339Millis in UTC, e.g. "2024-01-15T10:30:00.000Z".
type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

func NewTime(t time.Time) Time {
	return Time{Time: t}
}

func Now() Time {
	return Time{Time: time.Now()}
}
