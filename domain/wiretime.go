package domain

import (
	"fmt"
	"strconv"
	"time"
)

// WireTime is a time.Time that crosses the wire as an ISO-8601 string in UTC
// without fractional seconds, e.g. "2024-05-01T00:00:00Z". The server emits
// exactly that form; decoding additionally accepts a numeric UTC offset in
// place of "Z", normalizing to the same absolute instant.
type WireTime struct {
	time.Time
}

// NewWireTime wraps t, truncated to whole seconds to match the wire format.
func NewWireTime(t time.Time) WireTime {
	return WireTime{t.Truncate(time.Second)}
}

// MarshalJSON renders the instant in UTC without fractional seconds.
func (t WireTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.UTC().Truncate(time.Second).Format(time.RFC3339))), nil
}

// UnmarshalJSON parses an RFC 3339 timestamp. Sub-second precision, if the
// server ever sends it, is truncated rather than rejected.
func (t *WireTime) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("wire time: not a JSON string: %s", b)
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("wire time: %w", err)
	}
	t.Time = parsed.Truncate(time.Second)
	return nil
}

// Equal reports whether two wire times represent the same instant.
func (t WireTime) Equal(other WireTime) bool {
	return t.Time.Equal(other.Time)
}
