package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"message-lab/errors"
)

// ISO8601Pattern is the wire layout for string timestamps: UTC, second
// precision, no zone suffix, no fractional seconds.
const ISO8601Pattern = "2006-01-02T15:04:05"

// Epoch milliseconds outside years 1 through 9999 are rejected.
var (
	minEpochMillis = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxEpochMillis = time.Date(9999, time.December, 31, 23, 59, 59, 999_000_000, time.UTC).UnixMilli()
)

// TimestampCodec converts between a raw JSON timestamp value and an instant.
// Decode returns ErrInvalidTimestamp for malformed input, it never panics.
// Encode is total.
type TimestampCodec interface {
	Decode(raw json.RawMessage) (time.Time, error)
	Encode(t time.Time) json.RawMessage
}

// EpochMillisCodec reads and writes integer milliseconds since the Unix
// epoch.
type EpochMillisCodec struct{}

func (EpochMillisCodec) Decode(raw json.RawMessage) (time.Time, error) {
	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: not an integer: %s", errors.ErrInvalidTimestamp, raw)
	}
	if millis < minEpochMillis || millis > maxEpochMillis {
		return time.Time{}, fmt.Errorf("%w: %d outside supported range", errors.ErrInvalidTimestamp, millis)
	}
	return time.UnixMilli(millis).UTC(), nil
}

func (EpochMillisCodec) Encode(t time.Time) json.RawMessage {
	return json.RawMessage(strconv.FormatInt(t.UnixMilli(), 10))
}

// ISO8601Codec reads and writes quoted strings shaped like ISO8601Pattern.
type ISO8601Codec struct{}

func (ISO8601Codec) Decode(raw json.RawMessage) (time.Time, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return time.Time{}, fmt.Errorf("%w: not a string: %s", errors.ErrInvalidTimestamp, raw)
	}
	t, err := time.Parse(ISO8601Pattern, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", errors.ErrInvalidTimestamp, value, ISO8601Pattern)
	}
	return t, nil
}

func (ISO8601Codec) Encode(t time.Time) json.RawMessage {
	return json.RawMessage(strconv.Quote(t.UTC().Format(ISO8601Pattern)))
}

// CodecFromString resolves a configured format name to its codec.
// Unknown names fall back to ISO 8601.
func CodecFromString(format string) TimestampCodec {
	switch strings.ToLower(format) {
	case "millis":
		return EpochMillisCodec{}
	case "iso8601":
		return ISO8601Codec{}
	default:
		return ISO8601Codec{}
	}
}
