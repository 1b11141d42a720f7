package utils

import (
	"fmt"
	"strings"
	"time"
)

// ISO8601Millis is the wire layout for every timestamp the logger uploads:
// UTC, millisecond precision, trailing "Z".
const ISO8601Millis = "2006-01-02T15:04:05.000Z07:00"

// Clock abstracts time so the uploader and collector stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FormatISO8601 renders t in UTC using ISO8601Millis.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(ISO8601Millis)
}

// ParseISO8601 accepts RFC 3339 timestamps with or without fractional
// seconds. Stray spaces are removed first; some clients insert one before the
// zone offset.
func ParseISO8601(s string) (time.Time, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	t, err := time.Parse(time.RFC3339Nano, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// UnixMillis returns t as fractional milliseconds since the Unix epoch.
func UnixMillis(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Millisecond)
}

// NanoToTime converts a nanosecond Unix timestamp back to UTC time.Time.
func NanoToTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}
