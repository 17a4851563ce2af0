// Package datetime renders calendar datetimes, durations, and
// time-of-day values the way the encoder's options demand: either a
// configurable-precision epoch integer, or a fixed-width ISO-8601
// string.
package datetime

import (
	"fmt"
	"time"

	"tabjson/internal/jsonerr"
)

// Unit is the configured date precision, spec.md's date_unit option.
type Unit int

const (
	UnitSeconds Unit = iota
	UnitMillis
	UnitMicros
	UnitNanos
)

// ParseUnit maps the four accepted option strings to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "s":
		return UnitSeconds, nil
	case "ms":
		return UnitMillis, nil
	case "us":
		return UnitMicros, nil
	case "ns":
		return UnitNanos, nil
	default:
		return 0, fmt.Errorf("%w: unknown date_unit %q", jsonerr.ErrOption, s)
	}
}

func (u Unit) divisor() int64 {
	switch u {
	case UnitSeconds:
		return int64(time.Second)
	case UnitMillis:
		return int64(time.Millisecond)
	case UnitMicros:
		return int64(time.Microsecond)
	default:
		return 1
	}
}

// NullTime is the Go-shaped rendition of the "not-a-time" sentinel:
// Valid=false encodes as JSON null under every mode, in both date
// modes, matching spec.md's NaT invariant.
type NullTime struct {
	Time  time.Time
	Valid bool
}

// ClockTime is a time-of-day-only value (no calendar date), rendered
// purely as an ISO-8601 string regardless of date mode (spec §4.1
// rule 9).
type ClockTime struct {
	Hour, Minute, Second, Nanosecond int
}

// Format renders a time-of-day as "HH:MM:SS.fff".
func (c ClockTime) Format() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", c.Hour, c.Minute, c.Second, c.Nanosecond/1_000_000)
}

// EpochInt truncates t toward zero to the configured unit. Truncation
// toward zero matches spec §4.7's epoch-integer mode exactly.
func EpochInt(t time.Time, unit Unit) int64 {
	nanos := t.UnixNano()
	if unit == UnitNanos {
		return nanos
	}
	return nanos / unit.divisor()
}

// ISO8601 renders t as a fixed-width string at the given unit's
// precision, e.g. "2024-01-02T03:04:05.123" for ms. Seconds use the
// same three-digit fractional layout as ms.
func ISO8601(t time.Time, unit Unit) (string, error) {
	switch unit {
	case UnitSeconds, UnitMillis:
		return t.UTC().Format("2006-01-02T15:04:05.000"), nil
	case UnitMicros:
		return t.UTC().Format("2006-01-02T15:04:05.000000"), nil
	case UnitNanos:
		return t.UTC().Format("2006-01-02T15:04:05.000000000"), nil
	default:
		return "", fmt.Errorf("%w: could not convert datetime value to string", jsonerr.ErrConversion)
	}
}

// DurationNanos rescales a duration (already nanoseconds-native in
// Go, so there is no separate "total_seconds" fallback path to
// implement, unlike the spec's source runtime) to the configured
// unit, truncating toward zero.
func DurationNanos(d time.Duration, unit Unit) int64 {
	nanos := d.Nanoseconds()
	if unit == UnitNanos {
		return nanos
	}
	return nanos / unit.divisor()
}
