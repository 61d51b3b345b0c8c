// Package timefmt converts between ISO-8601 text and epoch seconds.
//
// The T8 API overloads timestamp 0: as a query parameter it means "most
// recent item", while epoch 0 is also a legitimate instant
// (1970-01-01T00:00:00Z). This package keeps both readings apart: the
// zero-filtering convention of FormatMany applies to listing display only,
// never to storage or comparison.
package timefmt

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Parse converts ISO-8601 text to epoch seconds. It accepts an explicit
// offset or the Z suffix, and bare date-times are taken as UTC.
func Parse(text string) (int64, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return ts.Unix(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, text)
}

// Format renders epoch seconds as ISO-8601 UTC text. Total for any input.
func Format(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02T15:04:05Z07:00")
}

// FormatMany formats a sequence of epoch timestamps, dropping any element
// equal to exactly 0 (the "no snapshot / no reading" sentinel) and
// preserving the relative order of the rest.
func FormatMany(epochs []int64) []string {
	out := make([]string, 0, len(epochs))
	for _, t := range epochs {
		if t == 0 {
			continue
		}
		out = append(out, Format(t))
	}
	return out
}
