// Package format holds human-readable formatting helpers for console
// output.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBytes formats a byte count into a human-readable string with 1 decimal place.
// Thresholds: <1KB → B, <1MB → KB, <1GB → MB, <1TB → GB, else TB.
func FormatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)
	switch {
	case bytes < kb:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes < tb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	default:
		return fmt.Sprintf("%.1f TB", float64(bytes)/tb)
	}
}

// FormatHz formats a frequency in hertz, trimming trailing zeros.
// Example: 25.5 → "25.5 Hz", 5120 → "5120 Hz".
func FormatHz(hz float64) string {
	return trimFloat(hz) + " Hz"
}

// FormatSeconds formats a duration in seconds with millisecond resolution.
// Example: 0.8 → "0.800 s".
func FormatSeconds(s float64) string {
	return fmt.Sprintf("%.3f s", s)
}

// FormatVolts formats a voltage with two decimal places.
func FormatVolts(v float64) string {
	return fmt.Sprintf("%.2f V", v)
}

// FormatCelsius formats a temperature with one decimal place.
func FormatCelsius(c float64) string {
	return fmt.Sprintf("%.1f °C", c)
}

// FormatNumber formats an integer with locale-style comma separators.
// Example: 12345678 → "12,345,678".
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		// s starts with "-"; strip it, insert commas, restore sign.
		return "-" + insertCommas(s[1:])
	}
	return insertCommas(s)
}

// trimFloat renders a float without trailing fractional zeros.
func trimFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}

// insertCommas inserts comma separators into a digit string every 3 digits from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
