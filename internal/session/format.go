package session

import (
	"fmt"
	"strings"
	"time"
)

// Normalize strips every non-decimal character from raw and truncates the
// result to at most n digits.
func Normalize(raw string, n int) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() >= n {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatRows groups digits into rows of width characters joined by newlines.
// A width <= 0 leaves the digits on a single line.
func FormatRows(digits string, width int) string {
	if width <= 0 || len(digits) <= width {
		return digits
	}
	rows := make([]string, 0, len(digits)/width+1)
	for i := 0; i < len(digits); i += width {
		end := i + width
		if end > len(digits) {
			end = len(digits)
		}
		rows = append(rows, digits[i:end])
	}
	return strings.Join(rows, "\n")
}

// FormatElapsed renders d as mm:ss.hh, truncated to hundredths of a second.
// Negative durations render as zero.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalHundredths := int64(d / (10 * time.Millisecond))
	hundredths := totalHundredths % 100
	totalSeconds := totalHundredths / 100
	seconds := totalSeconds % 60
	minutes := totalSeconds / 60
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, hundredths)
}
