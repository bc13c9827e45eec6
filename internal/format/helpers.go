package format

import (
	"fmt"
	"time"
)

// FmtBytes formats a byte count with KB/MB suffix for readability.
func FmtBytes(n int) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fMB", float64(n)/1_000_000.0)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fKB", float64(n)/1000.0)
	}
	return fmt.Sprintf("%dB", n)
}

// FmtDuration formats a duration as "Xm Ys" or "Ys".
func FmtDuration(d time.Duration) string {
	s := int(d.Seconds())
	if s >= 60 {
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	}
	return fmt.Sprintf("%ds", s)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
