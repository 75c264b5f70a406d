package domain

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders a duration as "1h 1m 1s".
// Hours appear when non-zero, minutes whenever the duration reaches a minute,
// seconds always. Sub-second parts are truncated.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	minutes := seconds / 60
	hours := minutes / 60

	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes%60))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds%60))
	return strings.Join(parts, " ")
}
