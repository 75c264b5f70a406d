package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	req := require.New(t)

	req.Equal("0s", FormatDuration(0))
	req.Equal("59s", FormatDuration(59*time.Second))
	req.Equal("1m 0s", FormatDuration(time.Minute))
	req.Equal("1h 1m 1s", FormatDuration(time.Hour+time.Minute+time.Second))
	req.Equal("2h 0m 5s", FormatDuration(2*time.Hour+5*time.Second))
	// Sub-second parts are dropped, negative durations clamp to zero
	req.Equal("1s", FormatDuration(1999*time.Millisecond))
	req.Equal("0s", FormatDuration(-time.Minute))
}
