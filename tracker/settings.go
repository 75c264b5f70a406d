// Package tracker owns the per-participant state machines: away detection with
// delayed relocation, and message-burst detection with escalation to a suspension.
//
// Nothing in this package locks. Every exported method must be called from a
// single execution context (see runtime/workers.EventLoop), and the clock
// handed to NewEngine must deliver its callbacks on that same context.
package tracker

import (
	"afk-sentinel/domain"
	"strings"
	"time"
)

const (
	DefaultAwayLabelPrefix = "[AFK]"
	DefaultCommandTimeout  = 10 * time.Second
	SuspensionReason       = "Automated timeout for spamming"
)

type Settings struct {
	HoldingLocationID     domain.LocationID
	NotificationChannelID domain.ChannelID
	RelocationDelay       time.Duration
	RateWindow            time.Duration
	WarnThreshold         int
	TimeoutThreshold      int
	WarnCooldown          time.Duration
	SuspensionDuration    time.Duration
	ExemptRoles           []string
	AwayLabelPrefix       string
	// CommandTimeout bounds platform calls made from timer callbacks,
	// which have no caller context.
	CommandTimeout time.Duration
}

func (s Settings) labelPrefix() string {
	if s.AwayLabelPrefix == "" {
		return DefaultAwayLabelPrefix
	}
	return s.AwayLabelPrefix
}

func (s Settings) commandTimeout() time.Duration {
	if s.CommandTimeout <= 0 {
		return DefaultCommandTimeout
	}
	return s.CommandTimeout
}

// AwayLabel is the label shown while away. A name that already carries the
// prefix is returned unchanged.
func (s Settings) AwayLabel(name string) (string, bool) {
	prefix := s.labelPrefix()
	if strings.HasPrefix(name, prefix) {
		return name, false
	}
	return prefix + " " + name, true
}
