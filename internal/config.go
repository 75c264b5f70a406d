package internal

import (
	"afk-sentinel/domain"
	"afk-sentinel/errors"
	"afk-sentinel/tracker"
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	MemoryBackend = "memory"
	BadgerBackend = "badger"
)

// DefaultExemptRoles applies when EXEMPT_ROLES is empty.
var DefaultExemptRoles = []string{"Moderator", "Admin"}

type Config struct {
	LogLevel              string        `env:"LOG_LEVEL,default=INFO"`
	HoldingLocationID     string        `env:"HOLDING_LOCATION_ID,required=true" validate:"required"`
	NotificationChannelID string        `env:"NOTIFICATION_CHANNEL_ID"`
	RelocationDelay       time.Duration `env:"RELOCATION_DELAY,default=1m" validate:"gt=0"`
	RateWindow            time.Duration `env:"RATE_WINDOW,default=10s" validate:"gt=0"`
	WarnThreshold         int           `env:"WARN_THRESHOLD,default=5" validate:"gte=1"`
	TimeoutThreshold      int           `env:"TIMEOUT_THRESHOLD,default=7" validate:"gtfield=WarnThreshold"`
	WarnCooldown          time.Duration `env:"WARN_COOLDOWN,default=30s" validate:"gte=0"`
	SuspensionDuration    time.Duration `env:"SUSPENSION_DURATION,default=2m" validate:"gt=0"`
	ExemptRoles           string        `env:"EXEMPT_ROLES"`
	AwayLabelPrefix       string        `env:"AWAY_LABEL_PREFIX,default=[AFK]"`
	CommandTimeout        time.Duration `env:"COMMAND_TIMEOUT,default=10s" validate:"gt=0"`
	SweepInterval         time.Duration `env:"SWEEP_INTERVAL,default=60s" validate:"gte=0"`
	HeartbeatInterval     time.Duration `env:"HEARTBEAT_INTERVAL,default=5m" validate:"gte=0"`
	StoreBackend          string        `env:"STORE_BACKEND,default=memory"`
	BadgerFilepath        string        `env:"BADGER_FILEPATH"`
	EventBufferSize       int           `env:"EVENT_BUFFER_SIZE,default=256" validate:"gte=0"`
	RestartInterval       time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=3000" validate:"gte=0,lte=65535"`
	EventsFile            string        `env:"EVENTS_FILE"`
	CommandsFile          string        `env:"COMMANDS_FILE"`
	ProtectedParticipants string        `env:"PROTECTED_PARTICIPANTS"`
	CanSuspend            bool          `env:"CAN_SUSPEND,default=true"`
}

// LoadConfig reads the config from the environment and validates it.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the ranges and the cross-field rules of the config.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.StoreBackend != MemoryBackend && c.StoreBackend != BadgerBackend {
		return fmt.Errorf("%w: %q", errors.ErrInvalidStoreBackend, c.StoreBackend)
	}
	return nil
}

// Settings converts the config for the trackers.
func (c Config) Settings() tracker.Settings {
	return tracker.Settings{
		HoldingLocationID:     domain.LocationID(c.HoldingLocationID),
		NotificationChannelID: domain.ChannelID(c.NotificationChannelID),
		RelocationDelay:       c.RelocationDelay,
		RateWindow:            c.RateWindow,
		WarnThreshold:         c.WarnThreshold,
		TimeoutThreshold:      c.TimeoutThreshold,
		WarnCooldown:          c.WarnCooldown,
		SuspensionDuration:    c.SuspensionDuration,
		ExemptRoles:           c.exemptRoles(),
		AwayLabelPrefix:       c.AwayLabelPrefix,
		CommandTimeout:        c.CommandTimeout,
	}
}

func (c Config) exemptRoles() []string {
	roles := ParseList(c.ExemptRoles)
	if len(roles) == 0 {
		return DefaultExemptRoles
	}
	return roles
}

func (c Config) Protected() []domain.ParticipantID {
	return lo.Map(ParseList(c.ProtectedParticipants), func(id string, _ int) domain.ParticipantID {
		return domain.ParticipantID(id)
	})
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ParseList splits a comma separated value, dropping blanks and duplicates.
func ParseList(raw string) []string {
	items := lo.Map(strings.Split(raw, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return lo.Uniq(lo.Compact(items))
}
