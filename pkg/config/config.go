package config

import "time"

// Limits of PollInterval.
const (
	MinPollInterval = 50 * time.Millisecond
	MaxPollInterval = time.Minute
)

type Config interface {
	// PollInterval is how often the daemon re-reads the posture for events.
	PollInterval() time.Duration
	WatchPosture() bool
	AllowNonRootAccess() bool

	SetPollInterval(time.Duration)
	SetWatchPosture(bool)
	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
