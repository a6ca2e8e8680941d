// Package config loads and validates lockin's configuration.
package config

import (
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		Session       SessionConfig
		Notifications NotificationConfig
		Display       DisplayConfig
		Sound         SoundConfig
		Posture       PostureConfig
		System        SystemConfig
	}

	// SessionConfig holds session-related settings
	SessionConfig struct {
		// Duration is the default session length when none is given on
		// the command line.
		Duration time.Duration
		// Cmd is an optional command executed after each session ends.
		Cmd string
	}

	// NotificationConfig holds desktop notification settings
	NotificationConfig struct {
		SessionSound     string
		DistractionSound string
		Enabled          bool
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool
		TwentyFourHour bool
	}

	// SoundConfig holds ambient sound settings
	SoundConfig struct {
		Ambient string
	}

	// PostureConfig holds posture sensor settings
	PostureConfig struct {
		Cmd     string
		Timeout time.Duration
	}

	// SystemConfig holds system-related settings
	SystemConfig struct {
		ConfigPath string
		DBPath     string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.1"

// SoundOff disables a sound option when given on the command line.
const SoundOff = "off"

// New constructs a Config by applying the given options to the defaults.
func New(opts ...Option) (*Config, error) {
	c := defaults()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func defaults() *Config {
	return &Config{
		Session: SessionConfig{
			Duration: 25 * time.Minute,
		},
		Notifications: NotificationConfig{
			Enabled:      true,
			SessionSound: "bell",
		},
		Display: DisplayConfig{
			DarkTheme: true,
		},
		Posture: PostureConfig{
			Timeout: 2 * time.Second,
		},
	}
}
