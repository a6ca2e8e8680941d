package config

import (
	"time"

	"github.com/ayoisaiah/lockin/engine"
)

const (
	minSessionDuration = time.Minute
	maxSessionDuration = 24 * time.Hour

	minPostureTimeout = 100 * time.Millisecond
	maxPostureTimeout = 30 * time.Second
)

func (c *Config) validate() error {
	if c.Session.Duration != engine.Unbounded {
		if c.Session.Duration < minSessionDuration ||
			c.Session.Duration > maxSessionDuration {
			return errInvalidDuration.Fmt(
				minSessionDuration,
				maxSessionDuration,
			)
		}
	}

	if c.Posture.Cmd != "" {
		if c.Posture.Timeout < minPostureTimeout ||
			c.Posture.Timeout > maxPostureTimeout {
			return errInvalidTimeout.Fmt(
				minPostureTimeout,
				maxPostureTimeout,
			)
		}
	}

	return nil
}
