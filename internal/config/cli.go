package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/lockin/engine"
	"github.com/ayoisaiah/lockin/internal/pathutil"
)

// Timer builds the effective configuration for a timer run: values from the
// config file on disk, overridden by any command-line flags.
func Timer(ctx *cli.Context) (*Config, error) {
	return New(
		WithViperConfig(pathutil.ConfigFilePath()),
		withCliFlags(ctx),
	)
}

// withCliFlags overrides file-based settings with command-line flags.
func withCliFlags(ctx *cli.Context) Option {
	return func(c *Config) error {
		c.System.DBPath = pathutil.DBFilePath()

		if ctx.String("minutes") != "" {
			dur, err := ParseMinutes(ctx.String("minutes"))
			if err != nil {
				return err
			}

			c.Session.Duration = dur
		}

		if ctx.Bool("unbounded") {
			c.Session.Duration = engine.Unbounded
		}

		if ctx.String("session-cmd") != "" {
			c.Session.Cmd = ctx.String("session-cmd")
		}

		if ctx.String("sound") != "" {
			c.Sound.Ambient = ctx.String("sound")
			if c.Sound.Ambient == SoundOff {
				c.Sound.Ambient = ""
			}
		}

		if ctx.String("session-sound") != "" {
			c.Notifications.SessionSound = ctx.String("session-sound")
			if c.Notifications.SessionSound == SoundOff {
				c.Notifications.SessionSound = ""
			}
		}

		if ctx.String("distraction-sound") != "" {
			c.Notifications.DistractionSound = ctx.String("distraction-sound")
			if c.Notifications.DistractionSound == SoundOff {
				c.Notifications.DistractionSound = ""
			}
		}

		if ctx.Bool("disable-notifications") {
			c.Notifications.Enabled = false
		}

		if ctx.String("posture-cmd") != "" {
			c.Posture.Cmd = ctx.String("posture-cmd")
		}

		return nil
	}
}

// ParseMinutes interprets a session length given on the command line. A bare
// positive number is taken as minutes, while "unbounded" yields a session
// that runs until stopped.
func ParseMinutes(s string) (time.Duration, error) {
	if strings.EqualFold(strings.TrimSpace(s), "unbounded") {
		return engine.Unbounded, nil
	}

	mins, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || mins <= 0 {
		return 0, ErrInvalidMinutes.Fmt(s)
	}

	return time.Duration(mins) * time.Minute, nil
}
