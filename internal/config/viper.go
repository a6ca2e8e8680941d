package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keySessionDuration      = "session.duration"
	keySessionCmd           = "session.cmd"
	keyNotificationsEnabled = "notifications.enabled"
	keySessionSound         = "notifications.session_sound"
	keyDistractionSound     = "notifications.distraction_sound"
	keyAmbientSound         = "sound.ambient"
	keyPostureCmd           = "posture.cmd"
	keyPostureTimeout       = "posture.timeout"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
)

// WithViperConfig returns an Option that loads configuration from Viper,
// writing the default config file on first run.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setViperDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			c.System.ConfigPath = configPath
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		c.System.ConfigPath = configPath

		return loadViperConfig(v, c)
	}
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault(keySessionDuration, "25m")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keySessionSound, "bell")
	v.SetDefault(keyDistractionSound, "")
	v.SetDefault(keyAmbientSound, "")
	v.SetDefault(keyPostureCmd, "")
	v.SetDefault(keyPostureTimeout, "2s")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
}

// loadViperConfig copies Viper values into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	dur, err := parseDuration(v.GetString(keySessionDuration))
	if err != nil {
		return errConfigOption.Fmt(keySessionDuration).Wrap(err)
	}

	c.Session.Duration = dur
	c.Session.Cmd = v.GetString(keySessionCmd)

	c.Notifications.Enabled = v.GetBool(keyNotificationsEnabled)
	c.Notifications.SessionSound = v.GetString(keySessionSound)
	c.Notifications.DistractionSound = v.GetString(keyDistractionSound)

	c.Sound.Ambient = v.GetString(keyAmbientSound)

	c.Posture.Cmd = v.GetString(keyPostureCmd)

	timeout, err := parseDuration(v.GetString(keyPostureTimeout))
	if err != nil {
		return errConfigOption.Fmt(keyPostureTimeout).Wrap(err)
	}

	c.Posture.Timeout = timeout

	c.Display.DarkTheme = v.GetBool(keyDarkTheme)
	c.Display.TwentyFourHour = v.GetBool(keyTwentyFourHour)

	return nil
}

// parseDuration accepts Go duration strings, falling back to treating a bare
// number as minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
