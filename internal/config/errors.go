package config

import "github.com/ayoisaiah/lockin/internal/apperr"

// ErrInvalidMinutes rejects a bad --minutes value before any state changes.
var ErrInvalidMinutes = &apperr.Error{
	Message: `invalid session length %q: specify a positive number of minutes, or "unbounded"`,
}

var (
	errConfigOption = &apperr.Error{
		Message: "config option error: %s",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidDuration = &apperr.Error{
		Message: "session duration must be between %v and %v",
	}

	errInvalidTimeout = &apperr.Error{
		Message: "posture timeout must be between %v and %v",
	}
)
