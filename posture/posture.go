// Package posture integrates an external posture sensor. The sensor is an
// optional collaborator: it supplies an integer score between 0 and 100 at
// session end, or nothing at all.
package posture

import (
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// DefaultTimeout bounds how long a session end waits on the sensor.
const DefaultTimeout = 2 * time.Second

// Provider supplies a posture score on demand. ok is false when no score is
// available; callers never block beyond the provider's own deadline.
type Provider interface {
	Score() (score int, ok bool)
}

// None is the provider used when no sensor is configured.
type None struct{}

func (None) Score() (int, bool) {
	return 0, false
}

// Command runs a user-configured shell command and reads the score from its
// standard output. Anything other than an integer between 0 and 100,
// produced before the timeout, counts as "no score".
type Command struct {
	cmd     string
	timeout time.Duration
}

// NewCommand builds a command-backed provider. A zero timeout falls back to
// DefaultTimeout.
func NewCommand(cmd string, timeout time.Duration) *Command {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Command{
		cmd:     cmd,
		timeout: timeout,
	}
}

func (c *Command) Score() (int, bool) {
	if strings.TrimSpace(c.cmd) == "" {
		return 0, false
	}

	cmdSlice, err := shellquote.Split(c.cmd)
	if err != nil || len(cmdSlice) == 0 {
		slog.Error("unable to parse posture_cmd option", slog.Any("error", err))
		return 0, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...).Output()
	if err != nil {
		slog.Debug("posture command failed", slog.Any("error", err))
		return 0, false
	}

	return parseScore(string(out))
}

func parseScore(out string) (int, bool) {
	score, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		slog.Debug("posture command output is not a number",
			slog.String("output", out),
		)

		return 0, false
	}

	if score < 0 || score > 100 {
		slog.Debug("posture score out of range", slog.Int("score", score))
		return 0, false
	}

	return score, true
}
