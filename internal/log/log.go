// Package log wires the process-wide slog logger to a rotating log file in
// the data directory.
package log

import (
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/lockin/internal/pathutil"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Init replaces the default slog logger with one that writes to the lockin
// log file. Rotation is handled by lumberjack.
func Init() {
	w := &lumberjack.Logger{
		Filename:   pathutil.LogFilePath(),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	level := slog.LevelInfo
	if strings.TrimSpace(os.Getenv("LOCKIN_DEBUG")) != "" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
