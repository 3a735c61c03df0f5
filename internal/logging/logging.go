package logging

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where log lines go and how much gets through. Output
// defaults to stderr so stdout stays reserved for the JSON record; File,
// when set, redirects everything into a rotating log file instead.
type Config struct {
	Level  string // debug, info, warn or error
	File   string
	Output io.Writer
}

// New builds the process logger.
func New(cfg Config) *charmlog.Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	if cfg.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           ParseLevel(cfg.Level),
	})
}

// ParseLevel maps a config level name onto a charm log level. Unknown
// names fall back to info.
func ParseLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}
