package logging

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Initialize configures the global logger for the given verbosity level (0-9).
// Logs always go to stderr: in stdio mode stdout carries the MCP transport.
func Initialize(level int) {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerologLevel(level)).
		With().Timestamp().Logger()
}

// zerologLevel maps the 0-9 verbosity scale onto zerolog levels.
// 0-2: errors and warnings, 3-4: info, 5+: debug.
func zerologLevel(level int) zerolog.Level {
	switch {
	case level >= 5:
		return zerolog.DebugLevel
	case level >= 3:
		return zerolog.InfoLevel
	case level >= 1:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Debug logs at debug level (level 5-9)
func Debug(format string, v ...interface{}) {
	logger.Debug().Msgf(format, v...)
}

// Info logs at info level (level 3-9)
func Info(format string, v ...interface{}) {
	logger.Info().Msgf(format, v...)
}

// Warn logs at warning level (level 1-9)
func Warn(format string, v ...interface{}) {
	logger.Warn().Msgf(format, v...)
}

// Error logs at error level (always emitted)
func Error(format string, v ...interface{}) {
	logger.Error().Msgf(format, v...)
}
