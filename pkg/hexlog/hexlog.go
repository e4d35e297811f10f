// Package hexlog provides the structured logging used across hexsolve. It
// follows the call-site shape of the teacher's pkg/common/log.go
// (Info/Verbose/Warning/Error, a global verbose switch) but is backed by
// github.com/rs/zerolog instead of fmt.Println, the way the mcpxcel
// example wires zerolog through its internal/telemetry package.
package hexlog

import (
	"os"

	"github.com/rs/zerolog"
)

// VerboseEnabled controls whether Debug output is emitted. Mirrors the
// teacher's common.VerboseEnabled switch, set from the root command's
// --verbose flag.
var VerboseEnabled = false

// LogFile is an optional path to additionally append log lines to. Empty
// means stdout only, matching the teacher's optional LogFile behavior.
var LogFile = ""

var base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: false}).With().Timestamp().Logger()

// SetVerbose updates the effective log level to match VerboseEnabled.
func SetVerbose(v bool) {
	VerboseEnabled = v
	if v {
		base = base.Level(zerolog.DebugLevel)
	} else {
		base = base.Level(zerolog.InfoLevel)
	}
}

func fileLogger() *zerolog.Logger {
	if LogFile == "" {
		return nil
	}
	f, err := os.OpenFile(LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	l := zerolog.New(f).With().Timestamp().Logger()
	return &l
}

// Info logs a message unconditionally, like common.Info.
func Info(format string, args ...interface{}) {
	base.Info().Msgf(format, args...)
	if fl := fileLogger(); fl != nil {
		fl.Info().Msgf(format, args...)
	}
}

// Verbose logs a message only when VerboseEnabled is true, like common.Verbose.
func Verbose(format string, args ...interface{}) {
	if !VerboseEnabled {
		return
	}
	base.Debug().Msgf(format, args...)
	if fl := fileLogger(); fl != nil {
		fl.Debug().Msgf(format, args...)
	}
}

// Debug is an alias for Verbose, kept for call-site parity with the teacher.
func Debug(format string, args ...interface{}) { Verbose(format, args...) }

// Warning logs a warning unconditionally, like common.Warning.
func Warning(format string, args ...interface{}) {
	base.Warn().Msgf(format, args...)
	if fl := fileLogger(); fl != nil {
		fl.Warn().Msgf(format, args...)
	}
}

// Error logs an error unconditionally through the same stdout console
// writer as the other helpers, like common.Error.
func Error(format string, args ...interface{}) {
	base.Error().Msgf(format, args...)
	if fl := fileLogger(); fl != nil {
		fl.Error().Msgf(format, args...)
	}
}

// With returns a child logger with an attached field, for call sites that
// want structured context (e.g. a solve run ID) beyond the package helpers.
func With(key, value string) zerolog.Logger {
	return base.With().Str(key, value).Logger()
}
