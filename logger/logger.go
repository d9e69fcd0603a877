package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var base = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the process logger. format is "json" or "console".
func Init(level string, format string) {
	var out io.Writer = os.Stdout
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	}
	base = zerolog.New(out).With().Timestamp().Logger()
	SetLevel(level)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	base = base.Output(w)
}

func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	base = base.Level(parsed)
}

func IsDebugEnabled() bool {
	return base.GetLevel() <= zerolog.DebugLevel
}

func Debugf(format string, v ...any) {
	base.Debug().Msgf(format, v...)
}

func Infof(format string, v ...any) {
	base.Info().Msgf(format, v...)
}

func Warnf(format string, v ...any) {
	base.Warn().Msgf(format, v...)
}

// Errorf logs err alongside the formatted message.
func Errorf(err error, format string, v ...any) {
	base.Error().Err(err).Msgf(format, v...)
}

func Fatalf(format string, v ...any) {
	base.Fatal().Msgf(format, v...)
}
