package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/pthm/hxup"
)

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "hxup").Logger()
}

// zerologSLogger adapts a zerolog.Logger to hxup.SLogger. Args are
// alternating key/value pairs, as with slog.
type zerologSLogger struct {
	logger zerolog.Logger
}

var _ hxup.SLogger = zerologSLogger{}

func (z zerologSLogger) Debug(msg string, args ...any) { z.logger.Debug().Fields(args).Msg(msg) }
func (z zerologSLogger) Info(msg string, args ...any)  { z.logger.Info().Fields(args).Msg(msg) }
func (z zerologSLogger) Warn(msg string, args ...any)  { z.logger.Warn().Fields(args).Msg(msg) }
func (z zerologSLogger) Error(msg string, args ...any) { z.logger.Error().Fields(args).Msg(msg) }
