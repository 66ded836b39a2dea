package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New создает логгер приложения. pretty включает консольный вывод для человека,
// иначе каждое событие пишется одной строкой JSON.
func New(level string, pretty bool, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
