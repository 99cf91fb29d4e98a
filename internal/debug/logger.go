// Package debug configures the global zerolog logger.
//
// The terminal belongs to tcell once the map is running, so console output
// is only used during startup; the optional log file receives everything.
package debug

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	console io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	file    io.Writer
)

// Setup sets the log level and an optional log file (nil for none).
// Until Detach is called, messages are also printed to the console.
func Setup(logFile io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	file = logFile
	if file != nil {
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, file)).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
	}

	return nil
}

// Detach stops console output; only the log file, if any, keeps receiving
// messages
func Detach() {
	if file == nil {
		log.Logger = zerolog.Nop()
		return
	}
	log.Logger = zerolog.New(file).With().Timestamp().Logger()
}

// Enabled returns true if messages are written to a log file
func Enabled() bool {
	return file != nil
}
