package logger

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

/*
Returns the process wide logger. The first call decides the level: passing true enables debug
level and a human readable console output.
*/
func Get(debug ...bool) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		level := zerolog.InfoLevel
		if len(debug) > 0 && debug[0] {
			level = zerolog.DebugLevel
		}

		log = zerolog.New(os.Stdout).
			Level(level).
			With().
			Timestamp().
			Str("service", "book-network").
			Logger()

		if level == zerolog.DebugLevel {
			log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		}
	})
	return log
}
