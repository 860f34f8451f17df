// Package logger holds the process-wide structured logger used by the engine
// and the command line tools.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is usable before Init is called (info level,
// text output on stderr) so library code never has to nil-check it.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(os.Stderr)
	return l
}

// Init configures Log from the environment.
//
// LOG_LEVEL selects the level (default "info"); LOG_FORMAT=json switches to
// the JSON formatter, anything else keeps the text formatter.
func Init() {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	Log.SetOutput(os.Stderr)
}

// SetOutput redirects the shared logger, e.g. to io.Discard while a full
// screen renderer owns the terminal.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
