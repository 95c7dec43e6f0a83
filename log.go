package tilecore

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the logger used by every tilecore component. It defaults to a text
// logger on stderr at info level; call InitLogger or SetLogger to change it.
var Log = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// InitLogger configures Log from the environment. LOG_LEVEL selects the level
// (default "info"); LOG_FORMAT=json switches to the JSON formatter.
func InitLogger() {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// SetLogger replaces Log. A nil logger is ignored.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		Log = l
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
