package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// Setup configures the shared logger. Unknown levels fall back to info and
// any format other than "text" produces JSON.
func Setup(level, format string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}
	Logger.SetOutput(out)

	if format == "text" {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)

	return Logger
}

// LogEvent logs structured events
func LogEvent(level logrus.Level, message string, fields logrus.Fields) {
	Logger.WithFields(fields).Log(level, message)
}
