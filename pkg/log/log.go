// Package log provides the Logger used by the host components. The
// default implementation is backed by logrus.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	*logrus.Logger
}

// New returns a Logger writing text lines to stderr at the info level.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:  true,
		DisableSorting: true,
		DisableQuote:   true,
	}
	return &logger{Logger: l}
}

// WithLevel returns a Logger like New, logging at the named level
// ("debug", "info", "error", ...). Unknown levels are reported as an
// error.
func WithLevel(level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := New().(*logger)
	l.SetLevel(lvl)
	return l, nil
}

func (l *logger) Fatal(str string) {
	l.Logger.Fatal(str)
}
