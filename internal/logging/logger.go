// Package logging provides structured logging for leetcoder.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// global logger instance
	global *logrus.Logger
	once   sync.Once
)

// Init initializes the global logger. The first call wins.
func Init(out io.Writer, level string) {
	once.Do(func() {
		global = newLogger(out, level)
	})
}

// Get returns the global logger instance.
func Get() *logrus.Logger {
	if global == nil {
		Init(os.Stderr, "info")
	}
	return global
}

func newLogger(out io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Convenience functions using the global logger.

func Debug(message string, fields ...logrus.Fields) {
	withFields(fields).Debug(message)
}

func Info(message string, fields ...logrus.Fields) {
	withFields(fields).Info(message)
}

func Warn(message string, fields ...logrus.Fields) {
	withFields(fields).Warn(message)
}

func Error(message string, err error, fields ...logrus.Fields) {
	entry := withFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
}

func withFields(fields []logrus.Fields) *logrus.Entry {
	entry := logrus.NewEntry(Get())
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	return entry
}
