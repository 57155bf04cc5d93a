// Package logging builds the application logger. The log file is an owned
// resource: NewFileLogger hands back the logger together with a closer, and
// the caller decides when the file is released. There are no package-level
// globals.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger returns a logger writing structured lines to a size-rotated
// file at path. The returned closer flushes and releases the file; the
// caller owns it.
func NewFileLogger(path string) (*log.Logger, io.Closer) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}
	logger := log.NewWithOptions(rotator, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	return logger, rotator
}

// NewWriterLogger returns a logger for an arbitrary writer, used by the CLI
// when no log file is configured and by tests.
func NewWriterLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
