// Package charmlog adapts charmbracelet/log to the domain Logger interface.
package charmlog

import (
	"io"

	charm "github.com/charmbracelet/log"

	"github.com/revelation-hq/revdist/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of charmbracelet/log
type Logger struct {
	l *charm.Logger
}

// New creates a logger writing to out. Debug enables debug-level output.
func New(out io.Writer, debug bool) *Logger {
	level := charm.InfoLevel
	if debug {
		level = charm.DebugLevel
	}

	return &Logger{
		l: charm.NewWithOptions(out, charm.Options{
			Level:           level,
			ReportTimestamp: false,
		}),
	}
}

// Debug logs debug-level messages
func (c *Logger) Debug(msg string, fields ...interfaces.Field) {
	c.l.Debug(msg, keyvals(fields)...)
}

// Info logs informational messages
func (c *Logger) Info(msg string, fields ...interfaces.Field) {
	c.l.Info(msg, keyvals(fields)...)
}

// Warn logs warning messages
func (c *Logger) Warn(msg string, fields ...interfaces.Field) {
	c.l.Warn(msg, keyvals(fields)...)
}

// Error logs error messages
func (c *Logger) Error(msg string, fields ...interfaces.Field) {
	c.l.Error(msg, keyvals(fields)...)
}

func keyvals(fields []interfaces.Field) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}
