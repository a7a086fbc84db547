// Package logger is the process-wide logging facade used by the server and
// the CLI. The analysis core never logs.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Params configures Init.
type Params struct {
	Debug bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

var singleton *log.Logger

// Init installs the global logger. Calls made before Init are dropped.
func Init(params Params) {
	out := params.Output
	if out == nil {
		out = os.Stderr
	}
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	singleton = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "pipecheck",
	})
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	singleton.Debug(message, keyvals...)
}

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	singleton.Info(message, keyvals...)
}

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	singleton.Warn(message, keyvals...)
}

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	singleton.Error(message, keyvals...)
}

// Fatal writes a message at FATAL level and exits.
func Fatal(message string, keyvals ...any) {
	if singleton == nil {
		Init(Params{})
	}
	singleton.Fatal(message, keyvals...)
}
