package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New builds the process logger. Unknown level strings fall back to debug.
func New(w io.Writer, level string) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Level:           parsed,
		TimeFormat:      time.Kitchen,
	})
}

// ForComponent returns a child logger tagged with a component name.
func ForComponent(logger *log.Logger, component string) *log.Logger {
	return logger.With("component", component)
}
