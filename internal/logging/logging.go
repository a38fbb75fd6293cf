// Package logging provides leveled logging to stderr for the CLI. Output on
// stdout is reserved for API responses, so all diagnostics go through here.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Log levels, lowest to highest verbosity.
const (
	None = iota
	Error
	Info
	Debug
)

var currentLevel atomic.Int32

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stderr)
	currentLevel.Store(Error)
}

// SetLevel sets the global logging level.
func SetLevel(level int) {
	currentLevel.Store(int32(level))
}

// Level returns the current logging level.
func Level() int {
	return int(currentLevel.Load())
}

// ParseLevel converts a level name to its integer level.
func ParseLevel(name string) (int, error) {
	switch strings.ToLower(name) {
	case "none":
		return None, nil
	case "error":
		return Error, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	default:
		return Error, fmt.Errorf("invalid log level %q (use none, error, info, or debug)", name)
	}
}

// Logf logs a formatted message if level is within the configured verbosity.
func Logf(level int, format string, v ...any) {
	if int32(level) > currentLevel.Load() {
		return
	}
	var prefix string
	switch level {
	case Error:
		prefix = "[ERROR] "
	case Info:
		prefix = "[INFO] "
	case Debug:
		prefix = "[DEBUG] "
	}
	log.Output(2, prefix+fmt.Sprintf(format, v...))
}
