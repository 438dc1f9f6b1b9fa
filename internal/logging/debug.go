package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	forced atomic.Bool
)

// SetOutput redirects Infof and Errorf; tests use it to capture log lines
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetDebug turns debug output on regardless of HB_DEBUG; the CLI's --verbose uses it
func SetDebug(on bool) {
	forced.Store(on)
}

// DebugEnabled returns true if debug mode is enabled via HB_DEBUG environment variable or SetDebug
func DebugEnabled() bool {
	return forced.Load() || os.Getenv("HB_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write("DEBUG", format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write("DEBUG", "%s", fmt.Sprintln(args...))
	}
}

// Infof prints an informational message
func Infof(format string, args ...interface{}) {
	write("INFO", format, args...)
}

// Errorf prints an error message
func Errorf(format string, args ...interface{}) {
	write("ERROR", format, args...)
}

func write(level string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, "%s %-5s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, msg)
}
