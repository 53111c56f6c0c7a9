// Package debug provides gated, structured debug logging.
//
// Nothing is written unless debug mode is on (build flag, DEBUG env var or
// SetEnabled) and an output writer has been configured. MCP mode silences
// everything so stdio carries protocol frames only.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/standardbeagle/grimoire/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// MCPMode tracks if we're running in MCP mode (set by main)
var MCPMode = false

var (
	debugMutex  sync.Mutex
	debugOutput io.Writer
	debugFile   *os.File
	logger      = zerolog.Nop()
)

// SetMCPMode enables MCP mode which suppresses all debug output.
func SetMCPMode(enabled bool) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	MCPMode = enabled
}

// SetEnabled turns debug mode on or off at runtime (the --debug flag).
func SetEnabled(enabled bool) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	if enabled {
		EnableDebug = "true"
	} else {
		EnableDebug = "false"
	}
}

// SetDebugOutput sets the writer for debug output. Pass nil to disable output.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	setOutputLocked(w)
}

func setOutputLocked(w io.Writer) {
	debugOutput = w
	if w == nil {
		logger = zerolog.Nop()
		return
	}
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// InitDebugLogFile sends debug output to a timestamped file under the temp dir
// and returns its path. Call CloseDebugLog when done.
func InitDebugLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "grimoire-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugFile = file
	setOutputLocked(file)
	return logPath, nil
}

// CloseDebugLog closes the debug log file if one is open.
func CloseDebugLog() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile == nil {
		return nil
	}
	err := debugFile.Close()
	debugFile = nil
	setOutputLocked(nil)
	return err
}

// IsDebugEnabled returns true if debug mode is enabled and we're not in MCP mode.
func IsDebugEnabled() bool {
	if MCPMode {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	v := os.Getenv("DEBUG")
	return v == "1" || v == "true"
}

// Event starts a debug event tagged with component. It returns nil when
// logging is off; zerolog treats a nil *Event as a no-op, so callers can chain
// fields unconditionally.
func Event(component string) *zerolog.Event {
	if !IsDebugEnabled() {
		return nil
	}
	debugMutex.Lock()
	l := logger
	debugMutex.Unlock()
	return l.Debug().Str("component", component)
}

// Log writes a formatted debug message for component.
func Log(component, format string, args ...interface{}) {
	Event(component).Msgf(format, args...)
}

// LogLoad logs dataset loading.
func LogLoad(format string, args ...interface{}) {
	Log("LOAD", format, args...)
}

// LogIndex logs index construction.
func LogIndex(format string, args ...interface{}) {
	Log("INDEX", format, args...)
}

// LogSearch logs query evaluation.
func LogSearch(format string, args ...interface{}) {
	Log("SEARCH", format, args...)
}

// LogMCP logs MCP traffic.
func LogMCP(format string, args ...interface{}) {
	Log("MCP", format, args...)
}

// Fatal records a fatal message and returns it as an error. It never exits;
// callers decide what to do.
func Fatal(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if !MCPMode {
		debugMutex.Lock()
		l := logger
		debugMutex.Unlock()
		l.Error().Str("level_hint", "fatal").Msg(msg)
	}
	return fmt.Errorf("fatal error: %s", msg)
}
