// Package logger provides the process-wide leveled logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	levelVar slog.LevelVar
	mu       sync.RWMutex
	base     *slog.Logger
)

func init() {
	levelVar.Set(slog.LevelInfo)
	base = newLogger(os.Stdout)
}

func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &levelVar}))
}

// SetOutput redirects all subsequent log output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	base = newLogger(w)
	mu.Unlock()
}

// SetLevel accepts "debug", "info", "warn"/"warning" or "error".
// Unknown values fall back to info.
func SetLevel(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "info":
		levelVar.Set(slog.LevelInfo)
	case "warn", "warning":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		levelVar.Set(slog.LevelInfo)
	}
}

func active() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Debugf(format string, v ...any) { active().Debug(fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { active().Info(fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { active().Warn(fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { active().Error(fmt.Sprintf(format, v...)) }

// InfoBlock logs a multi-line block one line at a time so the text handler
// keeps each line prefixed.
func InfoBlock(block string) {
	block = strings.TrimSpace(block)
	if block == "" {
		return
	}
	for _, line := range strings.Split(block, "\n") {
		Infof("%s", line)
	}
}
