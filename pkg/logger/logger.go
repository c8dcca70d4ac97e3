// Package logger provides leveled, colored console logging for the resolver
// and its CLI. Output goes to stdout; color is enabled only on terminals.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for console output
const (
	colorReset        = "\033[0m"
	colorCyan         = "\033[36m"
	colorGreen        = "\033[32m"
	colorBrightRed    = "\033[91m"
	colorBrightYellow = "\033[93m"
	colorBrightGray   = "\033[90m"
)

// Column widths for aligned output
const (
	componentNameWidth = 14
	logLevelWidth      = 7
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// ParseLevel maps a config string to a level. Unknown strings mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled log lines tagged with a component name.
type Logger struct {
	component string
	version   string

	mu           sync.RWMutex
	minLevel     Level
	colorEnabled bool
}

// New creates a logger for a component at the default info level.
func New(component, version string) *Logger {
	return &Logger{
		component:    component,
		version:      version,
		minLevel:     LevelInfo,
		colorEnabled: isTerminal(),
	}
}

// SetLevel changes the minimum level that gets written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// isTerminal checks if we're outputting to a terminal (for color support)
func isTerminal() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func (l *Logger) colorFor(level Level) string {
	if !l.colorEnabled {
		return ""
	}
	switch level {
	case LevelDebug:
		return colorBrightGray
	case LevelInfo:
		return colorGreen
	case LevelWarn:
		return colorBrightYellow
	case LevelError:
		return colorBrightRed
	default:
		return colorReset
	}
}

// formatComponentName truncates and pads the component name for consistent column width
func formatComponentName(component string) string {
	if len(component) > componentNameWidth {
		return component[:componentNameWidth-1] + "…"
	}
	return fmt.Sprintf("%-*s", componentNameWidth, component)
}

func (l *Logger) log(level Level, message string, fields map[string]string) {
	l.mu.RLock()
	enabled := level >= l.minLevel
	l.mu.RUnlock()
	if !enabled {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")

	color := l.colorFor(level)
	resetColor := ""
	if l.colorEnabled {
		resetColor = colorReset
	}

	formattedLevel := fmt.Sprintf("%-*s", logLevelWidth, levelNames[level])

	var fieldSuffix string
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for k, v := range fields {
			parts = append(parts, k+"="+v)
		}
		fieldSuffix = " " + strings.Join(parts, " ")
	}

	fmt.Printf("%s[%s] [%s] [%s%s%s] %s%s%s\n",
		colorCyan, timestamp, formatComponentName(l.component),
		color, formattedLevel, resetColor, message, fieldSuffix, resetColor)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...), nil)
}

// WithFields logs a message with additional key=value fields
func (l *Logger) WithFields(fields map[string]string) *LogContext {
	return &LogContext{
		logger: l,
		fields: fields,
	}
}

// LogContext provides field-based logging
type LogContext struct {
	logger *Logger
	fields map[string]string
}

func (c *LogContext) Info(message string) {
	c.logger.log(LevelInfo, message, c.fields)
}

func (c *LogContext) Error(message string) {
	c.logger.log(LevelError, message, c.fields)
}
