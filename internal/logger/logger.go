package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "waylayout"})
	// LOG_LEVEL wins until the config file says otherwise
	Logger.SetLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// ParseLevel maps a level name to a log level, defaulting to INFO
func ParseLevel(name string) log.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return log.DebugLevel
	case "INFO":
		return log.InfoLevel
	case "WARN", "WARNING":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	case "FATAL":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel changes the level by name. Empty names are ignored.
func SetLevel(name string) {
	if name == "" {
		return
	}
	Logger.SetLevel(ParseLevel(name))
}

// SetOutput redirects log output, used while a full-screen UI owns the terminal
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// Convenience functions for common operations
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

func Infof(format string, args ...interface{}) {
	Logger.Infof(format, args...)
}

func Debugf(format string, args ...interface{}) {
	Logger.Debugf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	Logger.Errorf(format, args...)
}
