// package log is a small leveled logger on top of the standard log package,
// the level is read from SQLITEJSON_LOG_LEVEL and defaults to error
package log

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	ErrorLevel Level = iota
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// EnvLevel names the environment variable holding the log level
const EnvLevel = "SQLITEJSON_LOG_LEVEL"

var (
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
	WarnLogger  = log.New(os.Stderr, "WARN: ", log.Ldate|log.Ltime)
	InfoLogger  = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	DebugLogger = log.New(os.Stderr, "DEBUG: ", log.Ldate|log.Ltime)
	TraceLogger = log.New(os.Stderr, "TRACE: ", log.Ldate|log.Ltime)

	logLevel Level
)

func init() { //nolint:gochecknoinits
	logLevel = ParseLevel(os.Getenv(EnvLevel))
}

// ParseLevel maps a level name to a Level, unknown names are ErrorLevel
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	}
	return ErrorLevel
}

func SetLevel(level Level) {
	logLevel = level
}

func GetLevel() Level {
	return logLevel
}

// SetOutput redirects every level to w
func SetOutput(w io.Writer) {
	for _, l := range []*log.Logger{ErrorLogger, WarnLogger, InfoLogger, DebugLogger, TraceLogger} {
		l.SetOutput(w)
	}
}

func Error(v ...any) {
	ErrorLogger.Print(v...)
}
func Errorf(format string, v ...any) {
	ErrorLogger.Printf(format, v...)
}

func Warn(v ...any) {
	if logLevel < WarnLevel {
		return
	}
	WarnLogger.Print(v...)
}
func Warnf(format string, v ...any) {
	if logLevel < WarnLevel {
		return
	}
	WarnLogger.Printf(format, v...)
}

func Info(v ...any) {
	if logLevel < InfoLevel {
		return
	}
	InfoLogger.Print(v...)
}
func Infof(format string, v ...any) {
	if logLevel < InfoLevel {
		return
	}
	InfoLogger.Printf(format, v...)
}

func Debug(v ...any) {
	if logLevel < DebugLevel {
		return
	}
	DebugLogger.Print(v...)
}
func Debugf(format string, v ...any) {
	if logLevel < DebugLevel {
		return
	}
	DebugLogger.Printf(format, v...)
}

func Trace(v ...any) {
	if logLevel < TraceLevel {
		return
	}
	TraceLogger.Print(v...)
}
func Tracef(format string, v ...any) {
	if logLevel < TraceLevel {
		return
	}
	TraceLogger.Printf(format, v...)
}
