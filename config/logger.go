package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Logger struct {
	ZeroLogger *zerolog.Logger
}

// Log is exposed on the config as a drop-in replacement for our old logger
var Log Logger

func init() {
	nop := zerolog.Nop()
	Log.ZeroLogger = &nop
}

func (l *Logger) Debug(msg string, err ...error) {
	l.emit(l.ZeroLogger.Debug(), msg, err)
}

func (l *Logger) Info(msg string, err ...error) {
	l.emit(l.ZeroLogger.Info(), msg, err)
}

func (l *Logger) Warn(msg string, err ...error) {
	l.emit(l.ZeroLogger.Warn(), msg, err)
}

func (l *Logger) Error(msg string, err ...error) {
	l.emit(l.ZeroLogger.Error(), msg, err)
}

func (l *Logger) Fatal(msg string, err ...error) {
	l.emit(l.ZeroLogger.Fatal(), msg, err)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.ZeroLogger.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.ZeroLogger.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.ZeroLogger.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.ZeroLogger.Error().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.ZeroLogger.Fatal().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) emit(ev *zerolog.Event, msg string, err []error) {
	if len(err) > 0 && err[0] != nil {
		ev = ev.Err(err[0])
	}
	ev.Msg(msg)
}

// DoConfigureLogger points Log at stderr, or at stderr and logPath when a path is given.
func DoConfigureLogger(logPath string, logLevel string, prettyLogging bool) error {
	var out io.Writer = os.Stderr
	if prettyLogging {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if logPath != "" {
		file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", logPath, err)
		}
		out = zerolog.MultiLevelWriter(out, file)
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	Log.ZeroLogger = &logger

	zerolog.SetGlobalLevel(ParseLevel(logLevel))
	return nil
}

// ParseLevel defaults to info for anything it doesn't recognize.
func ParseLevel(logLevel string) zerolog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
