package util

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
)

// LogFunc represents a function that takes a context,
// format string and number of interface{} and logs accordingly.
type LogFunc func(context.Context, string, ...interface{})

// GetStandardLogger returns a logger that is used for debugging.
// It logs to STDERR, has no prefix, and logs the date and time in UTC.
func GetStandardLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags|log.LUTC)
}

// GetStandardEntries gets a slice of []ContextEntry given
// a prefix and *log.Logger. Debug and Err default to StandardDebugf
// and Printf respectively since they are not included.
func GetStandardEntries(prefix string, logger *log.Logger) []ContextEntry {
	return []ContextEntry{
		{
			Key:   LoggerPrefix,
			Value: prefix,
		},
		{
			Key:   Logger,
			Value: logger,
		},
		{
			Key:   Warn,
			Value: LogFunc(SentryWarnf),
		},
	}
}

// SentryWarnf implements LogFunc, printing the warning and
// notifying sentry of it when a client is configured.
func SentryWarnf(ctx context.Context, format string, v ...interface{}) {
	Printf(ctx, "warning: "+format, v...)
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.CurrentHub().RecoverWithContext(ctx, fmt.Errorf(format, v...))
	sentry.CurrentHub().Flush(SentryFlushTime)
}

// Printf is a LogFunc that uses a logger to log a formatted string.
// It is a no-op when the context carries no logger.
func Printf(ctx context.Context, format string, v ...interface{}) {
	logger, ok := ctx.Value(Logger).(*log.Logger)
	if !ok || logger == nil {
		return
	}
	if prefix, ok := ctx.Value(LoggerPrefix).(string); ok && prefix != "" {
		logger.Printf(prefix+": "+format, v...)
	} else {
		logger.Printf(format, v...)
	}
}

// StandardDebugf is a LogFunc that calls Printf if the program is in DEBUG mode.
func StandardDebugf(ctx context.Context, format string, v ...interface{}) {
	if IsDebug() {
		Printf(ctx, format, v...)
	}
}

// Generic function used to call a LogFunc stored in the context using a ContextKey key,
// calling a default LogFunc if the key is not set.
func logf(ctx context.Context, key ContextKey, defaultLogf LogFunc, format string, v ...interface{}) {
	if f, ok := ctx.Value(key).(LogFunc); ok && f != nil {
		f(ctx, format, v...)
	} else {
		defaultLogf(ctx, format, v...)
	}
}

// Debugf is a LogFunc that attempts to call the Debug LogFunc in the context, defaulting
// to StandardDebugf if unset.
func Debugf(ctx context.Context, format string, v ...interface{}) {
	logf(ctx, Debug, StandardDebugf, format, v...)
}

// Warnf is a LogFunc that attempts to call the Warn LogFunc in the context, defaulting
// to StandardDebugf if unset.
func Warnf(ctx context.Context, format string, v ...interface{}) {
	logf(ctx, Warn, StandardDebugf, format, v...)
}

// Errf is a LogFunc that attempts to call the Err LogFunc in the context, defaulting
// to Printf if unset.
func Errf(ctx context.Context, format string, v ...interface{}) {
	logf(ctx, Err, Printf, format, v...)
}
