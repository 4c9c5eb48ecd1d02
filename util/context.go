package util

import (
	"context"
)

// ContextKey is the key type used for context.WithValue().
type ContextKey int

// ContextEntry represents a key-value entry for a context.
type ContextEntry struct {
	Key   ContextKey
	Value interface{}
}

const (
	// LoggerPrefix is the key to the string that is outputted first when logging.
	// If the *log.Logger itself has a prefix set as well, the *log.Logger's
	// prefix will be outputted before the LoggerPrefix.
	//
	// For example, the LoggerPrefix may be the resource being hashed and
	// the *log.Logger may have a prefix to represent the program entry point.
	LoggerPrefix ContextKey = iota

	// Logger is the key for a *log.Logger.
	Logger

	// Debug is the LogFunc that is called when outputting a debug statement.
	Debug

	// Warn is the LogFunc that is called when outputting a warning.
	Warn

	// Err is the LogFunc that is called when outputting an error.
	Err

	// Info is the LogFunc that is called when outputting an info.
	Info
)

// ContextWithEntries creates a context with a variadic number of key-value
// entries, rooted at parent. A new context is created for each entry; there
// are only a handful of keys so a single map value is not worth it.
func ContextWithEntries(parent context.Context, entries ...ContextEntry) context.Context {
	for _, entry := range entries {
		parent = context.WithValue(parent, entry.Key, entry.Value)
	}
	return parent
}

// ContextWithName returns a context carrying the standard logger
// and entries, prefixed with name.
func ContextWithName(parent context.Context, name string) context.Context {
	return ContextWithEntries(parent, GetStandardEntries(name, GetStandardLogger())...)
}
