package util

import "time"

const (
	// MaxFileSize is the largest resource in bytes we are willing to
	// download and hash (10MiB).
	MaxFileSize int64 = 10485760

	// EncodeChunkSize is the number of bytes handed to the base64 encoder
	// at a time when building an integrity string (32KiB).
	EncodeChunkSize = 32 * 1024

	// SentryFlushTime is how long we wait for Sentry to deliver buffered
	// events before moving on.
	SentryFlushTime = time.Second * 2

	// DefaultOrigin is the Origin header sent by the reachability probe,
	// standing in for the page that would embed the resource.
	DefaultOrigin = "https://example.com"
)
