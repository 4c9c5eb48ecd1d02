package util

import (
	"fmt"
	"net/http"
)

// Version is the tool version reported in the User-Agent header.
// It is overridden at build time with -ldflags.
var Version = "0.0.0-dev"

// UserAgent returns the default User-Agent sent with every request.
func UserAgent() string {
	return fmt.Sprintf("sri-tools/%s", Version)
}

// NewHTTPClient returns the client used for probing and fetching.
// No timeout is set: a hung request blocks until its context is cancelled.
func NewHTTPClient() *http.Client {
	return &http.Client{}
}
