package generate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cdnjs/sri-tools/fetch"
	"github.com/cdnjs/sri-tools/resource"
	"github.com/cdnjs/sri-tools/validate"

	"github.com/pkg/errors"
)

// ErrSuperseded is returned by an operation whose result was discarded
// because a newer operation started before it finished.
var ErrSuperseded = errors.New("superseded by a newer operation")

// InputError is a missing, malformed or disallowed input. Nothing was
// fetched or hashed.
type InputError struct {
	Msg string
}

// Error is used to satisfy the error interface.
func (e InputError) Error() string {
	return e.Msg
}

// ReachabilityError means the probe found the resource unreadable
// cross-origin. Computing the hash from a local copy of the file is
// the way forward.
type ReachabilityError struct {
	URL          string
	Reachability fetch.Reachability
}

// Error is used to satisfy the error interface.
func (e ReachabilityError) Error() string {
	return fmt.Sprintf("%s cannot be read cross-origin (%s); download it and hash the local file instead", e.URL, e.Reachability.Reason)
}

func inputErrorf(format string, v ...interface{}) error {
	return InputError{Msg: fmt.Sprintf(format, v...)}
}

// urlInputError explains why raw failed validation.
func urlInputError(raw string, keys []string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return inputErrorf("invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return inputErrorf("unsupported protocol %q, only http and https are allowed", u.Scheme)
	}
	return extensionError(resource.ExtensionFromURLWithKeys(u, keys))
}

// fileInputError explains why f failed validation.
func fileInputError(f *resource.File) error {
	if f == nil || f.Name == "" {
		return inputErrorf("no file selected")
	}
	return extensionError(resource.ExtensionFromFilename(f.Name))
}

func extensionError(ext string) error {
	allowed := "." + strings.Join(resource.Extensions(), ", .")
	if ext == "" {
		return inputErrorf("could not determine the file type, expected one of %s", allowed)
	}
	msg := fmt.Sprintf("unsupported file type %q, expected one of %s", ext, allowed)
	if hint := validate.Suggest(ext); hint != "" {
		msg += fmt.Sprintf(" (did you mean .%s?)", hint)
	}
	return InputError{Msg: msg}
}
