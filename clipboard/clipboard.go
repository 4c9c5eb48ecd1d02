package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
)

// Writer writes plain text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

type system struct{}

func (system) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// System is the platform clipboard.
var System Writer = system{}

// Error is returned when copying fails. The text is kept so that it can
// be shown for copying by hand.
type Error struct {
	Text string
	Err  error
}

// Error is used to satisfy the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("failed to copy to clipboard: %s", e.Err)
}

// Unwrap returns the platform error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Copy writes text to w.
func Copy(w Writer, text string) error {
	if text == "" {
		return &Error{Text: text, Err: errors.New("nothing to copy")}
	}
	if err := w.WriteAll(text); err != nil {
		return &Error{Text: text, Err: err}
	}
	return nil
}
