package resource

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// UnsupportedKindError is returned when asked to build a tag for a kind
// outside the allow-list.
type UnsupportedKindError struct {
	Kind Kind
}

// Error is used to satisfy the error interface.
func (e UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported resource kind: %q", string(e.Kind))
}

// Tag returns the HTML markup embedding source with the integrity
// string digest. The source is attribute-escaped before substitution.
func Tag(source, digest string, kind Kind) (string, error) {
	if !kind.Known() {
		return "", UnsupportedKindError{Kind: kind}
	}
	e := kinds[kind]
	// digest goes first so a source containing a placeholder
	// cannot be substituted into
	markup := strings.Replace(e.template, sriPlaceholder, html.EscapeString(digest), 1)
	markup = strings.Replace(markup, sourcePlaceholder, html.EscapeString(source), 1)
	return markup, nil
}
