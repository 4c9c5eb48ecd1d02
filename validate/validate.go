// Package validate gates user input before anything is fetched or hashed.
// All functions are pure; they only consult the resource allow-list.
package validate

import (
	"math"
	"net/url"

	"github.com/cdnjs/sri-tools/resource"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how different an extension may be from an
// allowed one and still be suggested.
const maxSuggestDistance = 2

// Verdict is the outcome of validating an input. Extension is only set
// when Valid is true.
type Verdict struct {
	Valid     bool
	Extension string
}

func invalid() Verdict {
	return Verdict{}
}

// URL validates raw as an absolute http(s) URL naming an allow-listed resource.
func URL(raw string) Verdict {
	return URLWithKeys(raw, resource.DefaultQueryKeys)
}

// URLWithKeys is URL with a custom list of query keys for naming resources.
func URLWithKeys(raw string, keys []string) Verdict {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return invalid()
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid()
	}
	return check(resource.ExtensionFromURLWithKeys(u, keys))
}

// File validates a selected file by its name only; its size is the
// caller's concern.
func File(f *resource.File) Verdict {
	if f == nil || f.Name == "" {
		return invalid()
	}
	return check(resource.ExtensionFromFilename(f.Name))
}

func check(ext string) Verdict {
	if _, ok := resource.KindForExtension(ext); !ok {
		return invalid()
	}
	return Verdict{Valid: true, Extension: ext}
}

// Suggest returns the allow-listed extension closest to ext, or an empty
// string if none is close enough to be a likely typo. Ties go to the
// candidate sharing the first letter of ext, then to the one closest in
// length.
func Suggest(ext string) string {
	if ext == "" {
		return ""
	}
	var best string
	minDist := math.MaxInt32
	for _, allowed := range resource.Extensions() {
		dist := levenshtein.ComputeDistance(ext, allowed)
		if dist < minDist || (dist == minDist && closer(ext, allowed, best)) {
			best = allowed
			minDist = dist
		}
	}
	if minDist == 0 || minDist > maxSuggestDistance {
		return ""
	}
	return best
}

// closer reports whether a is a better tie-break candidate for ext than b.
func closer(ext, a, b string) bool {
	if sa, sb := a[0] == ext[0], b[0] == ext[0]; sa != sb {
		return sa
	}
	return lenDiff(ext, a) < lenDiff(ext, b)
}

func lenDiff(a, b string) int {
	if d := len(a) - len(b); d > 0 {
		return d
	}
	return len(b) - len(a)
}
