package resource

import (
	"net/url"
	"path"
	"strings"
)

// DefaultQueryKeys are the query parameters that may carry the resource
// name when the URL path does not, e.g. /download?file=lib.js.
// They are tried in order.
var DefaultQueryKeys = []string{"file", "filename"}

// ExtensionFromFilename returns the lower-cased text after the last dot
// in name, or an empty string if there is none.
func ExtensionFromFilename(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// ExtensionFromURL resolves the extension of u using DefaultQueryKeys.
func ExtensionFromURL(u *url.URL) string {
	return ExtensionFromURLWithKeys(u, DefaultQueryKeys)
}

// ExtensionFromURLWithKeys resolves the extension of u. The last path
// segment is preferred; when it has no dot, the first non-empty query
// parameter among keys is used instead. A root path yields nothing.
func ExtensionFromURLWithKeys(u *url.URL, keys []string) string {
	if u == nil {
		return ""
	}
	segment := lastSegment(u.Path)
	if segment == "" {
		return ""
	}
	if strings.Contains(segment, ".") {
		return ExtensionFromFilename(segment)
	}

	query := u.Query()
	for _, key := range keys {
		if v := query.Get(key); v != "" {
			return ExtensionFromFilename(path.Base(v))
		}
	}
	return ""
}

func lastSegment(p string) string {
	i := strings.LastIndexByte(p, '/')
	return p[i+1:]
}
