package resource

import (
	"net/url"
	"strings"

	"github.com/blang/semver"
)

// VersionFromURL looks for a library version in the directories of u, as
// used by CDN layouts such as /ajax/libs/jquery/3.7.1/jquery.min.js or
// /npm/jquery@3.7.1/dist/jquery.min.js. It returns an empty string if
// nothing looks like a version.
func VersionFromURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	// the last segment is the file itself
	for i := len(segments) - 2; i >= 0; i-- {
		s := segments[i]
		if at := strings.LastIndexByte(s, '@'); at >= 0 {
			s = s[at+1:]
		}
		// require a dot so that /v2/ style prefixes are not taken for versions
		if !strings.Contains(s, ".") {
			continue
		}
		if v, err := semver.ParseTolerant(s); err == nil {
			return v.String()
		}
	}
	return ""
}
