package resource

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// TagInfo describes an existing embedding tag.
type TagInfo struct {
	Kind      Kind
	Source    string
	Integrity string
}

// ParseTag reads the first <script> or <link> element in markup.
func ParseTag(markup string) (TagInfo, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return TagInfo{}, errors.New("no <script> or <link> element found")
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "script":
				return tagInfo(Script, attr(tok, "src"), attr(tok, "integrity"))
			case "link":
				return linkInfo(tok)
			}
		}
	}
}

func linkInfo(tok html.Token) (TagInfo, error) {
	href := attr(tok, "href")
	for _, rel := range strings.Fields(strings.ToLower(attr(tok, "rel"))) {
		switch rel {
		case "stylesheet":
			return tagInfo(Stylesheet, href, attr(tok, "integrity"))
		case "modulepreload":
			// a module preload is either a wasm module or a plain module script
			kind := Script
			if u, err := url.Parse(href); err == nil && ExtensionFromURL(u) == WasmModule.Extension() {
				kind = WasmModule
			}
			return tagInfo(kind, href, attr(tok, "integrity"))
		}
	}
	return TagInfo{}, errors.Errorf("unsupported <link rel=%q>", attr(tok, "rel"))
}

func tagInfo(kind Kind, source, integrity string) (TagInfo, error) {
	if source == "" {
		return TagInfo{}, errors.Errorf("<%s> element has no source", kind)
	}
	return TagInfo{Kind: kind, Source: source, Integrity: integrity}, nil
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
