package resource

import (
	"fmt"
	"sort"
)

// Kind is the category of a web resource. It decides which
// embedding template is used.
type Kind string

const (
	Script     Kind = "script"
	Stylesheet Kind = "stylesheet"
	WasmModule Kind = "wasm-module"
)

const (
	sourcePlaceholder = "{{source}}"
	sriPlaceholder    = "{{sri}}"
)

type entry struct {
	extension string
	template  string
}

// kinds is the allow-list. A new kind must come with its extension and
// template together.
var kinds = map[Kind]entry{
	Script: {
		extension: "js",
		template:  `<script src="{{source}}" integrity="{{sri}}" crossorigin="anonymous"></script>`,
	},
	Stylesheet: {
		extension: "css",
		template:  `<link rel="stylesheet" href="{{source}}" integrity="{{sri}}" crossorigin="anonymous">`,
	},
	WasmModule: {
		extension: "wasm",
		template:  `<link rel="modulepreload" href="{{source}}" integrity="{{sri}}" crossorigin="anonymous">`,
	},
}

// byExtension is the reverse of kinds.
var byExtension = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for k, e := range kinds {
		if _, dup := m[e.extension]; dup {
			panic(fmt.Sprintf("extension %q mapped twice", e.extension))
		}
		m[e.extension] = k
	}
	return m
}()

// KindForExtension returns the kind registered for a normalized extension.
func KindForExtension(ext string) (Kind, bool) {
	k, ok := byExtension[ext]
	return k, ok
}

// Extension returns the extension registered for k, or an empty string.
func (k Kind) Extension() string {
	return kinds[k].extension
}

// Known reports whether k is in the allow-list.
func (k Kind) Known() bool {
	_, ok := kinds[k]
	return ok
}

// Extensions returns the allow-listed extensions, sorted.
func Extensions() []string {
	list := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list
}
