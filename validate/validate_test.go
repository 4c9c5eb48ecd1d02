package validate

import (
	"testing"

	"github.com/cdnjs/sri-tools/resource"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	cases := []struct {
		input    string
		expected Verdict
	}{
		{input: "https://cdn.example/pkg/jquery.min.js", expected: Verdict{Valid: true, Extension: "js"}},
		{input: "http://cdn.example/style.CSS", expected: Verdict{Valid: true, Extension: "css"}},
		{input: "https://host/download?file=app.wasm", expected: Verdict{Valid: true, Extension: "wasm"}},
		{input: "HTTPS://cdn.example/lib.js", expected: Verdict{Valid: true, Extension: "js"}},
		{input: "https://cdn.example/image.png", expected: Verdict{}},
		{input: "https://cdn.example/download", expected: Verdict{}},
		{input: "https://cdn.example/?file=lib.js", expected: Verdict{}},
		{input: "ftp://cdn.example/lib.js", expected: Verdict{}},
		{input: "file:///tmp/lib.js", expected: Verdict{}},
		{input: "javascript:alert(1)//x.js", expected: Verdict{}},
		{input: "data:text/javascript,lib.js", expected: Verdict{}},
		{input: "//cdn.example/lib.js", expected: Verdict{}},
		{input: "/lib.js", expected: Verdict{}},
		{input: "lib.js", expected: Verdict{}},
		{input: "", expected: Verdict{}},
		{input: "https://[::1/lib.js", expected: Verdict{}},
		{input: "https:///lib.js", expected: Verdict{}},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, URL(tc.input))
		})
	}
}

func TestURLWithKeys(t *testing.T) {
	assert.Equal(t, Verdict{Valid: true, Extension: "js"}, URLWithKeys("https://h/get?asset=a.js", []string{"asset"}))
	assert.Equal(t, Verdict{}, URLWithKeys("https://h/get?file=a.js", []string{"asset"}))
}

func TestFile(t *testing.T) {
	assert.Equal(t, Verdict{}, File(nil))
	assert.Equal(t, Verdict{}, File(resource.NewMemoryFile("", []byte("x"))))
	assert.Equal(t, Verdict{}, File(resource.NewMemoryFile("README", []byte("x"))))
	assert.Equal(t, Verdict{}, File(resource.NewMemoryFile("photo.jpg", []byte("x"))))
	assert.Equal(t, Verdict{Valid: true, Extension: "js"}, File(resource.NewMemoryFile("Lib.JS", []byte("x"))))
	assert.Equal(t, Verdict{Valid: true, Extension: "wasm"}, File(resource.NewMemoryFile("app.wasm", nil)))

	// name only: an empty file is still a valid selection here
	assert.Equal(t, Verdict{Valid: true, Extension: "css"}, File(resource.NewMemoryFile("style.css", nil)))
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "js", Suggest("jss"))
	// equal distance: the shared first letter decides
	assert.Equal(t, "css", Suggest("cs"))
	assert.Equal(t, "css", Suggest("scss"))
	assert.Equal(t, "wasm", Suggest("wasn"))
	assert.Equal(t, "", Suggest("js"))
	assert.Equal(t, "", Suggest("png"))
	assert.Equal(t, "", Suggest(""))
}
