package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helloJS  = "alert('Hello, world.');"
	helloSRI = "sha384-H8BRh8j48O9oYatfu5AZzq6A9RINhZO5H16dQZngK7T62em8MUt1FLm52t+eX6xO"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

// fakes a CDN for testing purposes
func fakeCDNHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ajax/libs/hello/1.0.0/hello.js":
		w.Header().Set("Access-Control-Allow-Origin", "*")
		fmt.Fprint(w, helloJS)
	case "/private/hello.js":
		w.Header().Set("Access-Control-Allow-Origin", "https://intranet.example")
		fmt.Fprint(w, helloJS)
	case "/gone.js":
		http.NotFound(w, r)
	default:
		panic(fmt.Sprintf("unknown path: %s", r.URL.Path))
	}
}

func runCmd(t *testing.T, cb *fakeClipboard, args ...string) (string, string, error) {
	t.Helper()
	if cb == nil {
		cb = &fakeClipboard{}
	}
	root := newRootCmdWithOptions(&options{clipboard: cb})

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config", ""))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestURLCmd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(fakeCDNHandler))
	defer ts.Close()

	target := ts.URL + "/ajax/libs/hello/1.0.0/hello.js"
	cb := &fakeClipboard{}
	stdout, stderr, err := runCmd(t, cb, "url", target, "--copy")
	require.NoError(t, err)

	tag := `<script src="` + target + `" integrity="` + helloSRI + `" crossorigin="anonymous"></script>`
	assert.Equal(t, "integrity: "+helloSRI+"\nversion:   1.0.0\ntag:       "+tag+"\n", stdout)
	assert.Equal(t, tag, cb.text)
	assert.Contains(t, stderr, "copied tag to clipboard")
}

func TestURLCmdJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(fakeCDNHandler))
	defer ts.Close()

	target := ts.URL + "/ajax/libs/hello/1.0.0/hello.js"
	stdout, _, err := runCmd(t, nil, "url", target, "--json", "-a", "SHA-384")
	require.NoError(t, err)

	var out recordJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, recordJSON{
		Source:    target,
		Kind:      "script",
		Integrity: helloSRI,
		Tag:       `<script src="` + target + `" integrity="` + helloSRI + `" crossorigin="anonymous"></script>`,
		Size:      int64(len(helloJS)),
		Version:   "1.0.0",
	}, out)
}

func TestURLCmdErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(fakeCDNHandler))
	defer ts.Close()

	_, _, err := runCmd(t, nil, "url", ts.URL+"/private/hello.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash the local file instead")

	// without the probe the download itself goes through
	stdout, _, err := runCmd(t, nil, "url", ts.URL+"/private/hello.js", "--no-probe")
	require.NoError(t, err)
	assert.Contains(t, stdout, helloSRI)

	_, _, err = runCmd(t, nil, "url", ts.URL+"/gone.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404 Not Found")

	_, _, err = runCmd(t, nil, "url", ts.URL+"/logo.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported file type "png"`)

	_, _, err = runCmd(t, nil, "url", ts.URL+"/a.js", "-a", "md5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported algorithm")
}

func TestFileCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.js")
	require.NoError(t, os.WriteFile(path, []byte(helloJS), 0644))

	cb := &fakeClipboard{}
	stdout, _, err := runCmd(t, cb, "file", path, "--source", "https://cdn.example/hello.js", "--copy=digest")
	require.NoError(t, err)
	assert.Contains(t, stdout, `<script src="https://cdn.example/hello.js" integrity="`+helloSRI+`"`)
	assert.Equal(t, helloSRI, cb.text)

	empty := filepath.Join(dir, "empty.css")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, _, err = runCmd(t, nil, "file", empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty.css is empty")

	_, _, err = runCmd(t, nil, "file", filepath.Join(dir, "missing.js"))
	assert.Error(t, err)
}

func TestCopyFlagHelp(t *testing.T) {
	stdout, _, err := runCmd(t, nil, "file", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--copy=digest")

	// the value must be attached, otherwise it is read as a second argument
	_, _, err = runCmd(t, nil, "file", "hello.js", "--copy", "digest")
	assert.Error(t, err)
}

func TestFileCmdClipboardFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.js")
	require.NoError(t, os.WriteFile(path, []byte(helloJS), 0644))

	cb := &fakeClipboard{err: errors.New("no display")}
	stdout, stderr, err := runCmd(t, cb, "file", path, "--copy")
	require.NoError(t, err)
	assert.Contains(t, stdout, helloSRI)
	assert.Contains(t, stderr, "failed to copy to clipboard: no display")
}

func TestDirCmd(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"hello.js":         helloJS,
		"dist/hello.js":    helloJS,
		"dist/skip.min.js": "x",
		"notes.txt":        "x",
	} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}

	stdout, _, err := runCmd(t, nil, "dir", dir, "--exclude", "**.min.js")
	require.NoError(t, err)
	assert.Equal(t, helloSRI+" dist/hello.js\n"+helloSRI+" hello.js\n", stdout)

	stdout, _, err = runCmd(t, nil, "dir", dir, "--include", "*.js", "--json")
	require.NoError(t, err)
	var out []recordJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "hello.js", out[0].Source)
}

func TestCheckCmd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(fakeCDNHandler))
	defer ts.Close()

	target := ts.URL + "/ajax/libs/hello/1.0.0/hello.js"
	tag := `<script src="` + target + `" integrity="` + helloSRI + `" crossorigin="anonymous"></script>`
	stdout, _, err := runCmd(t, nil, "check", tag)
	require.NoError(t, err)
	assert.Equal(t, "OK "+target+"\n", stdout)

	relative := `<script src="/ajax/libs/hello/1.0.0/hello.js" integrity="sha384-AAAA"></script>`
	stdout, _, err = runCmd(t, nil, "check", relative, "--base", ts.URL+"/index.html")
	require.Error(t, err)
	assert.Equal(t, "MISMATCH "+target+"\n", stdout)

	_, _, err = runCmd(t, nil, "check", relative)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set --base")

	_, _, err = runCmd(t, nil, "check", `<script src="`+target+`"></script>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no integrity attribute")
}

func TestResolveSource(t *testing.T) {
	u, err := resolveSource("https://site.example/a/index.html", "../lib.js")
	require.NoError(t, err)
	assert.Equal(t, "https://site.example/lib.js", u)

	u, err = resolveSource("https://site.example/", "//cdn.example/lib.js")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/lib.js", u)

	_, err = resolveSource("", "ftp://cdn.example/lib.js")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := runCmd(t, nil, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "0.0.0"))
}
