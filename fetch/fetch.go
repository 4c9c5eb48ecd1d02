package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/cdnjs/sri-tools/resource"
	"github.com/cdnjs/sri-tools/util"

	"github.com/pkg/errors"
)

// FetchError is returned when a resource could not be downloaded.
type FetchError struct {
	URL        string
	Status     int
	StatusText string
	Err        error
}

// Error is used to satisfy the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: %d %s", e.URL, e.Status, e.StatusText)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher downloads remote resources.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxSize   int64

	// NewProgress, when set, is called with the expected content length
	// (-1 if unknown) and receives a copy of the body as it is read.
	NewProgress func(size int64) io.Writer
}

// NewFetcher creates a fetcher refusing bodies larger than util.MaxFileSize.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = util.NewHTTPClient()
	}
	return &Fetcher{client: client, userAgent: util.UserAgent(), maxSize: util.MaxFileSize}
}

// Fetch downloads target and returns its body. Any non-2xx status is an
// error. There is no timeout besides ctx.
func (f *Fetcher) Fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	util.Debugf(ctx, "download %s", target)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: target, Status: resp.StatusCode, StatusText: statusText(resp)}
	}
	if resp.ContentLength > f.maxSize {
		return nil, &FetchError{URL: target, Err: errors.Errorf("resource is %d bytes, over the %d bytes limit", resp.ContentLength, f.maxSize)}
	}

	var buff bytes.Buffer
	var w io.Writer = &buff
	if f.NewProgress != nil {
		w = io.MultiWriter(&buff, f.NewProgress(resp.ContentLength))
	}
	n, err := io.Copy(w, io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, &FetchError{URL: target, Err: errors.Wrap(err, "failed to read body")}
	}
	if n > f.maxSize {
		return nil, &FetchError{URL: target, Err: errors.Errorf("resource is over the %d bytes limit", f.maxSize)}
	}
	util.Debugf(ctx, "downloaded %s (%d bytes)", target, n)
	return buff.Bytes(), nil
}

// statusText strips the numeric code from resp.Status, falling back to
// the standard text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// ReadFile materializes a local file in memory. Errors are returned as is.
func ReadFile(f *resource.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ioutil.ReadAll(r)
}
