package fetch

import (
	"context"
	"net/http"

	"github.com/cdnjs/sri-tools/util"

	"github.com/pkg/errors"
)

// Reachability is the advisory outcome of probing a remote resource.
type Reachability struct {
	Readable    bool
	Status      int
	ContentType string
	// AllowOrigin is the Access-Control-Allow-Origin header, if any.
	// Browsers refuse an integrity-checked cross-origin load without it.
	AllowOrigin string
	Reason      string
}

// Prober checks whether a resource can be read cross-origin before it
// is downloaded. It is a heuristic: the server decides what it sends to
// each client, and a later fetch may still fail.
type Prober struct {
	client    *http.Client
	origin    string
	userAgent string
}

// NewProber creates a prober sending requests on behalf of origin.
func NewProber(client *http.Client, origin string) *Prober {
	if client == nil {
		client = util.NewHTTPClient()
	}
	if origin == "" {
		origin = util.DefaultOrigin
	}
	return &Prober{client: client, origin: origin, userAgent: util.UserAgent()}
}

// Probe tries a HEAD request, falling back to GET when HEAD fails or is
// rejected. Any response received counts as reachable whatever its
// status, with one exception: an Access-Control-Allow-Origin header naming
// an origin other than the prober's (and not "*") marks it unreadable.
// A missing header is not a refusal: the verdict stays readable and
// AllowOrigin is left empty for callers to inspect.
func (p *Prober) Probe(ctx context.Context, target string) Reachability {
	resp, err := p.do(ctx, http.MethodHead, target)
	if err == nil && (resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented) {
		util.Debugf(ctx, "HEAD %s rejected with %s, retrying with GET", target, resp.Status)
		resp.Body.Close()
		resp, err = p.do(ctx, http.MethodGet, target)
	} else if err != nil {
		util.Debugf(ctx, "HEAD %s failed: %s, retrying with GET", target, err)
		resp, err = p.do(ctx, http.MethodGet, target)
	}
	if err != nil {
		util.Debugf(ctx, "GET %s failed: %s", target, err)
		return Reachability{Reason: err.Error()}
	}
	// only the headers are needed
	resp.Body.Close()

	r := Reachability{
		Readable:    true,
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		AllowOrigin: resp.Header.Get("Access-Control-Allow-Origin"),
	}
	if r.AllowOrigin != "" && r.AllowOrigin != "*" && r.AllowOrigin != p.origin {
		r.Readable = false
		r.Reason = "Access-Control-Allow-Origin " + r.AllowOrigin + " does not allow " + p.origin
	}
	return r
}

func (p *Prober) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Origin", p.origin)
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", p.userAgent)
	return p.client.Do(req)
}
