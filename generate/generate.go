// Package generate runs the hash pipeline: validation, reachability
// probing, fetching, digesting and tag synthesis, publishing the result
// to a store.Store.
package generate

import (
	"context"
	"net/url"

	"github.com/cdnjs/sri-tools/config"
	"github.com/cdnjs/sri-tools/fetch"
	"github.com/cdnjs/sri-tools/metrics"
	"github.com/cdnjs/sri-tools/resource"
	"github.com/cdnjs/sri-tools/sri"
	"github.com/cdnjs/sri-tools/store"
	"github.com/cdnjs/sri-tools/util"
	"github.com/cdnjs/sri-tools/validate"

	"github.com/pkg/errors"
)

// Mode selects where the resource comes from.
type Mode int

const (
	// Remote fetches the resource from its URL.
	Remote Mode = iota
	// Upload reads a local file.
	Upload
)

// Request is one hash operation.
type Request struct {
	Mode      Mode
	URL       string
	File      *resource.File
	Algorithm sri.Algorithm
}

// Prober checks reachability before a download.
type Prober interface {
	Probe(ctx context.Context, target string) fetch.Reachability
}

// Fetcher downloads a remote resource.
type Fetcher interface {
	Fetch(ctx context.Context, target string) ([]byte, error)
}

// Generator computes integrity records. Only the most recently started
// Generate call may publish its record.
type Generator struct {
	Store     *store.Store
	Metrics   *metrics.Reporter
	QueryKeys []string
	// Probe disables the reachability check when false.
	Probe bool

	prober  Prober
	fetcher Fetcher
}

// New creates a Generator with an empty store.
func New(p Prober, f Fetcher) *Generator {
	return &Generator{
		Store:     &store.Store{},
		QueryKeys: resource.DefaultQueryKeys,
		Probe:     true,
		prober:    p,
		fetcher:   f,
	}
}

// Configure applies the query keys and probe setting of c.
func (g *Generator) Configure(c *config.Config) {
	g.QueryKeys = c.QueryKeys
	g.Probe = c.Probe
}

// Generate runs req through the pipeline. The store is cleared first and
// only filled if every step succeeds and no newer operation has started
// meanwhile; otherwise ErrSuperseded is returned.
func (g *Generator) Generate(ctx context.Context, req Request) (store.Record, error) {
	token := g.Store.Begin()

	alg := req.Algorithm
	if alg == "" {
		alg = sri.DefaultAlgorithm
	}

	var (
		content []byte
		source  string
		verdict validate.Verdict
		version string
		err     error
	)

	switch req.Mode {
	case Remote:
		content, verdict, version, err = g.remote(ctx, req.URL)
		source = req.URL
	case Upload:
		content, verdict, err = g.upload(ctx, req.File)
		if req.File != nil {
			source = req.File.Name
		}
	default:
		err = errors.Errorf("unknown input mode %d", req.Mode)
	}
	if err != nil {
		return store.Record{}, err
	}

	kind, ok := resource.KindForExtension(verdict.Extension)
	if !ok {
		return store.Record{}, resource.UnsupportedKindError{Kind: resource.Kind(verdict.Extension)}
	}

	if !g.Store.Current(token) {
		util.Debugf(ctx, "skipping digest of %s, a newer operation started", source)
		return store.Record{}, ErrSuperseded
	}

	digest, err := sri.Calculate(content, alg)
	if err != nil {
		return store.Record{}, errors.Wrap(err, "failed to compute digest")
	}

	tag, err := resource.Tag(source, digest.String(), kind)
	if err != nil {
		return store.Record{}, err
	}

	rec := store.Record{
		Source:  source,
		Digest:  digest.String(),
		Tag:     tag,
		Kind:    kind,
		Size:    int64(len(content)),
		Version: version,
	}
	if !g.Store.Commit(token, rec) {
		util.Debugf(ctx, "discarding result for %s, a newer operation started", source)
		return store.Record{}, ErrSuperseded
	}

	if err := g.Metrics.SRIGenerated(ctx, string(kind), string(alg)); err != nil {
		util.Warnf(ctx, "failed to send metrics: %s", err)
	}
	return rec, nil
}

func (g *Generator) remote(ctx context.Context, raw string) ([]byte, validate.Verdict, string, error) {
	if raw == "" {
		return nil, validate.Verdict{}, "", g.reject(ctx, inputErrorf("no URL given"))
	}
	v := validate.URLWithKeys(raw, g.QueryKeys)
	if !v.Valid {
		return nil, v, "", g.reject(ctx, urlInputError(raw, g.QueryKeys))
	}

	if g.Probe {
		r := g.prober.Probe(ctx, raw)
		util.Debugf(ctx, "probe %s: readable=%t status=%d type=%q", raw, r.Readable, r.Status, r.ContentType)
		if !r.Readable {
			if err := g.Metrics.ProbeBlocked(ctx); err != nil {
				util.Warnf(ctx, "failed to send metrics: %s", err)
			}
			return nil, v, "", ReachabilityError{URL: raw, Reachability: r}
		}
	}

	content, err := g.fetcher.Fetch(ctx, raw)
	if err != nil {
		return nil, v, "", err
	}

	// validation already parsed raw successfully
	u, _ := url.Parse(raw)
	return content, v, resource.VersionFromURL(u), nil
}

func (g *Generator) upload(ctx context.Context, f *resource.File) ([]byte, validate.Verdict, error) {
	v := validate.File(f)
	if !v.Valid {
		return nil, v, g.reject(ctx, fileInputError(f))
	}
	// an empty selection is no selection
	if f.Size == 0 {
		return nil, v, g.reject(ctx, inputErrorf("%s is empty", f.Name))
	}
	content, err := fetch.ReadFile(f)
	if err != nil {
		return nil, v, err
	}
	if len(content) == 0 {
		return nil, v, g.reject(ctx, inputErrorf("%s is empty", f.Name))
	}
	return content, v, nil
}

func (g *Generator) reject(ctx context.Context, err error) error {
	util.Debugf(ctx, "rejected input: %s", err)
	if mErr := g.Metrics.InputRejected(ctx); mErr != nil {
		util.Warnf(ctx, "failed to send metrics: %s", mErr)
	}
	return err
}
