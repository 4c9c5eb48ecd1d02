package generate

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/cdnjs/sri-tools/config"
	"github.com/cdnjs/sri-tools/resource"
	"github.com/cdnjs/sri-tools/sri"
	"github.com/cdnjs/sri-tools/store"
	"github.com/cdnjs/sri-tools/util"

	"github.com/pkg/errors"
)

// Entry is the outcome for one file in directory mode.
type Entry struct {
	Path   string
	Record store.Record
	Err    error
}

type dirJob struct {
	Ctx  context.Context
	Base string
	Path string
	Kind resource.Kind
}

func dirWorker(wg *sync.WaitGroup, jobs <-chan dirJob, alg sri.Algorithm, results chan<- Entry) {
	for j := range jobs {
		results <- hashFile(j, alg)
		wg.Done()
	}
}

func hashFile(j dirJob, alg sri.Algorithm) Entry {
	e := Entry{Path: j.Path}
	digest, err := sri.CalculateFileSRI(filepath.Join(j.Base, filepath.FromSlash(j.Path)), alg)
	if err != nil {
		e.Err = err
		return e
	}
	tag, err := resource.Tag(j.Path, digest.String(), j.Kind)
	if err != nil {
		e.Err = err
		return e
	}
	util.Debugf(j.Ctx, "sri %s -> %s", j.Path, digest)
	e.Record = store.Record{Source: j.Path, Digest: digest.String(), Tag: tag, Kind: j.Kind}
	return e
}

// Dir hashes every allow-listed file below base that passes filter,
// using one worker per CPU. Entries are sorted by path; per-file failures
// are reported in Entry.Err. The generator's store is not touched.
func Dir(ctx context.Context, base string, filter *config.Filter, alg sri.Algorithm) ([]Entry, error) {
	if alg == "" {
		alg = sri.DefaultAlgorithm
	}
	files, err := util.ListFiles(ctx, base)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list files in %s", base)
	}

	jobs := make(chan dirJob)
	results := make(chan Entry, len(files))
	var wg sync.WaitGroup

	for w := 1; w <= runtime.NumCPU(); w++ {
		go dirWorker(&wg, jobs, alg, results)
	}

	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		kind, ok := resource.KindForExtension(resource.ExtensionFromFilename(f))
		if !ok {
			continue
		}
		if filter != nil && !filter.Match(f) {
			util.Debugf(ctx, "filtered out %s", f)
			continue
		}
		wg.Add(1)
		jobs <- dirJob{Ctx: ctx, Base: base, Path: f, Kind: kind}
	}
	close(jobs)
	wg.Wait()
	close(results)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for e := range results {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
