package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cdnjs/sri-tools/clipboard"
	"github.com/cdnjs/sri-tools/config"
	"github.com/cdnjs/sri-tools/fetch"
	"github.com/cdnjs/sri-tools/generate"
	"github.com/cdnjs/sri-tools/metrics"
	"github.com/cdnjs/sri-tools/sri"
	"github.com/cdnjs/sri-tools/store"
	"github.com/cdnjs/sri-tools/util"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// options shared by the commands.
type options struct {
	configPath string
	algorithm  string
	json       bool
	copy       string
	progress   bool

	// overridable in tests
	clipboard clipboard.Writer
	metrics   *metrics.Reporter
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithOptions(&options{
		clipboard: clipboard.System,
		metrics:   metrics.New("", util.GetMetricsToken()),
	})
}

func newRootCmdWithOptions(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "sri",
		Short:         "Compute Subresource Integrity hashes and embedding tags",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", util.GetConfigPath(), "path to a JSON configuration file")
	flags.StringVarP(&opts.algorithm, "algorithm", "a", "", "hash algorithm: sha256, sha384 or sha512 (default from config, sha384)")
	flags.BoolVar(&opts.json, "json", false, "print results as JSON")

	root.AddCommand(
		newURLCmd(opts),
		newFileCmd(opts),
		newDirCmd(opts),
		newCheckCmd(opts),
		newVersionCmd(),
	)
	return root
}

// addCopyFlag registers --copy; a bare --copy copies the tag.
func addCopyFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.copy, "copy", "", `copy to the clipboard: --copy for the tag, --copy=digest for the integrity string`)
	cmd.Flags().Lookup("copy").NoOptDefVal = "tag"
}

// setup reads the configuration and resolves the algorithm flag against it.
func (o *options) setup(cmd *cobra.Command) (context.Context, *config.Config, sri.Algorithm, error) {
	ctx := util.ContextWithName(cmd.Context(), cmd.Name())

	c, err := config.Read(ctx, o.configPath)
	if err != nil {
		return nil, nil, "", err
	}
	if o.algorithm != "" {
		c.Algorithm = o.algorithm
	}
	alg, err := c.GetAlgorithm()
	if err != nil {
		return nil, nil, "", err
	}
	return ctx, c, alg, nil
}

func (o *options) newGenerator(cmd *cobra.Command, c *config.Config) *generate.Generator {
	client := util.NewHTTPClient()
	f := fetch.NewFetcher(client)
	if o.progress {
		f.NewProgress = func(size int64) io.Writer {
			return progressbar.NewOptions64(size,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("downloading"),
				progressbar.OptionShowBytes(true),
				progressbar.OptionClearOnFinish(),
			)
		}
	}
	g := generate.New(fetch.NewProber(client, c.Origin), f)
	g.Configure(c)
	g.Metrics = o.metrics
	return g
}

type recordJSON struct {
	Source    string `json:"source"`
	Kind      string `json:"kind"`
	Integrity string `json:"integrity"`
	Tag       string `json:"tag"`
	Size      int64  `json:"size,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

func toJSON(r store.Record) recordJSON {
	return recordJSON{
		Source:    r.Source,
		Kind:      string(r.Kind),
		Integrity: r.Digest,
		Tag:       r.Tag,
		Size:      r.Size,
		Version:   r.Version,
	}
}

func (o *options) render(cmd *cobra.Command, v interface{}, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if o.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
	text(w)
	return nil
}

// show renders the store's snapshot and handles --copy.
func (o *options) show(ctx context.Context, cmd *cobra.Command, s *store.Store) error {
	r := s.Snapshot()
	if r.Empty() {
		return errors.New("no result to show")
	}
	err := o.render(cmd, toJSON(r), func(w io.Writer) {
		fmt.Fprintf(w, "integrity: %s\n", r.Digest)
		if r.Version != "" {
			fmt.Fprintf(w, "version:   %s\n", r.Version)
		}
		fmt.Fprintf(w, "tag:       %s\n", r.Tag)
	})
	if err != nil {
		return err
	}
	return o.copyRecord(ctx, cmd, r)
}

func (o *options) copyRecord(ctx context.Context, cmd *cobra.Command, r store.Record) error {
	var text string
	switch o.copy {
	case "":
		return nil
	case "tag":
		text = r.Tag
	case "digest":
		text = r.Digest
	default:
		return fmt.Errorf(`--copy must be "tag" or "digest", got %q`, o.copy)
	}
	if err := clipboard.Copy(o.clipboard, text); err != nil {
		// the record stays valid; the user can copy it from the output
		util.Debugf(ctx, "clipboard: %s", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "%s; copy it from the output above\n", err)
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "copied %s to clipboard\n", o.copy)
	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
