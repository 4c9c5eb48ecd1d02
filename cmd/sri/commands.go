package main

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/cdnjs/sri-tools/fetch"
	"github.com/cdnjs/sri-tools/generate"
	"github.com/cdnjs/sri-tools/resource"
	"github.com/cdnjs/sri-tools/sri"
	"github.com/cdnjs/sri-tools/util"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newURLCmd(opts *options) *cobra.Command {
	var noProbe bool
	cmd := &cobra.Command{
		Use:   "url <URL>",
		Short: "Fetch a remote script, stylesheet or wasm module and hash it",
		Long: `Fetch a remote resource and print its integrity string and tag.

The resource is probed first to check it can be read cross-origin. Whether
a browser may read it is decided by the server's CORS headers; the probe is
a best-effort check and the download can still fail. No timeout is applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, alg, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if noProbe {
				c.Probe = false
			}
			g := opts.newGenerator(cmd, c)

			_, err = g.Generate(ctx, generate.Request{Mode: generate.Remote, URL: args[0], Algorithm: alg})
			if err != nil {
				return err
			}
			return opts.show(ctx, cmd, g.Store)
		},
	}
	cmd.Flags().BoolVar(&noProbe, "no-probe", false, "skip the reachability probe")
	cmd.Flags().BoolVar(&opts.progress, "progress", isTerminal(os.Stderr), "show download progress")
	addCopyFlag(cmd, opts)
	return cmd
}

func newFileCmd(opts *options) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "file <PATH>",
		Short: "Hash a local script, stylesheet or wasm module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, alg, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			file, err := resource.NewFile(args[0], source)
			if err != nil {
				return err
			}
			g := opts.newGenerator(cmd, c)

			_, err = g.Generate(ctx, generate.Request{Mode: generate.Upload, File: file, Algorithm: alg})
			if err != nil {
				return err
			}
			return opts.show(ctx, cmd, g.Store)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "source reference to put in the tag instead of the file name")
	addCopyFlag(cmd, opts)
	return cmd
}

func newDirCmd(opts *options) *cobra.Command {
	var include, exclude []string
	cmd := &cobra.Command{
		Use:   "dir <DIR>",
		Short: "Hash every script, stylesheet and wasm module in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c, alg, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if len(include) > 0 {
				c.Include = include
			}
			if len(exclude) > 0 {
				c.Exclude = exclude
			}
			filter, err := c.Matchers()
			if err != nil {
				return err
			}

			entries, err := generate.Dir(ctx, args[0], filter, alg)
			if err != nil {
				return err
			}

			failed := 0
			out := make([]recordJSON, 0, len(entries))
			for _, e := range entries {
				r := toJSON(e.Record)
				if e.Err != nil {
					failed++
					r.Source = e.Path
					r.Error = e.Err.Error()
					util.Errf(ctx, "%s: %s", e.Path, e.Err)
				}
				out = append(out, r)
			}

			err = opts.render(cmd, out, func(w io.Writer) {
				for _, r := range out {
					if r.Error == "" {
						fmt.Fprintf(w, "%s %s\n", r.Integrity, r.Source)
					}
				}
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return errors.Errorf("%d of %d files failed", failed, len(entries))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&include, "include", nil, "only hash files matching these glob patterns")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "skip files matching these glob patterns")
	return cmd
}

func newCheckCmd(opts *options) *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "check <TAG>",
		Short: "Verify the integrity attribute of an existing <script> or <link> tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, _, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			info, err := resource.ParseTag(args[0])
			if err != nil {
				return err
			}
			if info.Integrity == "" {
				return errors.Errorf("<%s> tag has no integrity attribute", info.Kind)
			}

			target, err := resolveSource(base, info.Source)
			if err != nil {
				return err
			}

			content, err := fetch.NewFetcher(util.NewHTTPClient()).Fetch(ctx, target)
			if err != nil {
				return err
			}
			ok, err := sri.Verify(content, info.Integrity)
			if err != nil {
				return err
			}

			result := struct {
				Source    string `json:"source"`
				Integrity string `json:"integrity"`
				Valid     bool   `json:"valid"`
			}{target, info.Integrity, ok}
			err = opts.render(cmd, result, func(w io.Writer) {
				if ok {
					fmt.Fprintf(w, "OK %s\n", target)
				} else {
					fmt.Fprintf(w, "MISMATCH %s\n", target)
				}
			})
			if err != nil {
				return err
			}
			if !ok {
				return errors.Errorf("integrity of %s does not match", target)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base URL for tags with a relative source")
	return cmd
}

// resolveSource turns the tag's source into an absolute http(s) URL.
func resolveSource(base, source string) (string, error) {
	ref, err := url.Parse(source)
	if err != nil {
		return "", errors.Wrapf(err, "invalid source %q", source)
	}
	if !ref.IsAbs() {
		if base == "" {
			return "", errors.Errorf("source %q is relative, set --base", source)
		}
		b, err := url.Parse(base)
		if err != nil {
			return "", errors.Wrapf(err, "invalid base %q", base)
		}
		ref = b.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return "", errors.Errorf("unsupported protocol %q", ref.Scheme)
	}
	return ref.String(), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), util.Version)
		},
	}
}
