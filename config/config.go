package config

import (
	"context"
	"encoding/json"
	"io/ioutil"

	"github.com/cdnjs/sri-tools/resource"
	"github.com/cdnjs/sri-tools/sri"
	"github.com/cdnjs/sri-tools/util"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Config holds the user's defaults.
type Config struct {
	Algorithm string   `json:"algorithm"`
	QueryKeys []string `json:"queryKeys"`
	Origin    string   `json:"origin"`
	Probe     bool     `json:"probe"`
	Include   []string `json:"include"`
	Exclude   []string `json:"exclude"`
}

// InvalidSchemaError represents a configuration file that does not
// match Schema.
type InvalidSchemaError struct {
	Result *gojsonschema.Result
}

// Error is used to satisfy the error interface.
func (i InvalidSchemaError) Error() string {
	msg := "invalid configuration"
	for _, resErr := range i.Result.Errors() {
		msg += "; " + resErr.String()
	}
	return msg
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Algorithm: string(sri.DefaultAlgorithm),
		QueryKeys: append([]string(nil), resource.DefaultQueryKeys...),
		Origin:    util.DefaultOrigin,
		Probe:     true,
	}
}

// Read parses a JSON configuration file. An empty path yields Default().
func Read(ctx context.Context, file string) (*Config, error) {
	if file == "" {
		return Default(), nil
	}
	bytes, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", file)
	}
	util.Debugf(ctx, "config %s", string(bytes))

	c, err := Parse(bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", file)
	}
	return c, nil
}

// Parse validates bytes against Schema and overlays them on Default().
func Parse(bytes []byte) (*Config, error) {
	res, err := Schema.Validate(gojsonschema.NewBytesLoader(bytes))
	if err != nil {
		// invalid JSON
		return nil, err
	}
	if !res.Valid() {
		return nil, InvalidSchemaError{res}
	}

	c := Default()
	if err := json.Unmarshal(bytes, c); err != nil {
		return nil, err
	}
	if _, err := c.Matchers(); err != nil {
		return nil, err
	}
	return c, nil
}

// GetAlgorithm returns the configured algorithm.
func (c *Config) GetAlgorithm() (sri.Algorithm, error) {
	return sri.ParseAlgorithm(c.Algorithm)
}

// Filter decides which files directory mode hashes.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// Matchers compiles the include and exclude patterns.
func (c *Config) Matchers() (*Filter, error) {
	f := &Filter{}
	for _, p := range c.Include {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid include pattern %q", p)
		}
		f.include = append(f.include, g)
	}
	for _, p := range c.Exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid exclude pattern %q", p)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// Match reports whether the relative path p passes the filter. With no
// include patterns every path is included.
func (f *Filter) Match(p string) bool {
	for _, g := range f.exclude {
		if g.Match(p) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(p) {
			return true
		}
	}
	return false
}
