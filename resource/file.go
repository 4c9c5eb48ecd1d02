package resource

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// File is a locally selected resource, the equivalent of an upload.
type File struct {
	Name string
	Size int64
	open func() (io.ReadCloser, error)
}

// NewFile describes the file at path. The name is the base name of path
// unless name is non-empty.
func NewFile(path, name string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return &File{
		Name: name,
		Size: info.Size(),
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// NewMemoryFile wraps content already held in memory.
func NewMemoryFile(name string, content []byte) *File {
	return &File{
		Name: name,
		Size: int64(len(content)),
		open: func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// Open returns a reader over the file content.
func (f *File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, errors.Errorf("file %q has no content", f.Name)
	}
	return f.open()
}
