package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestCopy(t *testing.T) {
	cb := &fakeClipboard{}
	require.NoError(t, Copy(cb, "sha384-ABC"))
	assert.Equal(t, "sha384-ABC", cb.text)
}

func TestCopyFailure(t *testing.T) {
	platform := errors.New("xclip not found")
	err := Copy(&fakeClipboard{err: platform}, "<script>")
	require.Error(t, err)

	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "<script>", ce.Text)
	assert.True(t, errors.Is(err, platform))
	assert.Equal(t, "failed to copy to clipboard: xclip not found", err.Error())
}

func TestCopyEmpty(t *testing.T) {
	cb := &fakeClipboard{}
	err := Copy(cb, "")
	assert.Error(t, err)
	assert.Equal(t, "", cb.text)
}
