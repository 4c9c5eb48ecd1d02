package util

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testContext(buf *bytes.Buffer, prefix string) context.Context {
	return ContextWithEntries(context.Background(), GetStandardEntries(prefix, log.New(buf, "", 0))...)
}

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	Printf(testContext(&buf, "lib.js"), "hashed %d bytes", 42)
	assert.Equal(t, "lib.js: hashed 42 bytes\n", buf.String())

	buf.Reset()
	Printf(testContext(&buf, ""), "no prefix")
	assert.Equal(t, "no prefix\n", buf.String())

	// no logger in the context
	Printf(context.Background(), "dropped")
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	ctx := testContext(&buf, "x")

	os.Unsetenv("DEBUG")
	Debugf(ctx, "hidden")
	assert.Empty(t, buf.String())

	os.Setenv("DEBUG", "1")
	defer os.Unsetenv("DEBUG")
	Debugf(ctx, "shown")
	assert.Equal(t, "x: shown\n", buf.String())
}

func TestWarnfWithoutSentry(t *testing.T) {
	var buf bytes.Buffer
	Warnf(testContext(&buf, "x"), "metrics down")
	assert.Equal(t, "x: warning: metrics down\n", buf.String())
}

func TestErrfOverride(t *testing.T) {
	var got string
	ctx := ContextWithEntries(context.Background(), ContextEntry{
		Key: Err,
		Value: LogFunc(func(ctx context.Context, format string, v ...interface{}) {
			got = format
		}),
	})
	Errf(ctx, "boom")
	assert.Equal(t, "boom", got)
}
