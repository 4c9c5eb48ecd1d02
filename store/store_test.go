package store

import (
	"sync"
	"testing"

	"github.com/cdnjs/sri-tools/resource"

	"github.com/stretchr/testify/assert"
)

func TestBeginResets(t *testing.T) {
	var s Store
	assert.True(t, s.Snapshot().Empty())

	tok := s.Begin()
	r := Record{Source: "a.js", Digest: "sha384-A", Tag: "<script>", Kind: resource.Script}
	assert.True(t, s.Commit(tok, r))
	assert.Equal(t, r, s.Snapshot())

	s.Begin()
	assert.True(t, s.Snapshot().Empty())
}

func TestStaleCommitDiscarded(t *testing.T) {
	var s Store
	first := s.Begin()
	second := s.Begin()
	assert.True(t, second > first)
	assert.False(t, s.Current(first))
	assert.True(t, s.Current(second))

	newer := Record{Source: "new.js", Kind: resource.Script}
	assert.True(t, s.Commit(second, newer))

	// the slower, older operation finishes last
	assert.False(t, s.Commit(first, Record{Source: "old.js", Kind: resource.Script}))
	assert.Equal(t, newer, s.Snapshot())
}

func TestConcurrentOperations(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	tokens := make(chan Token, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens <- s.Begin()
		}()
	}
	wg.Wait()
	close(tokens)

	committed := 0
	for tok := range tokens {
		if s.Commit(tok, Record{Source: "x.js"}) {
			committed++
		}
	}
	assert.Equal(t, 1, committed)
}
