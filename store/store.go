// Package store holds the result of the most recent hash operation.
package store

import (
	"sync"

	"github.com/cdnjs/sri-tools/resource"
)

// Record is a computed integrity string with its embedding tag.
type Record struct {
	Source  string
	Digest  string
	Tag     string
	Kind    resource.Kind
	Size    int64
	Version string
}

// Empty reports whether nothing has been recorded.
func (r Record) Empty() bool {
	return r == Record{}
}

// Token identifies one hash operation. Only the operation holding the
// latest token may commit.
type Token uint64

// Store keeps a single live Record. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	latest Token
	record Record
}

// Begin starts a new operation: the record is cleared and any operation
// started earlier loses the right to commit.
func (s *Store) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	s.record = Record{}
	return s.latest
}

// Commit stores r if t is still the latest token and reports whether it did.
func (s *Store) Commit(t Token, r Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.latest {
		return false
	}
	s.record = r
	return true
}

// Current reports whether t is still the latest token.
func (s *Store) Current(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t == s.latest
}

// Snapshot returns a copy of the live record.
func (s *Store) Snapshot() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}
