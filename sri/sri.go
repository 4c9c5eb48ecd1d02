package sri

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/cdnjs/sri-tools/util"

	"github.com/pkg/errors"
)

// Algorithm is a hash algorithm usable in an integrity attribute.
// Its value is the lower-case prefix of the integrity string.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA384 Algorithm = "sha384"
	SHA512 Algorithm = "sha512"

	// DefaultAlgorithm is used when none is configured.
	DefaultAlgorithm = SHA384
)

var hashers = map[Algorithm]func() hash.Hash{
	SHA256: sha256.New,
	SHA384: sha512.New384,
	SHA512: sha512.New,
}

// strength orders algorithms so that Verify can pick the strongest one
// present in a metadata list.
var strength = map[Algorithm]int{
	SHA256: 1,
	SHA384: 2,
	SHA512: 3,
}

// Algorithms lists the supported algorithms from weakest to strongest.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA384, SHA512}
}

// ParseAlgorithm accepts the usual spellings of an algorithm name,
// such as "SHA-384", "sha384" or "Sha384".
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	alg := Algorithm(name)
	if _, ok := hashers[alg]; !ok {
		names := make([]string, 0, len(hashers))
		for _, a := range Algorithms() {
			names = append(names, string(a))
		}
		return "", errors.Errorf("unsupported algorithm: %q, expected one of %s", s, strings.Join(names, ", "))
	}
	return alg, nil
}

// Digest is the result of hashing some content. Its string form is the
// integrity attribute value.
type Digest struct {
	Algorithm Algorithm
	Encoded   string
}

// String returns the integrity string, e.g. "sha384-oqVu...".
func (d Digest) String() string {
	return fmt.Sprintf("%s-%s", d.Algorithm, d.Encoded)
}

// Sum decodes the base64 part of the digest back into raw hash bytes.
func (d Digest) Sum() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Encoded)
}

// Calculate computes the integrity digest of b with alg.
func Calculate(b []byte, alg Algorithm) (Digest, error) {
	return CalculateReader(bytes.NewReader(b), alg)
}

// CalculateReader computes the integrity digest of everything read from r.
func CalculateReader(r io.Reader, alg Algorithm) (Digest, error) {
	newHash, ok := hashers[alg]
	if !ok {
		return Digest{}, errors.Errorf("unsupported algorithm: %q", alg)
	}
	h := newHash()
	if _, err := io.Copy(h, r); err != nil {
		return Digest{}, errors.Wrap(err, "failed to hash content")
	}
	encoded, err := Encode(h.Sum(nil))
	if err != nil {
		return Digest{}, err
	}
	return Digest{Algorithm: alg, Encoded: encoded}, nil
}

// CalculateFileSRI generates a Subresource Integrity digest for a particular file.
func CalculateFileSRI(filepath string, alg Algorithm) (Digest, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return Digest{}, errors.Wrapf(err, "failed to open %s", filepath)
	}
	defer f.Close()
	return CalculateReader(f, alg)
}

// Encode returns the padded standard base64 encoding of b. The input is
// fed to the encoder in util.EncodeChunkSize pieces so that buffers of any
// size can be encoded; the result is identical to a one-shot encoding.
func Encode(b []byte) (string, error) {
	var out strings.Builder
	out.Grow(base64.StdEncoding.EncodedLen(len(b)))

	enc := base64.NewEncoder(base64.StdEncoding, &out)
	for start := 0; start < len(b); start += util.EncodeChunkSize {
		end := start + util.EncodeChunkSize
		if end > len(b) {
			end = len(b)
		}
		if _, err := enc.Write(b[start:end]); err != nil {
			return "", errors.Wrap(err, "failed to encode digest")
		}
	}
	// flush any partial block and its padding
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "failed to encode digest")
	}
	return out.String(), nil
}

// Parse parses a single integrity string such as "sha512-abc=".
// Options following a '?' are ignored.
func Parse(s string) (Digest, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Digest{}, errors.Errorf("invalid integrity string: %q", s)
	}
	alg := Algorithm(strings.ToLower(parts[0]))
	if _, ok := hashers[alg]; !ok {
		return Digest{}, errors.Errorf("unsupported algorithm: %q", parts[0])
	}
	d := Digest{Algorithm: alg, Encoded: parts[1]}
	if _, err := d.Sum(); err != nil {
		return Digest{}, errors.Wrapf(err, "invalid base64 in %q", s)
	}
	return d, nil
}

// Verify checks b against an integrity metadata list: one or more
// whitespace separated integrity strings. Unparseable entries are skipped.
// Only entries using the strongest algorithm present are considered, and
// b matches if any of them does.
func Verify(b []byte, metadata string) (bool, error) {
	var best []Digest
	for _, token := range strings.Fields(metadata) {
		d, err := Parse(token)
		if err != nil {
			continue
		}
		switch {
		case len(best) == 0 || strength[d.Algorithm] > strength[best[0].Algorithm]:
			best = []Digest{d}
		case d.Algorithm == best[0].Algorithm:
			best = append(best, d)
		}
	}
	if len(best) == 0 {
		return false, errors.Errorf("no usable integrity metadata in %q", metadata)
	}

	actual, err := Calculate(b, best[0].Algorithm)
	if err != nil {
		return false, err
	}
	for _, expected := range best {
		if subtle.ConstantTimeCompare([]byte(actual.Encoded), []byte(expected.Encoded)) == 1 {
			return true, nil
		}
	}
	return false, nil
}
