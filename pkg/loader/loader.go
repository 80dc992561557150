// Package loader reads raw test blobs.
//
// A blob is a text file whose non-blank lines are fragments. In stateless
// mode the fragments interleave argument lines and expected lines; in
// stateful mode they come in (names, args, expected) triples.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sandrolain/leetcase/pkg/types"
)

// maxLineSize bounds a single fragment. Recorded inputs of large test cases
// easily exceed bufio's default token size.
const maxLineSize = 64 << 20

// Fragment is one non-blank line of a blob.
type Fragment struct {
	Line int // 1-based line number in the source
	Text string
}

// Blob is a parsed test file.
type Blob struct {
	Path      string
	Fragments []Fragment
}

// Parse reads fragments from r.
func Parse(r io.Reader) (*Blob, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	blob := &Blob{}
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		blob.Fragments = append(blob.Fragments, Fragment{Line: line, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read test data: %w", err)
	}
	return blob, nil
}

// ParseString reads fragments from s.
func ParseString(s string) *Blob {
	blob, _ := Parse(strings.NewReader(s))
	return blob
}

// LoadFile reads the blob at path.
func LoadFile(path string) (*Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open test data: %w", err)
	}
	defer f.Close()

	blob, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	blob.Path = path
	return blob, nil
}

// LoadDir reads every file in dir matching pattern (for example "*.txt"),
// sorted by name for consistent output.
func LoadDir(dir, pattern string) ([]*Blob, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var blobs []*Blob
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		blob, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, blob)
	}
	return blobs, nil
}

// Len returns the number of fragments.
func (b *Blob) Len() int {
	return len(b.Fragments)
}

// Cursor returns a cursor positioned at the first fragment.
func (b *Blob) Cursor() *Cursor {
	return &Cursor{fragments: b.Fragments}
}

// Cursor walks the fragments of a blob in order.
type Cursor struct {
	fragments []Fragment
	pos       int
}

// Next returns the next fragment.
func (c *Cursor) Next() (Fragment, bool) {
	if c.pos >= len(c.fragments) {
		return Fragment{}, false
	}
	f := c.fragments[c.pos]
	c.pos++
	return f, true
}

// Take returns the next n fragments. Running out part way is an F0103 error
// carrying the fragments read so far.
func (c *Cursor) Take(n int) ([]Fragment, error) {
	out := make([]Fragment, 0, n)
	for len(out) < n {
		f, ok := c.Next()
		if !ok {
			return out, types.Errorf(types.ErrUnexpectedEnd,
				"unexpected end of test data: wanted %d fragments, got %d", n, len(out))
		}
		out = append(out, f)
	}
	return out, nil
}

// Done reports whether every fragment was consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.fragments)
}

// Remaining returns the number of unread fragments.
func (c *Cursor) Remaining() int {
	return len(c.fragments) - c.pos
}
