package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive 1-based range of test case indices. A zero bound is
// open: the zero Range selects every case.
type Range struct {
	Start int
	End   int
}

// All returns the range selecting every case.
func All() Range {
	return Range{}
}

// Contains reports whether case index i is selected.
func (r Range) Contains(i int) bool {
	if r.Start > 0 && i < r.Start {
		return false
	}
	if r.End > 0 && i > r.End {
		return false
	}
	return true
}

// IsAll reports whether the range selects every case.
func (r Range) IsAll() bool {
	return r.Start <= 1 && r.End == 0
}

// String renders the range in the form ParseRange accepts.
func (r Range) String() string {
	switch {
	case r.IsAll():
		return "all"
	case r.Start == r.End:
		return strconv.Itoa(r.Start)
	case r.End == 0:
		return fmt.Sprintf("%d-", r.Start)
	default:
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	}
}

// ParseRange parses "3", "2-4", "2:4", "[2,4]", "2-" (open end) or
// "all"/"" (every case).
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" || strings.EqualFold(s, "all") {
		return Range{}, nil
	}

	sep := strings.IndexAny(s, "-:,")
	if sep < 0 {
		n, err := bound(s)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		return Range{Start: n, End: n}, nil
	}

	start, err := bound(s[:sep])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range start %q: %w", s, err)
	}
	r := Range{Start: start}
	if rest := strings.TrimSpace(s[sep+1:]); rest != "" {
		end, err := bound(rest)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range end %q: %w", s, err)
		}
		if end < start {
			return Range{}, fmt.Errorf("invalid range %q: end before start", s)
		}
		r.End = end
	}
	return r, nil
}

func bound(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("case indices start at 1, got %d", n)
	}
	return n, nil
}
