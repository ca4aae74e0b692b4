package kpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrParse      = errors.New("kpath parse error")
	ErrOutOfRange = errors.New("kpath out of range")
)

// Path is an ordered list of segments. The nil Path addresses the root.
//
// Paths are values: every method returning a Path returns fresh storage, so
// results may be appended to without affecting the receiver.
type Path []Segment

// Parse parses a path string into its segments.
//
// Syntax:
//   - "a.b" → fields a, b
//   - "a[0]" → field a, index 0
//   - "a[*]" → field a, wildcard index
//   - "[0].b" → index 0, field b
//   - "a.'b.c'" → field a, field "b.c"
//   - "" → root path (nil)
//
// Returns an error wrapping ErrParse if the syntax is invalid.
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	var p Path
	i := 0
	for i < len(s) {
		switch s[i] {
		case '[':
			j := strings.IndexByte(s[i+1:], ']')
			if j == -1 {
				return nil, parseErr(s, i, "expected '[' <index> ']'")
			}
			seg, err := parseIndex(s[i+1 : i+1+j])
			if err != nil {
				return nil, parseErr(s, i, err.Error())
			}
			p = append(p, seg)
			i += j + 2
		case '.':
			field, n, err := parseField(s[i+1:])
			if err != nil {
				return nil, parseErr(s, i+1, err.Error())
			}
			p = append(p, Field(field))
			i += n + 1
		default:
			if i != 0 {
				return nil, parseErr(s, i, "expected '.' or '['")
			}
			field, n, err := parseField(s)
			if err != nil {
				return nil, parseErr(s, i, err.Error())
			}
			p = append(p, Field(field))
			i += n
		}
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseErr(s string, at int, msg string) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrParse, s, at, msg)
}

// parseIndex parses an array index from a string like "0", "42", or "*".
func parseIndex(is string) (Segment, error) {
	if is == "*" {
		return All(), nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return Segment{}, fmt.Errorf("invalid array index %q", is)
	}
	return Index(int(u64)), nil
}

// parseField parses a property name at the start of frag, returning the name
// and the number of bytes consumed. Unquoted names stop at '.' or '['.
func parseField(frag string) (string, int, error) {
	if frag == "" {
		return "", 0, fmt.Errorf("expected field at end of string")
	}
	if q := frag[0]; q == '\'' || q == '"' {
		var b strings.Builder
		escaped := false
		for i := 1; i < len(frag); i++ {
			c := frag[i]
			switch {
			case escaped:
				b.WriteByte(c)
				escaped = false
			case c == '\\':
				escaped = true
			case c == q:
				return b.String(), i + 1, nil
			default:
				b.WriteByte(c)
			}
		}
		return "", 0, fmt.Errorf("unterminated quoted field")
	}
	n := strings.IndexAny(frag, ".[")
	if n == -1 {
		n = len(frag)
	}
	if n == 0 {
		return "", 0, fmt.Errorf("expected field, got %q", frag[0])
	}
	field := frag[:n]
	if strings.ContainsAny(field, "]'\"") {
		return "", 0, fmt.Errorf("unexpected character in field %q", field)
	}
	return field, n, nil
}

// String returns the path string representation.
// Example:
//
//	Path{Field("a"), Index(0), Field("b")} → "a[0].b"
//	Path{All(), Field("b")} → "[*].b"
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.Field != nil && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Depth returns the number of segments in p.
func (p Path) Depth() int {
	return len(p)
}

// Clone returns a copy of p backed by fresh storage.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	res := make(Path, len(p))
	copy(res, p)
	return res
}

// Append returns p extended by segs. p is not modified.
func (p Path) Append(segs ...Segment) Path {
	res := make(Path, len(p), len(p)+len(segs))
	copy(res, p)
	return append(res, segs...)
}

// Join returns p followed by all segments of q.
func (p Path) Join(q Path) Path {
	return p.Append(q...)
}

// DropTail returns p without its last n segments.
func (p Path) DropTail(n int) (Path, error) {
	if n < 0 || n > len(p) {
		return nil, fmt.Errorf("%w: cannot drop %d segments from %q", ErrOutOfRange, n, p.String())
	}
	return p[:len(p)-n].Clone(), nil
}

// TakeTail returns the last n segments of p.
func (p Path) TakeTail(n int) (Path, error) {
	if n < 0 || n > len(p) {
		return nil, fmt.Errorf("%w: cannot take %d segments from %q", ErrOutOfRange, n, p.String())
	}
	return p[len(p)-n:].Clone(), nil
}

// Parent returns the path without its last segment, or nil for paths of
// depth 0 or 1.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1].Clone()
}

// First returns the first segment; ok is false for the root path.
func (p Path) First() (seg Segment, ok bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[0], true
}

// Rest returns p without its first segment.
func (p Path) Rest() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[1:]
}

// Last returns the last segment, or the zero Segment for the root path.
func (p Path) Last() Segment {
	if len(p) == 0 {
		return Segment{}
	}
	return p[len(p)-1]
}

// HasPrefix reports whether p starts with prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if !p[i].Equal(prefix[i]) {
			return false
		}
	}
	return true
}

func (p Path) Equal(o Path) bool {
	return len(p) == len(o) && p.HasPrefix(o)
}

// Compare compares two paths lexicographically.
// Returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Path) Compare(other Path) int {
	for i := 0; i < len(p) && i < len(other); i++ {
		if c := compareSegment(p[i], other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	}
	return 0
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	pp, err := Parse(string(d))
	if err != nil {
		return err
	}
	*p = pp
	return nil
}
