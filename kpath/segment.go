package kpath

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path. Exactly one of Field, Index or IndexAll is
// set.
type Segment struct {
	Field    *string // Object property name
	Index    *int    // Array index
	IndexAll bool    // Array wildcard [*]
}

// Field returns a property segment.
func Field(name string) Segment {
	return Segment{Field: &name}
}

// Index returns an array index segment.
func Index(i int) Segment {
	return Segment{Index: &i}
}

// All returns the array wildcard segment.
func All() Segment {
	return Segment{IndexAll: true}
}

func (s Segment) IsField() bool {
	return s.Field != nil
}

// IsIndex reports whether s addresses array elements, either by index or by
// wildcard.
func (s Segment) IsIndex() bool {
	return s.Index != nil || s.IndexAll
}

// Name returns the field name, or "" for index segments.
func (s Segment) Name() string {
	if s.Field == nil {
		return ""
	}
	return *s.Field
}

// String returns the canonical representation of this single segment.
// Examples:
//   - Field("a") → "a"
//   - Field("a.b") → "'a.b'"
//   - Index(0) → "[0]"
//   - All() → "[*]"
func (s Segment) String() string {
	switch {
	case s.Field != nil:
		return quoteField(*s.Field)
	case s.IndexAll:
		return "[*]"
	case s.Index != nil:
		return "[" + strconv.Itoa(*s.Index) + "]"
	}
	return ""
}

func (s Segment) Equal(o Segment) bool {
	return compareSegment(s, o) == 0
}

// compareSegment orders Field < Index < IndexAll.
func compareSegment(a, b Segment) int {
	if a.Field != nil && b.Field != nil {
		return strings.Compare(*a.Field, *b.Field)
	}
	if a.Field != nil {
		return -1
	}
	if b.Field != nil {
		return 1
	}
	if a.Index != nil && b.Index != nil {
		switch {
		case *a.Index < *b.Index:
			return -1
		case *a.Index > *b.Index:
			return 1
		}
		return 0
	}
	if a.Index != nil {
		return -1
	}
	if b.Index != nil {
		return 1
	}
	if a.IndexAll == b.IndexAll {
		return 0
	}
	if a.IndexAll {
		return 1
	}
	return -1
}

func needsQuote(field string) bool {
	if field == "" {
		return true
	}
	return strings.ContainsAny(field, ".[]'\" \t\n")
}

func quoteField(field string) string {
	if !needsQuote(field) {
		return field
	}
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == '\'' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('\'')
	return b.String()
}
