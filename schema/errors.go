package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var ErrMissingForeignKey = errors.New("inverse-ref relationship has no foreign key")

// Error is a hard traversal failure.
type Error struct {
	Msg     string
	Context map[string]any
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	if len(e.Context) != 0 {
		b.WriteString(" (")
		for i, k := range slices.Sorted(maps.Keys(e.Context)) {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Context[k])
		}
		b.WriteByte(')')
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
