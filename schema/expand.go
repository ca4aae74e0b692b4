package schema

import (
	"context"
	"fmt"

	"github.com/signadot/docschema/debug"
)

// Expand returns a copy of the graph rooted at s in which every $ref node
// is replaced by the schema l loads for it. s is not modified.
//
// Cycles through references become cycles in the result, so the result may
// not be encodable without Encode. Keywords given next to a $ref, such as
// storage or entityType, are carried over onto the replacement. References
// l cannot resolve are left in place. Errors from l abort the expansion.
func Expand(ctx context.Context, s *Schema, l Loader) (*Schema, error) {
	e := &expander{
		ctx:    ctx,
		l:      l,
		out:    map[ID]*Schema{},
		loaded: map[string]*Schema{},
	}
	return e.expand(s)
}

type expander struct {
	ctx context.Context
	l   Loader
	// input id -> output node
	out    map[ID]*Schema
	loaded map[string]*Schema
}

func (e *expander) expand(s *Schema) (*Schema, error) {
	if s == nil {
		return nil, nil
	}
	if o, ok := e.out[s.id]; ok {
		return o, nil
	}
	if s.kind == RefKind {
		return e.expandRef(s)
	}
	return e.expandNode(s.id, s)
}

// expandNode copies src, registers the copy under key and then expands the
// children of src into it.
func (e *expander) expandNode(key ID, src *Schema) (*Schema, error) {
	o := src.clone()
	e.out[key] = o
	var err error
	for i, alt := range src.alts {
		if o.alts[i], err = e.expand(alt); err != nil {
			return nil, err
		}
	}
	for name, p := range src.props {
		if o.props[name], err = e.expand(p); err != nil {
			return nil, err
		}
	}
	if o.items, err = e.expand(src.items); err != nil {
		return nil, err
	}
	return o, nil
}

func (e *expander) expandRef(s *Schema) (*Schema, error) {
	chain := []*Schema{s}
	seen := (*visited)(nil).with(s.id)
	cur := s
	for {
		t, err := e.load(cur.ref)
		if err != nil {
			return nil, err
		}
		if t == nil || seen.has(t.id) {
			if debug.Expand() {
				debug.Logf("expand: leaving %s unresolved\n", s)
			}
			return s, nil
		}
		if t.kind != RefKind {
			cur = t
			break
		}
		seen = seen.with(t.id)
		chain = append(chain, t)
		cur = t
	}
	extended := false
	for _, r := range chain {
		extended = extended || r.hasAnnotations()
	}
	if !extended {
		o, err := e.expand(cur)
		if err != nil {
			return nil, err
		}
		e.out[s.id] = o
		return o, nil
	}
	o, err := e.expandNode(s.id, cur)
	if err != nil {
		return nil, err
	}
	for i := len(chain) - 1; i >= 0; i-- {
		o.overlay(chain[i])
	}
	return o, nil
}

func (e *expander) load(ref string) (*Schema, error) {
	if t, ok := e.loaded[ref]; ok {
		return t, nil
	}
	if err := e.ctx.Err(); err != nil {
		return nil, err
	}
	t, err := e.l.LoadRef(e.ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("error loading %q: %w", ref, err)
	}
	if debug.Expand() {
		debug.Logf("expand: loaded %q -> %v\n", ref, t)
	}
	e.loaded[ref] = t
	return t, nil
}
