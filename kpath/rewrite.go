package kpath

import (
	"fmt"
	"reflect"
)

// PathField is the field name Rewrite replaces.
const PathField = "path"

// Transformer maps a path string to its replacement.
type Transformer func(path string) (string, error)

// Prefixer returns a Transformer placing prefix in front of every path.
func Prefixer(prefix Path) Transformer {
	return func(s string) (string, error) {
		p, err := Parse(s)
		if err != nil {
			return "", err
		}
		return prefix.Join(p).String(), nil
	}
}

// Rebaser returns a Transformer replacing a leading from with to. Paths not
// under from are returned unchanged.
func Rebaser(from, to Path) Transformer {
	return func(s string) (string, error) {
		p, err := Parse(s)
		if err != nil {
			return "", err
		}
		if !p.HasPrefix(from) {
			return s, nil
		}
		return to.Join(p[len(from):]).String(), nil
	}
}

// ancestors is an immutable list of the containers on the current branch,
// each paired with the copy being built for it.
type ancestors struct {
	key    containerKey
	copy   any
	parent *ancestors
}

type containerKey struct {
	ptr uintptr
	n   int
}

func (a *ancestors) find(k containerKey) (any, bool) {
	for x := a; x != nil; x = x.parent {
		if x.key == k {
			return x.copy, true
		}
	}
	return nil, false
}

// Rewrite returns a copy of v in which every string field named "path" of a
// nested map[string]any has been replaced by fn applied to it. Values of any
// other type are shared with v, which is left untouched.
//
// v may be cyclic: a container met again while it is still being copied is
// replaced by its copy, so the result has the same cycles as v.
func Rewrite(v any, fn Transformer) (any, error) {
	return rewrite(v, fn, nil)
}

func rewrite(v any, fn Transformer, anc *ancestors) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		if x == nil {
			return x, nil
		}
		k := containerKey{ptr: reflect.ValueOf(x).Pointer()}
		if c, ok := anc.find(k); ok {
			return c, nil
		}
		res := make(map[string]any, len(x))
		anc = &ancestors{key: k, copy: res, parent: anc}
		for field, e := range x {
			if s, ok := e.(string); ok && field == PathField {
				ns, err := fn(s)
				if err != nil {
					return nil, fmt.Errorf("error rewriting path %q: %w", s, err)
				}
				res[field] = ns
				continue
			}
			ne, err := rewrite(e, fn, anc)
			if err != nil {
				return nil, err
			}
			res[field] = ne
		}
		return res, nil
	case []any:
		if len(x) == 0 {
			return x, nil
		}
		k := containerKey{ptr: reflect.ValueOf(x).Pointer(), n: len(x)}
		if c, ok := anc.find(k); ok {
			return c, nil
		}
		res := make([]any, len(x))
		anc = &ancestors{key: k, copy: res, parent: anc}
		for i, e := range x {
			ne, err := rewrite(e, fn, anc)
			if err != nil {
				return nil, err
			}
			res[i] = ne
		}
		return res, nil
	}
	return v, nil
}
