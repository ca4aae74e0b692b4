package schema

import "github.com/signadot/docschema/kpath"

// IsRequired reports whether every object on the way to p lists the next
// segment as required. A property that is not declared at all is reported
// as not required, and so is an array element. Below the last object or
// array node any remaining path is trivially required.
func IsRequired(s *Schema, p kpath.Path, r Resolver) bool {
	return isRequired(s, p, r, nil)
}

func isRequired(s *Schema, p kpath.Path, r Resolver, seen *visited) bool {
	seg, ok := p.First()
	if !ok {
		return true
	}
	if s == nil || seen.has(s.id) {
		return false
	}
	switch s.kind {
	case RefKind:
		t := r.ResolveRef(s.ref)
		if t == nil {
			return false
		}
		return isRequired(t, p, r, seen.with(s.id))
	case AllOfKind, OneOfKind:
		seen = seen.with(s.id)
		for _, alt := range s.alts {
			if isRequired(alt, p, r, seen) {
				return true
			}
		}
		return false
	case ObjectKind:
		if !seg.IsField() || !s.Requires(seg.Name()) {
			return false
		}
		if len(p) == 1 {
			return true
		}
		return isRequired(s.props[seg.Name()], p.Rest(), r, nil)
	case ArrayKind:
		if !seg.IsIndex() || len(p) == 1 {
			return false
		}
		return isRequired(s.items, p.Rest(), r, nil)
	}
	return true
}
