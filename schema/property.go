package schema

import "github.com/signadot/docschema/kpath"

// FindProperty returns the schema node addressed by p inside s, or nil.
//
// References are resolved through r with the same remaining path. The
// alternatives of an allOf are searched last to first, so that the last
// alternative declaring a property wins; those of a oneOf are searched in
// order. Array nodes are entered with an index or wildcard segment.
func FindProperty(s *Schema, p kpath.Path, r Resolver) *Schema {
	return findProperty(s, p, r, nil)
}

// seen holds the reference and composition nodes entered since the last
// path step.
func findProperty(s *Schema, p kpath.Path, r Resolver, seen *visited) *Schema {
	if s == nil || seen.has(s.id) {
		return nil
	}
	switch s.kind {
	case RefKind:
		t := r.ResolveRef(s.ref)
		if t == nil {
			return nil
		}
		return findProperty(t, p, r, seen.with(s.id))
	case AllOfKind:
		seen = seen.with(s.id)
		for i := len(s.alts) - 1; i >= 0; i-- {
			if res := findProperty(s.alts[i], p, r, seen); res != nil {
				return res
			}
		}
		return nil
	case OneOfKind:
		seen = seen.with(s.id)
		for _, alt := range s.alts {
			if res := findProperty(alt, p, r, seen); res != nil {
				return res
			}
		}
		return nil
	}
	seg, ok := p.First()
	if !ok {
		return s
	}
	switch s.kind {
	case ObjectKind:
		if !seg.IsField() {
			return nil
		}
		return findProperty(s.props[seg.Name()], p.Rest(), r, nil)
	case ArrayKind:
		if !seg.IsIndex() {
			return nil
		}
		return findProperty(s.items, p.Rest(), r, nil)
	}
	return nil
}
