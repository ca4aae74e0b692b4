package schema

import "github.com/signadot/docschema/kpath"

// FindTransient returns the paths of all properties reachable from s whose
// effective transient flag is true. A flag set on a $ref node overrides the
// one of the schema it references, including the alternatives of a
// referenced allOf or oneOf. Each path is reported once. The root itself is
// never reported.
//
// Only LimitTo and MaxDepth apply; traversal is otherwise the same as for
// FindRelationships.
func FindTransient(s *Schema, r Resolver, opts ...WalkOption) []kpath.Path {
	var res []kpath.Path
	seen := map[string]bool{}
	w := &walker{r: r, opts: walkOptions(opts)}
	w.visit = func(f *frame, t *target) (bool, error) {
		if f.outer != nil && f.outer.transient != nil {
			return false, nil
		}
		if t.transient == nil || !*t.transient {
			return false, nil
		}
		if k := f.path.String(); !seen[k] {
			seen[k] = true
			res = append(res, f.path)
		}
		return false, nil
	}
	// visit never fails
	_ = w.walk(s)
	return res
}
