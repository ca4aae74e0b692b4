package schema

import (
	"github.com/signadot/docschema/debug"
	"github.com/signadot/docschema/kpath"
)

type walkOpts struct {
	storages map[Storage]bool
	limit    kpath.Path
	limited  bool
	maxDepth int
	depthSet bool
}

// WalkOption configures FindRelationships and FindTransient.
type WalkOption func(*walkOpts)

// Storages restricts reported relationships to the given storage classes.
func Storages(ss ...Storage) WalkOption {
	return func(o *walkOpts) {
		o.storages = make(map[Storage]bool, len(ss))
		for _, s := range ss {
			o.storages[s] = true
		}
	}
}

// LimitTo restricts traversal to the nodes along p. Traversal stops once p
// is consumed.
func LimitTo(p kpath.Path) WalkOption {
	return func(o *walkOpts) {
		o.limit = p
		o.limited = true
	}
}

// MaxDepth bounds traversal when no LimitTo is given. Each property step,
// items step and $ref hop costs one unit of depth.
func MaxDepth(n int) WalkOption {
	return func(o *walkOpts) {
		o.maxDepth = n
		o.depthSet = true
	}
}

func walkOptions(opts []WalkOption) walkOpts {
	o := walkOpts{}
	for _, f := range opts {
		f(&o)
	}
	return o
}

func (o *walkOpts) allows(s Storage) bool {
	return o.storages == nil || o.storages[s]
}

// visited is an immutable list of node ids. Extending it never affects
// lists held by sibling branches.
type visited struct {
	id     ID
	parent *visited
}

func (v *visited) has(id ID) bool {
	for ; v != nil; v = v.parent {
		if v.id == id {
			return true
		}
	}
	return false
}

func (v *visited) with(id ID) *visited {
	return &visited{id: id, parent: v}
}

// target is a node seen through its chain of $ref hops.
type target struct {
	content *Schema
	ref     string
	hops    int

	entityType string
	foreignKey string
	storage    Storage
	transient  *bool
}

// follow resolves the $ref chain starting at n. Values set closer to n take
// precedence, and values of outer, the composition n is an alternative of,
// take precedence over all of them. content is nil if the chain is
// unresolved or loops.
func follow(n *Schema, r Resolver, outer *target) *target {
	t := &target{}
	if outer != nil {
		t.ref = outer.ref
		t.entityType = outer.entityType
		t.foreignKey = outer.foreignKey
		t.storage = outer.storage
		t.transient = outer.transient
	}
	var seen *visited
	for cur := n; ; {
		t.absorb(cur)
		if cur.kind != RefKind {
			t.content = cur
			return t
		}
		if seen.has(cur.id) {
			return t
		}
		seen = seen.with(cur.id)
		if t.ref == "" {
			t.ref = cur.ref
		}
		next := r.ResolveRef(cur.ref)
		if next == nil {
			return t
		}
		t.hops++
		cur = next
	}
}

func (t *target) absorb(s *Schema) {
	if t.entityType == "" {
		t.entityType = s.entityType
	}
	if t.foreignKey == "" {
		t.foreignKey = s.foreignKey
	}
	if t.storage == StorageNone {
		t.storage = s.storage
	}
	if t.transient == nil {
		t.transient = s.transient
	}
}

type frame struct {
	path  kpath.Path
	limit kpath.Path
	depth int

	// segments since the last document boundary, 0 for its children
	fromParent int
	// an array was crossed since the last document boundary
	many bool
	// the children of this frame start a new document
	reset bool

	branch *visited
	local  *visited

	// the composition this node is an alternative of, already visited at
	// the same path
	outer *target
}

func (f *frame) child(seg kpath.Segment, depth int, limit kpath.Path) frame {
	c := frame{
		path:   f.path.Append(seg),
		limit:  limit,
		depth:  depth + 1,
		branch: f.branch,
	}
	if f.reset {
		c.many = seg.IsIndex()
	} else {
		c.fromParent = f.fromParent + 1
		c.many = f.many || seg.IsIndex()
	}
	return c
}

// visitFunc is called for every node entered below the root. It reports
// whether the node is a document boundary. For an alternative of a
// composition, f.outer holds what was already seen at the same path.
type visitFunc func(f *frame, t *target) (bool, error)

type walker struct {
	r     Resolver
	opts  walkOpts
	visit visitFunc
}

func (w *walker) walk(s *Schema) error {
	return w.enter(s, frame{limit: w.opts.limit, reset: true})
}

func (w *walker) enter(n *Schema, f frame) error {
	if n == nil {
		return nil
	}
	t := follow(n, w.r, f.outer)
	if t.content == nil {
		if debug.Walk() {
			debug.Logf("walk %q: unresolved %s\n", f.path.String(), n)
		}
		return nil
	}
	if len(f.path) != 0 {
		boundary, err := w.visit(&f, t)
		if err != nil {
			return err
		}
		f.reset = f.reset || boundary
	}
	c := t.content
	depth := f.depth + t.hops
	if debug.Walk() {
		debug.Logf("walk %q depth %d: %s\n", f.path.String(), depth, c)
	}
	if f.local.has(c.id) {
		return nil
	}
	f.local = f.local.with(c.id)
	if !w.opts.limited && !w.opts.depthSet {
		if f.branch.has(c.id) {
			return nil
		}
		f.branch = f.branch.with(c.id)
	}

	switch c.kind {
	case AllOfKind, OneOfKind:
		for _, alt := range c.alts {
			af := f
			af.depth = depth
			af.outer = t
			if err := w.enter(alt, af); err != nil {
				return err
			}
		}
		return nil
	case ObjectKind, ArrayKind:
	default:
		return nil
	}

	if w.opts.limited {
		if len(f.limit) == 0 {
			return nil
		}
	} else if w.opts.depthSet && depth+1 > w.opts.maxDepth {
		return nil
	}

	if c.kind == ArrayKind {
		var limit kpath.Path
		seg := kpath.All()
		if w.opts.limited {
			if !f.limit[0].IsIndex() {
				return nil
			}
			seg, limit = f.limit[0], f.limit[1:]
		}
		return w.enter(c.items, f.child(seg, depth, limit))
	}

	if w.opts.limited {
		seg := f.limit[0]
		if !seg.IsField() {
			return nil
		}
		p, ok := c.props[seg.Name()]
		if !ok {
			return nil
		}
		return w.enter(p, f.child(seg, depth, f.limit[1:]))
	}
	for _, name := range c.PropertyNames() {
		if err := w.enter(c.props[name], f.child(kpath.Field(name), depth, nil)); err != nil {
			return err
		}
	}
	return nil
}
