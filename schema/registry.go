package schema

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/signadot/docschema/debug"
	"github.com/signadot/docschema/kpath"
)

// Translator maps a $ref string to a registry id.
type Translator func(ref string) string

// TrimFragment translates fragment references to their last component:
// "#Person" and "#/definitions/Person" both become "Person". Other
// references are returned as is.
func TrimFragment(ref string) string {
	frag, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return ref
	}
	if i := strings.LastIndexByte(frag, '/'); i != -1 {
		return frag[i+1:]
	}
	return frag
}

type RegistryOption func(*Registry)

// WithTranslator sets the translator used by ResolveRef. The default is the
// identity.
func WithTranslator(t Translator) RegistryOption {
	return func(r *Registry) { r.translate = t }
}

// Registry maps ids to schemas and binds itself as the Resolver of the
// traversal functions.
type Registry struct {
	mu        sync.RWMutex
	schemas   map[string]*Schema
	translate Translator
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		schemas:   make(map[string]*Schema),
		translate: func(ref string) string { return ref },
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register registers s under id, replacing any schema registered there.
func (r *Registry) Register(id string, s *Schema) error {
	if s == nil {
		return fmt.Errorf("cannot register nil schema as %q", id)
	}
	if id == "" {
		return fmt.Errorf("cannot register schema without id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if debug.Registry() {
		_, replaced := r.schemas[id]
		debug.Logf("registry: register %q (replaced %t)\n", id, replaced)
	}
	r.schemas[id] = s
	return nil
}

// Deregister removes the schema registered under id and reports whether
// there was one.
func (r *Registry) Deregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.schemas[id]
	delete(r.schemas, id)
	if debug.Registry() {
		debug.Logf("registry: deregister %q (found %t)\n", id, ok)
	}
	return ok
}

// Get returns the schema registered under id, or nil.
func (r *Registry) Get(id string) *Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemas[id]
}

func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.schemas)
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.schemas))
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}

// ResolveRef resolves ref through the registry's translator.
func (r *Registry) ResolveRef(ref string) *Schema {
	id := r.translate(ref)
	s := r.Get(id)
	if debug.Registry() {
		debug.Logf("registry: resolve %q as %q (found %t)\n", ref, id, s != nil)
	}
	return s
}

func (r *Registry) FindProperty(s *Schema, p kpath.Path) *Schema {
	return FindProperty(s, p, r)
}

func (r *Registry) FindRelationships(s *Schema, opts ...WalkOption) ([]Relationship, error) {
	return FindRelationships(s, r, opts...)
}

func (r *Registry) FindTransient(s *Schema, opts ...WalkOption) []kpath.Path {
	return FindTransient(s, r, opts...)
}

func (r *Registry) IsRequired(s *Schema, p kpath.Path) bool {
	return IsRequired(s, p, r)
}

func (r *Registry) Expand(ctx context.Context, s *Schema) (*Schema, error) {
	return Expand(ctx, s, SyncLoader(r))
}
