package schema

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
)

// ID identifies a Schema node for the lifetime of the process.
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

type Kind int

const (
	LeafKind Kind = iota
	RefKind
	AllOfKind
	OneOfKind
	ObjectKind
	ArrayKind
)

func (k Kind) String() string {
	switch k {
	case LeafKind:
		return "leaf"
	case RefKind:
		return "$ref"
	case AllOfKind:
		return "allOf"
	case OneOfKind:
		return "oneOf"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Storage is the storage class of a relationship.
type Storage string

const (
	StorageNone       Storage = ""
	StorageCopy       Storage = "copy"
	StorageRef        Storage = "ref"
	StorageInverseRef Storage = "inverse-ref"
)

func ParseStorage(s string) (Storage, error) {
	switch st := Storage(s); st {
	case StorageCopy, StorageRef, StorageInverseRef:
		return st, nil
	}
	return StorageNone, fmt.Errorf("unknown storage %q", s)
}

// External reports whether the relationship crosses into another document.
func (s Storage) External() bool {
	return s == StorageRef || s == StorageInverseRef
}

// Keyword names recognized in schema documents.
const (
	KeyRef        = "$ref"
	KeyType       = "type"
	KeyProperties = "properties"
	KeyItems      = "items"
	KeyAllOf      = "allOf"
	KeyOneOf      = "oneOf"
	KeyRequired   = "required"
	KeyEntityType = "entityType"
	KeyStorage    = "storage"
	KeyForeignKey = "foreignKey"
	KeyTransient  = "transient"
)

// Schema is one node of a schema graph. A Schema is never modified after
// construction; identity (ID) is therefore stable and safe to use for cycle
// detection across concurrent readers.
type Schema struct {
	id   ID
	kind Kind

	typ      string
	ref      string
	alts     []*Schema
	props    map[string]*Schema
	items    *Schema
	required map[string]struct{}

	entityType string
	storage    Storage
	foreignKey string
	transient  *bool

	extra map[string]any
}

func (s *Schema) ID() ID {
	return s.id
}

func (s *Schema) Kind() Kind {
	return s.kind
}

// Type returns the declared type keyword, "" if absent.
func (s *Schema) Type() string {
	return s.typ
}

// Ref returns the $ref string, "" if absent.
func (s *Schema) Ref() string {
	return s.ref
}

// Alternatives returns the allOf or oneOf alternatives of a composition node.
func (s *Schema) Alternatives() []*Schema {
	return slices.Clone(s.alts)
}

// Property returns the schema of the named property of an object node.
func (s *Schema) Property(name string) (*Schema, bool) {
	p, ok := s.props[name]
	return p, ok
}

// PropertyNames returns the property names in sorted order.
func (s *Schema) PropertyNames() []string {
	return slices.Sorted(maps.Keys(s.props))
}

// Items returns the element schema of an array node, nil if absent.
func (s *Schema) Items() *Schema {
	return s.items
}

// Requires reports whether name is listed in the required set.
func (s *Schema) Requires(name string) bool {
	_, ok := s.required[name]
	return ok
}

// Required returns the required property names in sorted order.
func (s *Schema) Required() []string {
	return slices.Sorted(maps.Keys(s.required))
}

func (s *Schema) EntityType() string {
	return s.entityType
}

func (s *Schema) Storage() Storage {
	return s.storage
}

func (s *Schema) ForeignKey() string {
	return s.foreignKey
}

// Transient returns the transient flag and whether it was set explicitly.
func (s *Schema) Transient() (value, set bool) {
	if s.transient == nil {
		return false, false
	}
	return *s.transient, true
}

// Extra returns an unrecognized keyword.
func (s *Schema) Extra(key string) (any, bool) {
	v, ok := s.extra[key]
	return v, ok
}

// ExtraKeys returns the unrecognized keywords in sorted order.
func (s *Schema) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(s.extra))
}

func (s *Schema) String() string {
	switch s.kind {
	case RefKind:
		return fmt.Sprintf("#%d{$ref: %s}", s.id, s.ref)
	case AllOfKind, OneOfKind:
		return fmt.Sprintf("#%d{%s: %d}", s.id, s.kind, len(s.alts))
	}
	return fmt.Sprintf("#%d{type: %s}", s.id, s.typ)
}

// hasAnnotations reports whether s carries keywords a referencing node may
// contribute on top of its target.
func (s *Schema) hasAnnotations() bool {
	return s.entityType != "" || s.storage != StorageNone || s.foreignKey != "" ||
		s.transient != nil || len(s.extra) != 0
}

// clone returns a shallow copy of s under a fresh ID.
func (s *Schema) clone() *Schema {
	c := *s
	c.id = nextID()
	c.alts = slices.Clone(s.alts)
	c.props = maps.Clone(s.props)
	c.required = maps.Clone(s.required)
	c.extra = maps.Clone(s.extra)
	return &c
}

// overlay copies the annotations of ref onto s, replacing those of s.
func (s *Schema) overlay(ref *Schema) {
	if ref.entityType != "" {
		s.entityType = ref.entityType
	}
	if ref.storage != StorageNone {
		s.storage = ref.storage
	}
	if ref.foreignKey != "" {
		s.foreignKey = ref.foreignKey
	}
	if ref.transient != nil {
		s.transient = ref.transient
	}
	for k, v := range ref.extra {
		if s.extra == nil {
			s.extra = map[string]any{}
		}
		s.extra[k] = v
	}
}
