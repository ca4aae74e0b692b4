package schema

import (
	"github.com/signadot/docschema/kpath"
)

// KeyCycle marks a back edge in the output of Encode.
const KeyCycle = "$cycle"

// Encode converts s back to its document form. A node that is its own
// ancestor, as produced by Expand on cyclic input, is written as
// {"$cycle": "<path of the ancestor>"}, where paths are keyword paths from
// the root.
func Encode(s *Schema) map[string]any {
	return encode(s, nil, nil)
}

type encAncestor struct {
	id     ID
	at     kpath.Path
	parent *encAncestor
}

func encode(s *Schema, at kpath.Path, anc *encAncestor) map[string]any {
	for a := anc; a != nil; a = a.parent {
		if a.id == s.id {
			return map[string]any{KeyCycle: a.at.String()}
		}
	}
	anc = &encAncestor{id: s.id, at: at, parent: anc}
	m := make(map[string]any, len(s.extra)+4)
	for k, v := range s.extra {
		m[k] = v
	}
	if s.ref != "" {
		m[KeyRef] = s.ref
	}
	if s.typ != "" {
		m[KeyType] = s.typ
	}
	if len(s.alts) != 0 || s.kind == AllOfKind || s.kind == OneOfKind {
		key := KeyAllOf
		if s.kind == OneOfKind {
			key = KeyOneOf
		}
		alts := make([]any, len(s.alts))
		for i, alt := range s.alts {
			alts[i] = encode(alt, at.Append(kpath.Field(key), kpath.Index(i)), anc)
		}
		m[key] = alts
	}
	if s.props != nil {
		props := make(map[string]any, len(s.props))
		for name, p := range s.props {
			props[name] = encode(p, at.Append(kpath.Field(KeyProperties), kpath.Field(name)), anc)
		}
		m[KeyProperties] = props
	}
	if s.items != nil {
		m[KeyItems] = encode(s.items, at.Append(kpath.Field(KeyItems)), anc)
	}
	if s.required != nil {
		req := make([]any, 0, len(s.required))
		for _, name := range s.Required() {
			req = append(req, name)
		}
		m[KeyRequired] = req
	}
	if s.entityType != "" {
		m[KeyEntityType] = s.entityType
	}
	if s.storage != StorageNone {
		m[KeyStorage] = string(s.storage)
	}
	if s.foreignKey != "" {
		m[KeyForeignKey] = s.foreignKey
	}
	if s.transient != nil {
		m[KeyTransient] = *s.transient
	}
	return m
}
