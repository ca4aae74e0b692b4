package schema

import (
	"github.com/signadot/docschema/kpath"
)

// Relationship is a node declaring a storage class, found by
// FindRelationships.
type Relationship struct {
	Path    kpath.Path
	ToMany  bool
	Storage Storage

	EntityTypeName string
	// SchemaRef is the first $ref followed to reach Schema, if any.
	SchemaRef string
	Schema    *Schema

	ForeignKeyPath kpath.Path
	// DepthFromParent counts the segments of Path since the schema root or
	// the closest enclosing ref or inverse-ref relationship. Their direct
	// children have depth 0.
	DepthFromParent int
}

// FindRelationships returns every relationship reachable from s, in
// traversal order. Properties are visited by name and every alternative of
// a composition contributes.
//
// Without LimitTo or MaxDepth, a node already entered on the current
// branch is not entered again, so cyclic graphs yield a finite result.
//
// An inverse-ref relationship without a valid foreign key is an *Error
// wrapping ErrMissingForeignKey.
func FindRelationships(s *Schema, r Resolver, opts ...WalkOption) ([]Relationship, error) {
	var res []Relationship
	w := &walker{r: r, opts: walkOptions(opts)}
	w.visit = func(f *frame, t *target) (bool, error) {
		if t.storage == StorageNone {
			return false, nil
		}
		if f.outer != nil && f.outer.storage != StorageNone {
			// recorded with the enclosing node
			return false, nil
		}
		fk, err := foreignKey(f, t)
		if err != nil {
			return false, err
		}
		if w.opts.allows(t.storage) {
			res = append(res, Relationship{
				Path:            f.path,
				ToMany:          f.many || t.content.kind == ArrayKind,
				Storage:         t.storage,
				EntityTypeName:  t.entityType,
				SchemaRef:       t.ref,
				Schema:          t.content,
				ForeignKeyPath:  fk,
				DepthFromParent: f.fromParent,
			})
		}
		return t.storage.External(), nil
	}
	if err := w.walk(s); err != nil {
		return nil, err
	}
	return res, nil
}

func foreignKey(f *frame, t *target) (kpath.Path, error) {
	fk, err := kpath.Parse(t.foreignKey)
	if t.storage != StorageInverseRef {
		if err != nil {
			return nil, nil
		}
		return fk, nil
	}
	if t.foreignKey == "" || err != nil {
		e := &Error{
			Msg: "invalid inverse-ref relationship",
			Context: map[string]any{
				"path":       f.path.String(),
				"entityType": t.entityType,
			},
			Err: ErrMissingForeignKey,
		}
		if err != nil {
			e.Context["foreignKey"] = t.foreignKey
			e.Context["cause"] = err.Error()
		}
		return nil, e
	}
	return fk, nil
}
