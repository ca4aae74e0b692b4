package schema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/signadot/docschema/kpath"
)

var ErrInvalidSchema = errors.New("invalid schema")

// Parse parses a YAML or JSON schema document.
func Parse(d []byte) (*Schema, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("error parsing schema document: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is a %s, not a mapping", ErrInvalidSchema, typeName(v))
	}
	return FromMap(m)
}

// FromMap builds a schema graph from a decoded document. Unrecognized
// keywords are kept and made available through Extra.
func FromMap(m map[string]any) (*Schema, error) {
	return fromMap(m, nil)
}

func fromMap(m map[string]any, at kpath.Path) (*Schema, error) {
	s := &Schema{id: nextID()}
	var (
		allOf, oneOf   []*Schema
		hasAll, hasOne bool
	)
	for k, v := range m {
		var err error
		switch k {
		case KeyRef:
			s.ref, err = stringKey(v, at, k)
			if err == nil && s.ref == "" {
				err = invalid(at.Append(kpath.Field(k)), "empty reference")
			}
		case KeyType:
			s.typ, err = stringKey(v, at, k)
		case KeyEntityType:
			s.entityType, err = stringKey(v, at, k)
		case KeyForeignKey:
			s.foreignKey, err = stringKey(v, at, k)
		case KeyStorage:
			var st string
			st, err = stringKey(v, at, k)
			if err == nil {
				s.storage, err = ParseStorage(st)
				if err != nil {
					err = invalid(at.Append(kpath.Field(k)), err.Error())
				}
			}
		case KeyTransient:
			b, ok := v.(bool)
			if !ok {
				err = invalid(at.Append(kpath.Field(k)), "expected boolean, got "+typeName(v))
				break
			}
			s.transient = &b
		case KeyProperties:
			s.props, err = propsFromAny(v, at.Append(kpath.Field(k)))
		case KeyItems:
			s.items, err = schemaFromAny(v, at.Append(kpath.Field(k)))
		case KeyAllOf:
			hasAll = true
			allOf, err = altsFromAny(v, at.Append(kpath.Field(k)))
		case KeyOneOf:
			hasOne = true
			oneOf, err = altsFromAny(v, at.Append(kpath.Field(k)))
		case KeyRequired:
			s.required, err = requiredFromAny(v, at.Append(kpath.Field(k)))
		default:
			if s.extra == nil {
				s.extra = map[string]any{}
			}
			s.extra[k] = v
		}
		if err != nil {
			return nil, err
		}
	}
	switch {
	case s.ref != "":
		s.kind = RefKind
	case hasAll:
		s.kind = AllOfKind
		s.alts = allOf
	case hasOne:
		s.kind = OneOfKind
		s.alts = oneOf
	case s.typ == "object":
		s.kind = ObjectKind
	case s.typ == "array":
		s.kind = ArrayKind
	default:
		s.kind = LeafKind
	}
	if hasAll && hasOne {
		// oneOf is shadowed by allOf; keep it verbatim
		s.extra = setExtra(s.extra, KeyOneOf, m[KeyOneOf])
	}
	return s, nil
}

func setExtra(m map[string]any, k string, v any) map[string]any {
	if m == nil {
		m = map[string]any{}
	}
	m[k] = v
	return m
}

func schemaFromAny(v any, at kpath.Path) (*Schema, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(at, "expected mapping, got "+typeName(v))
	}
	return fromMap(m, at)
}

func propsFromAny(v any, at kpath.Path) (map[string]*Schema, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(at, "expected mapping, got "+typeName(v))
	}
	props := make(map[string]*Schema, len(m))
	for name, pv := range m {
		p, err := schemaFromAny(pv, at.Append(kpath.Field(name)))
		if err != nil {
			return nil, err
		}
		props[name] = p
	}
	return props, nil
}

func altsFromAny(v any, at kpath.Path) ([]*Schema, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, invalid(at, "expected sequence, got "+typeName(v))
	}
	alts := make([]*Schema, 0, len(l))
	for i, av := range l {
		a, err := schemaFromAny(av, at.Append(kpath.Index(i)))
		if err != nil {
			return nil, err
		}
		alts = append(alts, a)
	}
	return alts, nil
}

func requiredFromAny(v any, at kpath.Path) (map[string]struct{}, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, invalid(at, "expected sequence, got "+typeName(v))
	}
	req := make(map[string]struct{}, len(l))
	for i, rv := range l {
		name, ok := rv.(string)
		if !ok {
			return nil, invalid(at.Append(kpath.Index(i)), "expected string, got "+typeName(rv))
		}
		req[name] = struct{}{}
	}
	return req, nil
}

func stringKey(v any, at kpath.Path, k string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid(at.Append(kpath.Field(k)), "expected string, got "+typeName(v))
	}
	return s, nil
}

func invalid(at kpath.Path, msg string) error {
	where := at.String()
	if where == "" {
		where = "(root)"
	}
	return fmt.Errorf("%s: %w: %s", where, ErrInvalidSchema, msg)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case int, int64, uint64, float64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
