package schema

import (
	"testing"

	"github.com/signadot/docschema/kpath"
)

const nested = `
type: object
properties:
  a:
    type: object
    properties:
      b:
        type: array
        items:
          type: object
          properties:
            c: {type: string}
            d:
              type: array
              items: {type: integer}
  e: {type: boolean}
`

// navigate follows p through properties and items only.
func navigate(s *Schema, p kpath.Path) *Schema {
	for _, seg := range p {
		if s == nil {
			return nil
		}
		switch {
		case seg.IsField() && s.Kind() == ObjectKind:
			s, _ = s.Property(seg.Name())
		case seg.IsIndex() && s.Kind() == ArrayKind:
			s = s.Items()
		default:
			return nil
		}
	}
	return s
}

func TestFindPropertyMatchesNavigation(t *testing.T) {
	s := mustParse(t, nested)
	none := MapResolver(nil)
	paths := []string{
		"a", "e", "a.b", "a.b[0]", "a.b[*]", "a.b[3].c", "a.b[0].d", "a.b[0].d[7]",
		"x", "a.x", "a.b.c", "a[0]", "e.f", "a.b[0].c.z",
	}
	for _, ps := range paths {
		t.Run(ps, func(t *testing.T) {
			p := kpath.MustParse(ps)
			got := FindProperty(s, p, none)
			want := navigate(s, p)
			if got != want {
				t.Errorf("FindProperty(%s) = %v, want %v", ps, got, want)
			}
		})
	}
	if got := FindProperty(s, nil, none); got != s {
		t.Errorf("empty path: got %v, want root", got)
	}
}

func TestFindPropertyAllOfLastWins(t *testing.T) {
	reg := testRegistry(t, map[string]string{
		"User": `{type: object, title: user}`,
		"Team": `{type: object, title: team}`,
	})
	s := mustParse(t, `
allOf:
  - type: object
    properties:
      owner: {$ref: User, storage: ref, entityType: User}
      id: {type: string}
  - type: object
    properties:
      owner: {$ref: Team, storage: ref, entityType: Team}
`)
	if got := reg.FindProperty(s, kpath.MustParse("owner")); got != reg.Get("Team") {
		t.Errorf("owner resolved to %v, want Team", got)
	}
	id := reg.FindProperty(s, kpath.MustParse("id"))
	if id == nil || id.Type() != "string" {
		t.Errorf("id resolved to %v, want string leaf of first alternative", id)
	}
}

func TestFindPropertyOneOfFirstWins(t *testing.T) {
	s := mustParse(t, `
oneOf:
  - {type: object, properties: {v: {type: string}}}
  - {type: object, properties: {v: {type: integer}, w: {type: integer}}}
`)
	none := MapResolver(nil)
	if got := FindProperty(s, kpath.MustParse("v"), none); got == nil || got.Type() != "string" {
		t.Errorf("v resolved to %v, want string", got)
	}
	if got := FindProperty(s, kpath.MustParse("w"), none); got == nil || got.Type() != "integer" {
		t.Errorf("w resolved to %v, want integer", got)
	}
}

func TestFindPropertyRefs(t *testing.T) {
	reg := testRegistry(t, map[string]string{
		"Person": `
type: object
properties:
  name: {type: string}
  manager: {$ref: "#Person"}
  friends: {type: array, items: {$ref: "#/definitions/Person"}}
  ghost: {$ref: "#Ghost"}
`,
		"Loop": `{$ref: "#Loop"}`,
		"Mix":  `{allOf: [{type: object, properties: {m: {type: string}}}, {$ref: "#Mix"}]}`,
	})
	person := reg.Get("Person")
	name, _ := person.Property("name")
	for _, ps := range []string{"name", "manager.name", "manager.manager.friends[2].name", "friends[*].manager.name"} {
		if got := reg.FindProperty(person, kpath.MustParse(ps)); got != name {
			t.Errorf("%s resolved to %v, want %v", ps, got, name)
		}
	}
	if got := reg.FindProperty(person, kpath.MustParse("manager")); got != person {
		t.Errorf("manager resolved to %v, want Person", got)
	}
	if got := reg.FindProperty(person, kpath.MustParse("ghost")); got != nil {
		t.Errorf("unresolved ref gave %v", got)
	}
	if got := reg.FindProperty(reg.Get("Loop"), kpath.MustParse("a")); got != nil {
		t.Errorf("ref loop gave %v", got)
	}
	if got := reg.FindProperty(reg.Get("Mix"), kpath.MustParse("m")); got == nil || got.Type() != "string" {
		t.Errorf("self-referencing allOf gave %v", got)
	}
}
