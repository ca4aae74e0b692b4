package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/docschema/kpath"
)

func pathStrings(ps []kpath.Path) []string {
	var res []string
	for _, p := range ps {
		res = append(res, p.String())
	}
	return res
}

func TestFindTransient(t *testing.T) {
	reg := testRegistry(t, map[string]string{
		"Secret": `{type: string, transient: true}`,
		"Doc": `
type: object
transient: true
properties:
  token: {$ref: Secret}
  kept: {$ref: Secret, transient: false}
  cache:
    type: object
    transient: true
    properties:
      hits: {type: integer, transient: true}
      name: {type: string}
  log:
    type: array
    items: {type: object, transient: true}
`,
	})
	doc := reg.Get("Doc")
	tests := []struct {
		name string
		opts []WalkOption
		want []string
	}{
		{"all", nil, []string{"cache", "cache.hits", "log[*]", "token"}},
		{"depth 1", []WalkOption{MaxDepth(1)}, []string{"cache", "token"}},
		{"depth 0", []WalkOption{MaxDepth(0)}, nil},
		{"limit cache", []WalkOption{LimitTo(kpath.MustParse("cache"))}, []string{"cache"}},
		{"limit cache.hits", []WalkOption{LimitTo(kpath.MustParse("cache.hits"))}, []string{"cache", "cache.hits"}},
		{"limit kept", []WalkOption{LimitTo(kpath.MustParse("kept"))}, nil},
		{"limit log[0]", []WalkOption{LimitTo(kpath.MustParse("log[0]"))}, []string{"log[0]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pathStrings(reg.FindTransient(doc, tt.opts...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindTransientCycle(t *testing.T) {
	reg := testRegistry(t, map[string]string{
		"A": `{type: object, properties: {b: {$ref: B}, tmp: {type: string, transient: true}}}`,
		"B": `{type: object, properties: {a: {$ref: A, transient: true}}}`,
	})
	got := pathStrings(reg.FindTransient(reg.Get("A")))
	want := []string{"b.a", "tmp"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFindTransientComposedTarget(t *testing.T) {
	reg := testRegistry(t, map[string]string{
		"T": `{allOf: [{type: string, transient: true}]}`,
		"Doc": `
type: object
properties:
  kept: {$ref: T, transient: false}
  twice: {$ref: T, transient: true}
  plain: {$ref: T}
  both:
    oneOf:
      - {type: string, transient: true}
      - {type: integer, transient: true}
`,
	})
	got := pathStrings(reg.FindTransient(reg.Get("Doc")))
	want := []string{"both", "plain", "twice"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
