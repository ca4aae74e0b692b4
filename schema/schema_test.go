package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, src string) *Schema {
	t.Helper()
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("error parsing %q: %v", src, err)
	}
	return s
}

// testRegistry parses and registers each id -> source pair, resolving
// fragment references.
func testRegistry(t *testing.T, docs map[string]string) *Registry {
	t.Helper()
	reg := NewRegistry(WithTranslator(TrimFragment))
	for id, src := range docs {
		if err := reg.Register(id, mustParse(t, src)); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		src  string
		want Kind
	}{
		{`{type: string}`, LeafKind},
		{`{}`, LeafKind},
		{`{type: object}`, ObjectKind},
		{`{type: array, items: {type: integer}}`, ArrayKind},
		{`{oneOf: [{type: string}]}`, OneOfKind},
		{`{allOf: [], oneOf: [{type: string}]}`, AllOfKind},
		{`{$ref: X, allOf: [{type: string}], type: object}`, RefKind},
		{`{"$ref": "#/definitions/X"}`, RefKind},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s := mustParse(t, tt.src)
			if s.Kind() != tt.want {
				t.Errorf("got kind %s, want %s", s.Kind(), tt.want)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	s := mustParse(t, `
type: object
required: [b, a]
x-index: name
properties:
  a:
    $ref: "#A"
    storage: inverse-ref
    entityType: A
    foreignKey: owner.id
    transient: false
  b:
    type: array
    items: {type: string}
`)
	if diff := cmp.Diff([]string{"a", "b"}, s.Required()); diff != "" {
		t.Errorf("required (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, s.PropertyNames()); diff != "" {
		t.Errorf("properties (-want +got):\n%s", diff)
	}
	if v, ok := s.Extra("x-index"); !ok || v != "name" {
		t.Errorf("extra x-index = %v, %t", v, ok)
	}
	a, _ := s.Property("a")
	if a.Ref() != "#A" || a.Storage() != StorageInverseRef || a.EntityType() != "A" || a.ForeignKey() != "owner.id" {
		t.Errorf("unexpected a: ref=%q storage=%q entityType=%q foreignKey=%q",
			a.Ref(), a.Storage(), a.EntityType(), a.ForeignKey())
	}
	if v, set := a.Transient(); v || !set {
		t.Errorf("a transient = %t, %t; want false, true", v, set)
	}
	b, _ := s.Property("b")
	if b.Items() == nil || b.Items().Type() != "string" {
		t.Errorf("unexpected b items %v", b.Items())
	}
	if _, set := b.Transient(); set {
		t.Errorf("b transient should be unset")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src string
		at  string
	}{
		{`[1, 2]`, "document"},
		{`{type: 3}`, "type:"},
		{`{properties: [a]}`, "properties:"},
		{`{properties: {a: {items: x}}}`, "properties.a.items:"},
		{`{allOf: [{type: object}, 1]}`, "allOf[1]:"},
		{`{required: [a, 2]}`, "required[1]:"},
		{`{storage: embedded}`, "storage:"},
		{`{transient: yes please}`, "transient:"},
		{`{$ref: ""}`, "$ref:"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidSchema) {
				t.Errorf("error %v does not wrap ErrInvalidSchema", err)
			}
			if !strings.Contains(err.Error(), tt.at) {
				t.Errorf("error %q does not mention %q", err, tt.at)
			}
		})
	}
}

func TestIDsAreUnique(t *testing.T) {
	s := mustParse(t, `{type: object, properties: {a: {type: string}, b: {type: string}}}`)
	a, _ := s.Property("a")
	b, _ := s.Property("b")
	if s.ID() == a.ID() || a.ID() == b.ID() || s.ID() == b.ID() {
		t.Errorf("ids not unique: %d %d %d", s.ID(), a.ID(), b.ID())
	}
}
