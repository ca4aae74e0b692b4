package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTrimFragment(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"#Person", "Person"},
		{"#/definitions/Person", "Person"},
		{"#/$defs/a/b", "b"},
		{"Person", "Person"},
		{"other.json#/definitions/X", "other.json#/definitions/X"},
		{"#", ""},
	}
	for _, tt := range tests {
		if got := TrimFragment(tt.ref); got != tt.want {
			t.Errorf("TrimFragment(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry()
	a := mustParse(t, `{type: object}`)
	b := mustParse(t, `{type: string}`)
	if err := reg.Register("a", nil); err == nil {
		t.Error("registered nil schema")
	}
	if err := reg.Register("", a); err == nil {
		t.Error("registered empty id")
	}
	for id, s := range map[string]*Schema{"a": a, "b": b} {
		if err := reg.Register(id, s); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, reg.IDs()); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if reg.Get("a") != a || reg.ResolveRef("b") != b {
		t.Error("lookup mismatch")
	}
	if reg.ResolveRef("#a") != nil {
		t.Error("identity translator resolved a fragment")
	}
	if err := reg.Register("a", b); err != nil {
		t.Fatal(err)
	}
	if reg.Get("a") != b {
		t.Error("re-registering did not replace")
	}
	if !reg.Deregister("a") || reg.Deregister("a") {
		t.Error("deregister should report presence exactly once")
	}
	if reg.Len() != 1 {
		t.Errorf("len %d, want 1", reg.Len())
	}
	reg.Clear()
	if reg.Len() != 0 || reg.Get("b") != nil {
		t.Error("clear left schemas behind")
	}
}

func TestRegistryPropagatesHardErrors(t *testing.T) {
	reg := testRegistry(t, map[string]string{
		"Doc": `{type: object, properties: {kids: {$ref: "#Doc", storage: inverse-ref}}}`,
	})
	rels, err := reg.FindRelationships(reg.Get("Doc"))
	if rels != nil {
		t.Errorf("got relationships %v alongside error", rels)
	}
	var e *Error
	if !errors.As(err, &e) || !errors.Is(err, ErrMissingForeignKey) {
		t.Fatalf("got %v", err)
	}
	if e.Context["path"] != "kids" {
		t.Errorf("context %v", e.Context)
	}
}
