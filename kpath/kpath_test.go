package kpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Path
		wantErr bool
	}{
		{
			name:  "empty path",
			input: "",
			want:  nil,
		},
		{
			name:  "single field",
			input: "a",
			want:  Path{Field("a")},
		},
		{
			name:  "nested fields",
			input: "a.b.c",
			want:  Path{Field("a"), Field("b"), Field("c")},
		},
		{
			name:  "array index",
			input: "a[0]",
			want:  Path{Field("a"), Index(0)},
		},
		{
			name:  "array wildcard",
			input: "a[*].b",
			want:  Path{Field("a"), All(), Field("b")},
		},
		{
			name:  "leading index",
			input: "[3].b",
			want:  Path{Index(3), Field("b")},
		},
		{
			name:  "nested indices",
			input: "m[1][2]",
			want:  Path{Field("m"), Index(1), Index(2)},
		},
		{
			name:  "quoted field",
			input: "a.'b.c'[0]",
			want:  Path{Field("a"), Field("b.c"), Index(0)},
		},
		{
			name:  "double quoted field with escape",
			input: `"it\"s"`,
			want:  Path{Field(`it"s`)},
		},
		{
			name:  "dollar field",
			input: "properties.$ref",
			want:  Path{Field("properties"), Field("$ref")},
		},
		{
			name:    "unclosed bracket",
			input:   "a[0",
			wantErr: true,
		},
		{
			name:    "negative index",
			input:   "a[-1]",
			wantErr: true,
		},
		{
			name:    "non-numeric index",
			input:   "a[x]",
			wantErr: true,
		},
		{
			name:    "empty field",
			input:   "a..b",
			wantErr: true,
		},
		{
			name:    "trailing dot",
			input:   "a.",
			wantErr: true,
		},
		{
			name:    "field after bracket without dot",
			input:   "a[0]b",
			wantErr: true,
		},
		{
			name:    "unterminated quote",
			input:   "a.'b",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, ErrParse) {
					t.Errorf("Parse(%q) error %v does not wrap ErrParse", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"a",
		"a.b.c",
		"a[0]",
		"a[*]",
		"a[*].b[12].c",
		"[0]",
		"[*].x",
		"a.'b.c'",
		"a.'x[0]'.y",
		"''",
	}
	for _, in := range inputs {
		p, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q): %v", in, err)
			continue
		}
		if got := p.String(); got != in {
			t.Errorf("String(Parse(%q)) = %q", in, got)
		}
	}

	paths := []Path{
		{Field("a")},
		{Field("a"), All(), Field("b")},
		{Index(0), Index(1)},
		{Field("with space"), Field("it's")},
		{Field("a"), Field("b.c"), Index(7)},
	}
	for _, p := range paths {
		got, err := Parse(p.String())
		if err != nil {
			t.Errorf("Parse(%q): %v", p.String(), err)
			continue
		}
		if !got.Equal(p) {
			t.Errorf("Parse(String(%v)) = %v", p, got)
		}
	}
}

func TestDepthAndTails(t *testing.T) {
	p := MustParse("a.b[0].c")
	if p.Depth() != 4 {
		t.Fatalf("Depth() = %d, want 4", p.Depth())
	}
	tests := []struct {
		n        int
		wantDrop string
		wantTake string
		wantErr  bool
	}{
		{n: 0, wantDrop: "a.b[0].c", wantTake: ""},
		{n: 1, wantDrop: "a.b[0]", wantTake: "c"},
		{n: 2, wantDrop: "a.b", wantTake: "[0].c"},
		{n: 4, wantDrop: "", wantTake: "a.b[0].c"},
		{n: 5, wantErr: true},
		{n: -1, wantErr: true},
	}
	for _, tt := range tests {
		drop, dErr := p.DropTail(tt.n)
		take, tErr := p.TakeTail(tt.n)
		if tt.wantErr {
			if !errors.Is(dErr, ErrOutOfRange) || !errors.Is(tErr, ErrOutOfRange) {
				t.Errorf("n=%d: got errors %v, %v, want ErrOutOfRange", tt.n, dErr, tErr)
			}
			continue
		}
		if dErr != nil || tErr != nil {
			t.Fatalf("n=%d: unexpected errors %v, %v", tt.n, dErr, tErr)
		}
		if drop.String() != tt.wantDrop {
			t.Errorf("DropTail(%d) = %q, want %q", tt.n, drop, tt.wantDrop)
		}
		if take.String() != tt.wantTake {
			t.Errorf("TakeTail(%d) = %q, want %q", tt.n, take, tt.wantTake)
		}
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 8)
	base[0] = Field("root")
	a := base.Append(Field("a"))
	b := base.Append(Field("b"))
	if a.String() != "root.a" || b.String() != "root.b" {
		t.Errorf("siblings aliased: %q %q", a, b)
	}
	d, _ := a.DropTail(1)
	d = append(d, Field("z"))
	if a.String() != "root.a" {
		t.Errorf("DropTail result aliased receiver: %q", a)
	}
}

func TestCompareAndPrefix(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"a.b", "a", 1},
		{"a[0]", "a[1]", -1},
		{"a[1]", "a[*]", -1},
		{"a.b", "a[0]", -1},
	}
	for _, tt := range tests {
		if got := MustParse(tt.a).Compare(MustParse(tt.b)); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
	if !MustParse("a.b[0]").HasPrefix(MustParse("a.b")) {
		t.Error("a.b[0] should have prefix a.b")
	}
	if MustParse("a").HasPrefix(MustParse("a.b")) {
		t.Error("a should not have prefix a.b")
	}
	if got := MustParse("a.b.c").Parent().String(); got != "a.b" {
		t.Errorf("Parent() = %q", got)
	}
}

func TestTextMarshalling(t *testing.T) {
	p := MustParse("x[*].'y z'")
	d, err := p.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var q Path
	if err := q.UnmarshalText(d); err != nil {
		t.Fatal(err)
	}
	if !q.Equal(p) {
		t.Errorf("got %v, want %v", q, p)
	}
}

func TestFirstRest(t *testing.T) {
	p := MustParse("a[2].b")
	seg, ok := p.First()
	if !ok || seg.Name() != "a" {
		t.Errorf("First() = %v, %t", seg, ok)
	}
	if got := p.Rest().String(); got != "[2].b" {
		t.Errorf("Rest() = %q, want %q", got, "[2].b")
	}
	if got := MustParse("a").Rest(); got != nil {
		t.Errorf("Rest() of a single segment = %v, want nil", got)
	}
	if _, ok := Path(nil).First(); ok {
		t.Error("First() of the root path reported ok")
	}
}
