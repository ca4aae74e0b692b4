package debug

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want string
	}{
		{"plain", "%s %d", []any{"a", 1}, "a 1"},
		{"map", "%v", []any{map[string]any{"a": 1}}, "{\n   |  \"a\": 1\n   |}"},
		{"marked", "%v", []any{JSON{V: map[string]string{"x": "y"}}}, "{\n   |  \"x\": \"y\"\n   |}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format(tt.msg, tt.args); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
