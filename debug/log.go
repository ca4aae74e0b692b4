package debug

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSON marks a Logf argument to be rendered as indented JSON.
type JSON struct{ V any }

// Logf writes a trace line to stderr. Maps, slices and JSON arguments are
// rendered as indented JSON.
func Logf(msg string, args ...any) {
	fmt.Fprint(os.Stderr, format(msg, args))
}

func format(msg string, args []any) string {
	args = append([]any(nil), args...)
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case JSON:
			args[i] = jsonString(x.V)
		case map[string]any, []any, []string:
			args[i] = jsonString(x)
		case bool, string, float64, int:
		default:
		}
	}
	return fmt.Sprintf(msg, args...)
}

func jsonString(v any) string {
	d, err := json.MarshalIndent(v, "   |", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}
