package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

var out io.Writer = os.Stderr

// Logf formats like fmt.Printf to stderr. Native maps and slices are
// rendered as indented JSON; anything implementing fmt.Stringer (document
// values, paths) is rendered with String.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case fmt.Stringer:
			args[i] = x.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
