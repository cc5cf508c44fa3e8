// Package view renders the search page with element components.
package view

import "html"

// esc escapes text and attribute values; the builder writes them verbatim.
func esc(s string) string { return html.EscapeString(s) }

// attrs flattens key/value pairs, escaping the values.
func attrs(kv ...string) []string {
	out := make([]string, len(kv))
	for i, s := range kv {
		if i%2 == 1 {
			s = esc(s)
		}
		out[i] = s
	}
	return out
}
