package helpers

import "strings"

// SplitCSV splits a comma-separated setting, trimming blanks and dropping
// empty entries.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
