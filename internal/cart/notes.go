package cart

import (
	"fmt"
	"strings"
)

// BuildNotes renders the human readable summary of a line item's options,
// e.g. "Colors: Red (2), Blue - Size: L". Repeated colors are counted in
// first-seen order.
func BuildNotes(colors []string, size string) string {
	var parts []string

	if len(colors) > 0 {
		counts := make(map[string]int, len(colors))
		order := make([]string, 0, len(colors))
		for _, c := range colors {
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}

		rendered := make([]string, 0, len(order))
		for _, c := range order {
			if counts[c] > 1 {
				rendered = append(rendered, fmt.Sprintf("%s (%d)", c, counts[c]))
				continue
			}
			rendered = append(rendered, c)
		}
		parts = append(parts, "Colors: "+strings.Join(rendered, ", "))
	}

	if size != "" {
		parts = append(parts, "Size: "+size)
	}

	return strings.Join(parts, " - ")
}
