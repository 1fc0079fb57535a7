package contact

import "strings"

// Matches reports whether the lowercased query is a substring of any of
// c's lowercased column values. An empty query matches every contact.
func Matches(c Contact, query string) bool {
	q := strings.ToLower(query)
	for _, col := range c.Columns() {
		if strings.Contains(strings.ToLower(col), q) {
			return true
		}
	}
	return false
}

// Filter returns the indexes of rows that match query, in row order.
func Filter(rows []Contact, query string) []int {
	visible := make([]int, 0, len(rows))
	for i, c := range rows {
		if Matches(c, query) {
			visible = append(visible, i)
		}
	}
	return visible
}
