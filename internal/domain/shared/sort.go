package shared

import "strings"

// SortDirection is the direction of a sorted listing
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection normalizes a sort order string to a SortDirection.
// Anything other than "asc" (case-insensitive) sorts descending.
func ParseSortDirection(orderDir string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return SortAsc
	}
	return SortDesc
}
