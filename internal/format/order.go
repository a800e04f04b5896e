package format

import "sort"

// Unranked is the priority given to entries missing from a priority table.
const Unranked = 999

// DefaultProjectPriority is the manual ordering of CV projects by identifier.
var DefaultProjectPriority = map[string]int{
	"archive-server":         1,
	"translate-project":      2,
	"pocket-imperium":        3,
	"play-tennis-everywhere": 4,
	"tiny-habits":            5,
}

// Identified is anything carrying a stable ordering identifier.
type Identified interface {
	ProjectID() string
}

// SortByPriority returns a copy of items ordered by their rank in priority.
// Unknown or missing identifiers rank Unranked; ties keep their original order.
func SortByPriority[T Identified](items []T, priority map[string]int) []T {
	out := make([]T, len(items))
	copy(out, items)

	rank := func(item T) int {
		if p, ok := priority[item.ProjectID()]; ok {
			return p
		}
		return Unranked
	}

	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}
