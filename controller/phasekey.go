package controller

import (
	"sort"
	"strconv"
	"strings"
)

// phaseKey derives a stable map key for a phase (a set of light IDs).
// ids is copied and sorted so callers may pass either enumeration
// order or insertion order without affecting identity.
func phaseKey(ids []int32) string {
	sorted := append([]int32(nil), ids...)
	sort.Slice(sorted, func(i, k int) bool { return sorted[i] < sorted[k] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return strings.Join(parts, ",")
}
