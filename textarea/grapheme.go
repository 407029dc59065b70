package textarea

import "github.com/rivo/uniseg"

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// graphemeOffset returns the byte offset of the n-th grapheme in s.
// Out-of-range n clamps to len(s).
func graphemeOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}
	rest := s
	state := -1
	offset := 0
	for i := 0; i < n && len(rest) > 0; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		offset += len(cluster)
	}
	return offset
}

// graphemeIndexAt returns the index of the grapheme containing byte
// offset b. Offsets past the end clamp to the grapheme count.
func graphemeIndexAt(s string, b int) int {
	if b <= 0 {
		return 0
	}
	rest := s
	state := -1
	offset := 0
	idx := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		if b < offset+len(cluster) {
			return idx
		}
		offset += len(cluster)
		idx++
	}
	return idx
}

// graphemeSlice returns the substring covering graphemes [start, end).
func graphemeSlice(s string, start, end int) string {
	if start >= end {
		return ""
	}
	from := graphemeOffset(s, start)
	to := graphemeOffset(s, end)
	return s[from:to]
}

// graphemeAt returns the grapheme cluster at index n, or "" when out
// of range.
func graphemeAt(s string, n int) string {
	return graphemeSlice(s, n, n+1)
}
