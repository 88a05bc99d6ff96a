package textbuffer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Columns are grapheme indices, not byte offsets, so a cursor never lands
// inside a multi-byte cluster.

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// byteOffset converts a grapheme index to a byte offset. Indices past the
// end map to len(s).
func byteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	offset, n := 0, 0
	state := -1
	rest := s
	for len(rest) > 0 {
		if n == idx {
			return offset
		}
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		offset += len(cluster)
		n++
	}
	return len(s)
}

func insertAt(s string, idx int, text string) string {
	off := byteOffset(s, idx)
	return s[:off] + text + s[off:]
}

func deleteRange(s string, start, end int) string {
	if start >= end {
		return s
	}
	return s[:byteOffset(s, start)] + s[byteOffset(s, end):]
}

func slice(s string, start, end int) string {
	return s[byteOffset(s, start):byteOffset(s, end)]
}

func clusterAt(s string, idx int) string {
	return slice(s, idx, idx+1)
}

// displayWidth returns the terminal cell width of s.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func isSpace(cluster string) bool {
	return cluster == " " || cluster == "\t"
}
