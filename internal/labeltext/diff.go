package labeltext

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineChanges counts lines added and removed between two label buffers.
func LineChanges(before, after string) (added, removed int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(terminate(before), terminate(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	return added, removed
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// terminate ends s with a newline so the last line compares equal to the
// same line followed by more text.
func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
