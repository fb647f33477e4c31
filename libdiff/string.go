package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Lines returns a line-oriented diff from one text to another. Removed
// lines are prefixed with "-", added lines with "+" and unchanged lines
// with a space. It returns "" when the texts are equal.
func Lines(from, to string) string {
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var buf strings.Builder
	for i := range diffs {
		diff := &diffs[i]
		prefix := " "
		switch diff.Type {
		case diffpatch.DiffInsert:
			prefix = InsertPrefix
		case diffpatch.DiffDelete:
			prefix = DeletePrefix
		}
		for _, ln := range splitLines(diff.Text) {
			buf.WriteString(prefix)
			buf.WriteString(ln)
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

// Changed returns only the inserted and deleted lines of Lines(from, to).
func Changed(from, to string) string {
	var buf strings.Builder
	for _, ln := range splitLines(Lines(from, to)) {
		if strings.HasPrefix(ln, InsertPrefix) || strings.HasPrefix(ln, DeletePrefix) {
			buf.WriteString(ln)
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
