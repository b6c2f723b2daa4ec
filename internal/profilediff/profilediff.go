package profilediff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

// Lines renders the setpoints of p one step per line.
func Lines(p profile.Profile) string {
	var b strings.Builder
	for i, v := range p.Setpoints() {
		fmt.Fprintf(&b, "step %02d: %d\n", i, v)
	}
	return b.String()
}

// Diff returns the steps that differ between a and b. Lines only in a are
// prefixed with "-", lines only in b with "+". Matching profiles give "".
func Diff(a, b profile.Profile) string {
	dmp := diffmatchpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(Lines(a), Lines(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				out.WriteString(prefix + line)
			}
		}
	}
	return out.String()
}
