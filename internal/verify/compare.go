package verify

import (
	"fmt"
	"strings"
)

// CompareOutput checks a declared bash-output block against captured
// stdout. Trailing whitespace and a single trailing newline are
// insignificant on both sides; everything else is compared exactly,
// line by line. On mismatch it returns a reason naming the first
// differing line.
func CompareOutput(expected, actual string) (string, bool) {
	expLines := normalize(expected)
	actLines := normalize(actual)

	n := len(expLines)
	if len(actLines) > n {
		n = len(actLines)
	}

	for i := 0; i < n; i++ {
		var exp, act string
		switch {
		case i >= len(expLines):
			act = actLines[i]
			return fmt.Sprintf("line %d: expected no more output, actual %q",
				i+1, act), false
		case i >= len(actLines):
			exp = expLines[i]
			return fmt.Sprintf("line %d: expected %q, actual output ends at line %d",
				i+1, exp, len(actLines)), false
		default:
			exp = expLines[i]
			act = actLines[i]
			if exp != act {
				return fmt.Sprintf("line %d: expected %q, actual %q", i+1, exp, act), false
			}
		}
	}

	return "", true
}

// normalize strips one trailing newline, then any remaining trailing
// spaces, tabs and carriage returns, and splits into lines. Interior
// whitespace is untouched. An empty text normalizes to zero lines.
func normalize(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimRight(s, " \t\r")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
