package interpreter

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxDistanceForHint = 2

// closestStrings returns the candidates nearest to a, all at the same
// smallest distance below minDistance.
func closestStrings(minDistance int, a string, candidates iter.Seq[string]) []string {
	closest := []string{}
	for c := range candidates {
		if c == a {
			continue
		}
		d := levenshtein.ComputeDistance(a, c)
		switch {
		case d < minDistance:
			closest = []string{c}
			minDistance = d
		case d == minDistance:
			closest = append(closest, c)
		}
	}
	slices.Sort(closest)
	return closest
}

// hint formats a "did you mean" suffix, or "" when nothing is close.
func hint(name string, candidates []string) string {
	closest := closestStrings(maxDistanceForHint+1, name, slices.Values(candidates))
	if len(closest) == 0 {
		return ""
	}
	quoted := make([]string, len(closest))
	for i, c := range closest {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return " (did you mean " + strings.Join(quoted, " or ") + "?)"
}
