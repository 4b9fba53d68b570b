// Package suggest computes edit-distance "did you mean" suggestions
// over a set of visible command or flag names (spec.md §4.7).
package suggest

import "golang.org/x/exp/slices"

// distance returns the Levenshtein edit distance between str and tgt.
func distance(str, tgt string) int {
	if len(str) == 0 {
		return len(tgt)
	}
	if len(tgt) == 0 {
		return len(str)
	}

	dists := make([][]int, len(str)+1)
	for i := range dists {
		dists[i] = make([]int, len(tgt)+1)
		dists[i][0] = i
	}
	for j := 0; j <= len(tgt); j++ {
		dists[0][j] = j
	}

	for sidx, sc := range []byte(str) {
		for tidx, tc := range []byte(tgt) {
			if sc == tc {
				dists[sidx+1][tidx+1] = dists[sidx][tidx]
				continue
			}
			dists[sidx+1][tidx+1] = dists[sidx][tidx] + 1
			if dists[sidx+1][tidx]+1 < dists[sidx+1][tidx+1] {
				dists[sidx+1][tidx+1] = dists[sidx+1][tidx] + 1
			}
			if dists[sidx][tidx+1]+1 < dists[sidx+1][tidx+1] {
				dists[sidx+1][tidx+1] = dists[sidx][tidx+1] + 1
			}
		}
	}

	return dists[len(str)][len(tgt)]
}

// threshold is the maximum edit distance spec.md §4.7 accepts: max(2, len/3).
func threshold(token string) int {
	t := len(token) / 3
	if t < 2 {
		t = 2
	}
	return t
}

// Closest returns the closest name to token among choices, and whether
// it is within the acceptance threshold. Choices are compared in the
// order given; the first minimal-distance match wins ties.
func Closest(token string, choices []string) (name string, ok bool) {
	if len(choices) == 0 {
		return "", false
	}

	best := -1
	bestDist := -1
	for i, c := range choices {
		d := distance(token, c)
		if best < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}

	if bestDist > threshold(token) {
		return "", false
	}
	return choices[best], true
}

// Hint renders the "Did you mean 'X'?" suffix, or "" if none applies.
// visible is filtered by the caller to exclude hidden names (spec.md:
// "Hidden commands are excluded from suggestions").
func Hint(token string, visible []string) string {
	visible = slices.Clone(visible)
	name, ok := Closest(token, visible)
	if !ok {
		return ""
	}
	return "Did you mean '" + name + "'?"
}
