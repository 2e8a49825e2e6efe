package deck

// Rand is the randomness Permutation needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Permutation returns a uniformly random permutation of [0, n) using the
// Fisher-Yates shuffle.
func Permutation(r Rand, n int) []int {
	perm := identity(n)
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func isPermutation(p []int, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func invert(p []int) []int {
	out := make([]int, len(p))
	for i, v := range p {
		out[v] = i
	}
	return out
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	out := make([]int, len(in))
	copy(out, in)
	return out
}

// originalOrder derives the base-to-display mapping for n cards.
func originalOrder(shuffled []int, n int) []int {
	if shuffled == nil {
		return identity(n)
	}
	return invert(shuffled)
}
