package match

// SuggestThreshold is the minimum similarity for a candidate to be suggested.
const SuggestThreshold = 0.6

// Suggest returns the candidate most similar to name, or "" when none
// reaches SuggestThreshold. Dotted candidates are also compared by their
// last segment. Ties keep the earliest candidate.
func Suggest(name string, candidates []string) string {
	var (
		best      string
		bestScore float64
	)

	for _, c := range candidates {
		score := max(NameSimilarity(name, c), NameSimilarity(name, LastSegment(c)))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < SuggestThreshold {
		return ""
	}

	return best
}
