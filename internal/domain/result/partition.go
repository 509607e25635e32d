package result

// DefaultPodiumSize is the number of leading candidates highlighted.
const DefaultPodiumSize = 3

// Partition splits ranking into its first k items and the remainder. Both
// returned slices share ranking's backing array.
func Partition[T any](ranking []T, k int) (podium, rest []T) {
	k = max(0, min(k, len(ranking)))
	return ranking[:k:k], ranking[k:]
}
