package systems

// Clamp bounds a stat to [0, 100].
func Clamp(v float64) float64 {
	return min(max(v, 0), 100)
}

// lerp maps t in [0, 1] onto [lo, hi].
func lerp(lo, hi, t float64) float64 {
	return lo + t*(hi-lo)
}

// levelIndex converts a 1-based level into an index of a table of n rows,
// saturating at both ends.
func levelIndex(level, n int) int {
	return min(max(level-1, 0), n-1)
}

// multiplier looks up a table entry, defaulting to 1.
func multiplier(table map[string]float64, key string) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return 1
}
