package utils

// HashString folds a seed string into a non-negative integer using the
// classic 31-multiplier string hash with 32-bit signed wraparound.
// Identical seeds always produce identical hashes on every platform, which
// is what the heatmap and time-series generators rely on for repeatability.
func HashString(seed string) int {
	var h int32
	for _, r := range seed {
		h = (h << 5) - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v)
}

// HashFraction returns a value in [0, 1) taken from the decimal slice of h
// selected by div (1, 1000, 1e6, ...) and mod (size of the slice).
func HashFraction(h, div, mod int) float64 {
	return float64((h/div)%mod) / float64(mod)
}
