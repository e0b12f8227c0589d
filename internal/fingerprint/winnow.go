package fingerprint

// Winnow selects the document fingerprint: the minimum-hash element of every
// sliding window of w consecutive hashed k-grams. Ties inside a window break
// to the leftmost position. An element equal to the immediately previously
// selected (hash, pos) pair is suppressed, which is the Winnowing
// "suppress consecutive duplicates" rule.
//
// The output is a deterministic function of the text, k and w; positions are
// non-decreasing. A hash stream shorter than the window yields no windows and
// therefore no fingerprints.
func Winnow(normalized string, k, w int) []Fingerprint {
	hashed := HashedKGrams(normalized, k)
	if len(hashed) == 0 {
		return nil
	}

	window := w
	if window < 1 {
		window = 1
	}

	var picked []Fingerprint
	for i := 0; i+window <= len(hashed); i++ {
		min := hashed[i]
		for j := i + 1; j < i+window; j++ {
			// Strict less keeps the leftmost of equal minima.
			if hashed[j].Hash < min.Hash {
				min = hashed[j]
			}
		}
		if n := len(picked); n > 0 && picked[n-1] == min {
			continue
		}
		picked = append(picked, min)
	}
	return picked
}
