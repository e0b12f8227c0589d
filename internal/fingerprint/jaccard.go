package fingerprint

// Jaccard computes the exact Jaccard similarity of the hash sets underlying
// two fingerprint sequences: |A ∩ B| / |A ∪ B|. Positions are ignored;
// repeated hashes count once. Returns 0 when either side is empty.
func Jaccard(a, b []Fingerprint) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[uint64]struct{}, len(a))
	for _, fp := range a {
		setA[fp.Hash] = struct{}{}
	}
	setB := make(map[uint64]struct{}, len(b))
	for _, fp := range b {
		setB[fp.Hash] = struct{}{}
	}

	intersection := 0
	for h := range setA {
		if _, ok := setB[h]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
