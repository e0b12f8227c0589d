// Package fingerprint implements the deterministic document-fingerprinting
// pipeline: overlapping character k-grams, 64-bit hashing, Winnowing
// selection, exact Jaccard similarity and match-span reconstruction.
//
// All positions are scalar code point (rune) indices into the normalised
// text, so non-ASCII corpora keep one position per character.
package fingerprint

// KGram is an overlapping substring of length k together with the rune
// offset at which it starts in the normalised text.
type KGram struct {
	Gram string
	Pos  int
}

// Fingerprint is a (hash, position) pair selected by Winnowing, or an
// intermediate hashed k-gram before selection.
type Fingerprint struct {
	Hash uint64
	Pos  int
}

// KGrams emits every overlapping k-gram of the normalised text with its
// starting rune offset. A text shorter than k emits nothing.
func KGrams(normalized string, k int) []KGram {
	if k < 1 {
		return nil
	}
	runes := []rune(normalized)
	if len(runes) < k {
		return nil
	}

	grams := make([]KGram, 0, len(runes)-k+1)
	for i := 0; i+k <= len(runes); i++ {
		grams = append(grams, KGram{Gram: string(runes[i : i+k]), Pos: i})
	}
	return grams
}

// HashedKGrams emits the Hash64 of every k-gram, keeping source offsets.
func HashedKGrams(normalized string, k int) []Fingerprint {
	grams := KGrams(normalized, k)
	if len(grams) == 0 {
		return nil
	}

	hashed := make([]Fingerprint, len(grams))
	for i, g := range grams {
		hashed[i] = Fingerprint{Hash: Hash64(g.Gram), Pos: g.Pos}
	}
	return hashed
}

// HashSet returns the set of distinct k-gram hashes of the text. This is
// the input domain for MinHash signatures.
func HashSet(normalized string, k int) map[uint64]struct{} {
	grams := KGrams(normalized, k)
	set := make(map[uint64]struct{}, len(grams))
	for _, g := range grams {
		set[Hash64(g.Gram)] = struct{}{}
	}
	return set
}
