package fingerprint

import (
	"sort"
	"strconv"
)

// Span is a contiguous range of the checked document aligned with a range of
// a source document where winnowed k-gram hashes match. Offsets are rune
// indices into the respective normalised texts, end-exclusive.
type Span struct {
	DocStart int
	DocEnd   int
	SrcStart int
	SrcEnd   int

	// Score is min(1, (DocEnd-DocStart) / (|fpDoc| * k)). The normaliser
	// mixes a character-offset length with a fingerprint count times k; the
	// ratio is dimensionally odd but is the contract: it conveys relative
	// span weight, not Jaccard.
	Score float64

	// SnippetHash is the decimal string of the first raw match hash in the
	// span.
	SnippetHash string
}

type rawMatch struct {
	hash uint64
	aPos int
	bPos int
}

// BuildSpans aligns the fingerprints of the checked document (fpDoc) against
// a source document (fpSrc) and merges matching positions into spans.
//
// Each doc fingerprint whose hash occurs in the source is matched against the
// first (smallest) source position recorded for that hash. Matches sorted by
// document position are swept left to right: a match within k of the current
// span's end extends it, anything farther starts a new span. Spans come out
// ordered by ascending DocStart with DocStart < DocEnd and SrcStart < SrcEnd.
func BuildSpans(fpDoc, fpSrc []Fingerprint, k int) []Span {
	if len(fpDoc) == 0 || len(fpSrc) == 0 || k < 1 {
		return nil
	}

	firstSrcPos := make(map[uint64]int, len(fpSrc))
	for _, fp := range fpSrc {
		if pos, ok := firstSrcPos[fp.Hash]; !ok || fp.Pos < pos {
			firstSrcPos[fp.Hash] = fp.Pos
		}
	}

	var matches []rawMatch
	for _, fp := range fpDoc {
		if bPos, ok := firstSrcPos[fp.Hash]; ok {
			matches = append(matches, rawMatch{hash: fp.Hash, aPos: fp.Pos, bPos: bPos})
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].aPos < matches[j].aPos })

	denom := float64(len(fpDoc) * k)
	score := func(s Span) float64 {
		v := float64(s.DocEnd-s.DocStart) / denom
		if v > 1 {
			v = 1
		}
		return v
	}

	var spans []Span
	current := Span{
		DocStart:    matches[0].aPos,
		DocEnd:      matches[0].aPos + k,
		SrcStart:    matches[0].bPos,
		SrcEnd:      matches[0].bPos + k,
		SnippetHash: strconv.FormatUint(matches[0].hash, 10),
	}
	for _, m := range matches[1:] {
		if m.aPos <= current.DocEnd+k {
			current.DocEnd = m.aPos + k
			// First-position alignment can map a later doc match to an
			// earlier source offset; the span end never moves backwards so
			// SrcStart < SrcEnd holds for every emitted span.
			if end := m.bPos + k; end > current.SrcEnd {
				current.SrcEnd = end
			}
			continue
		}
		current.Score = score(current)
		spans = append(spans, current)
		current = Span{
			DocStart:    m.aPos,
			DocEnd:      m.aPos + k,
			SrcStart:    m.bPos,
			SrcEnd:      m.bPos + k,
			SnippetHash: strconv.FormatUint(m.hash, 10),
		}
	}
	current.Score = score(current)
	spans = append(spans, current)

	return spans
}
