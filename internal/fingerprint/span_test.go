package fingerprint

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpans_IdenticalDocuments(t *testing.T) {
	fps := Winnow(paragraph, 5, 4)
	require.NotEmpty(t, fps)

	spans := BuildSpans(fps, fps, 5)
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, fps[0].Pos, s.DocStart)
	assert.Equal(t, fps[len(fps)-1].Pos+5, s.DocEnd)
	assert.Equal(t, s.DocStart, s.SrcStart)
	assert.Equal(t, s.DocEnd, s.SrcEnd)
	assert.Greater(t, s.Score, 0.0)
	assert.LessOrEqual(t, s.Score, 1.0)
	assert.Equal(t, strconv.FormatUint(fps[0].Hash, 10), s.SnippetHash)
}

func TestBuildSpans_NoSharedHashes(t *testing.T) {
	a := []Fingerprint{{Hash: 1, Pos: 0}, {Hash: 2, Pos: 6}}
	b := []Fingerprint{{Hash: 9, Pos: 0}, {Hash: 8, Pos: 6}}
	assert.Empty(t, BuildSpans(a, b, 5))
}

func TestBuildSpans_EmptyInputs(t *testing.T) {
	fps := []Fingerprint{{Hash: 1, Pos: 0}}
	assert.Empty(t, BuildSpans(nil, fps, 5))
	assert.Empty(t, BuildSpans(fps, nil, 5))
}

func TestBuildSpans_MergesNearbyMatches(t *testing.T) {
	// Second match at pos 7 is within docEnd(5)+k(5)=10 of the first.
	doc := []Fingerprint{{Hash: 10, Pos: 0}, {Hash: 11, Pos: 7}}
	src := []Fingerprint{{Hash: 10, Pos: 0}, {Hash: 11, Pos: 7}}

	spans := BuildSpans(doc, src, 5)
	require.Len(t, spans, 1)
	assert.Equal(t, 0, spans[0].DocStart)
	assert.Equal(t, 12, spans[0].DocEnd)
	assert.Equal(t, 12, spans[0].SrcEnd)
	assert.Equal(t, "10", spans[0].SnippetHash)
}

func TestBuildSpans_SplitsDistantMatches(t *testing.T) {
	doc := []Fingerprint{{Hash: 10, Pos: 0}, {Hash: 11, Pos: 100}}
	src := []Fingerprint{{Hash: 10, Pos: 40}, {Hash: 11, Pos: 200}}

	spans := BuildSpans(doc, src, 5)
	require.Len(t, spans, 2)

	assert.Equal(t, 0, spans[0].DocStart)
	assert.Equal(t, 5, spans[0].DocEnd)
	assert.Equal(t, 40, spans[0].SrcStart)
	assert.Equal(t, 45, spans[0].SrcEnd)

	assert.Equal(t, 100, spans[1].DocStart)
	assert.Equal(t, 105, spans[1].DocEnd)
	assert.Equal(t, "11", spans[1].SnippetHash)
}

func TestBuildSpans_UsesFirstSourcePosition(t *testing.T) {
	doc := []Fingerprint{{Hash: 10, Pos: 0}}
	src := []Fingerprint{{Hash: 10, Pos: 30}, {Hash: 10, Pos: 3}}

	spans := BuildSpans(doc, src, 5)
	require.Len(t, spans, 1)
	assert.Equal(t, 3, spans[0].SrcStart)
	assert.Equal(t, 8, spans[0].SrcEnd)
}

func TestBuildSpans_InvariantsHold(t *testing.T) {
	doc := Winnow(paragraph, 5, 4)
	other := Winnow("the lazy dog sleeps near the river bank under a warm sun "+
		"while the quick brown fox jumps far away", 5, 4)
	require.NotEmpty(t, doc)
	require.NotEmpty(t, other)

	spans := BuildSpans(doc, other, 5)
	prevStart := -1
	for _, s := range spans {
		assert.Less(t, s.DocStart, s.DocEnd)
		assert.Less(t, s.SrcStart, s.SrcEnd)
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 1.0)
		assert.Greater(t, s.DocStart, prevStart)
		prevStart = s.DocStart
	}
}

func TestBuildSpans_ScoreCapsAtOne(t *testing.T) {
	// One fingerprint, k=5: denominator 5, span length 5 -> score exactly 1.
	doc := []Fingerprint{{Hash: 10, Pos: 0}}
	src := []Fingerprint{{Hash: 10, Pos: 0}}

	spans := BuildSpans(doc, src, 5)
	require.Len(t, spans, 1)
	assert.Equal(t, 1.0, spans[0].Score)
}
