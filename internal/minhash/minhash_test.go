package minhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_FixedLength(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	for _, n := range []int{1, 7, 100, 128} {
		sig := Signature(text, 5, n)
		assert.Len(t, sig, n)
	}
}

func TestSignature_EmptyTextIsSentinel(t *testing.T) {
	sig := Signature("", 5, 10)
	require.Len(t, sig, 10)
	for _, v := range sig {
		assert.Equal(t, Prime, v)
	}
}

func TestSignature_TooShortTextIsSentinel(t *testing.T) {
	sig := Signature("abc", 5, 4)
	require.Len(t, sig, 4)
	for _, v := range sig {
		assert.Equal(t, Prime, v)
	}
}

func TestSignature_WireContract(t *testing.T) {
	// Single k-gram "abcde": the signature is fully determined by the fixed
	// coefficient family and must match independent implementations.
	sig := Signature("abcde", 5, 100)
	require.Len(t, sig, 100)
	assert.Equal(t, uint64(278779348062708928), sig[0])
	assert.Equal(t, uint64(1240676839149595463), sig[1])
	assert.Equal(t, uint64(1223136455786490983), sig[99])
}

func TestSignature_EntriesBelowSentinel(t *testing.T) {
	sig := Signature("the quick brown fox", 5, 100)
	for _, v := range sig {
		assert.Less(t, v, Prime)
	}
}

func TestSignature_Deterministic(t *testing.T) {
	text := "determinism is part of the contract"
	assert.Equal(t, Signature(text, 5, 100), Signature(text, 5, 100))
}

func TestEstimate_Identity(t *testing.T) {
	sig := Signature("some document body with enough text", 5, 100)
	assert.Equal(t, 1.0, Estimate(sig, sig))
}

func TestEstimate_EmptySides(t *testing.T) {
	sig := Signature("some document", 5, 100)
	assert.Equal(t, 0.0, Estimate(nil, sig))
	assert.Equal(t, 0.0, Estimate(sig, nil))
}

func TestEstimate_DisjointVocabularies(t *testing.T) {
	a := Signature("aaaa aaaa aaaa", 5, 100)
	b := Signature("bbbb bbbb bbbb", 5, 100)
	assert.Equal(t, 0.0, Estimate(a, b))
}

func TestEstimate_ShorterLengthWins(t *testing.T) {
	a := []uint64{1, 2, 3, 4}
	b := []uint64{1, 2, 9}
	// 2 matches over min length 3.
	assert.InDelta(t, 2.0/3.0, Estimate(a, b), 1e-12)
}

func TestBucketKeys_CountAndFormat(t *testing.T) {
	sig := Signature("the quick brown fox jumps over the lazy dog", 5, 100)
	keys := BucketKeys(sig, 20)
	require.Len(t, keys, 20)
	for i, key := range keys {
		assert.Regexp(t, `^\d+:[0-9a-f]{40}$`, key)
		assert.Contains(t, key, ":")
		_ = i
	}
}

func TestBucketKeys_WireContract(t *testing.T) {
	keys := BucketKeys([]uint64{1, 2, 3, 4, 5}, 1)
	require.Len(t, keys, 1)
	assert.Equal(t, "0:ed11a88d51164e279adc3132773fb9af960b1e04", keys[0])
}

func TestBucketKeys_RemainderDropped(t *testing.T) {
	// 7 entries over 3 bands: r=2, entry 6 is never read.
	a := []uint64{10, 11, 12, 13, 14, 15, 16}
	b := []uint64{10, 11, 12, 13, 14, 15, 99}
	assert.Equal(t, BucketKeys(a, 3), BucketKeys(b, 3))
}

func TestBucketKeys_MoreBandsThanEntries(t *testing.T) {
	assert.Empty(t, BucketKeys([]uint64{1, 2, 3}, 20))
	assert.Empty(t, BucketKeys(nil, 20))
	assert.Empty(t, BucketKeys([]uint64{1, 2, 3}, 0))
}

func TestSharesBucket(t *testing.T) {
	assert.True(t, SharesBucket([]string{"a", "b"}, []string{"c", "b"}))
	assert.False(t, SharesBucket([]string{"a"}, []string{"c"}))
	assert.False(t, SharesBucket(nil, []string{"c"}))
}

func TestSharesBucket_IdenticalSignatures(t *testing.T) {
	sig := Signature("identical corpora collide in every band", 5, 100)
	keys := BucketKeys(sig, 20)
	assert.True(t, SharesBucket(keys, keys))
}
