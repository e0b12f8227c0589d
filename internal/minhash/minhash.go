// Package minhash computes fixed-length MinHash signatures over k-gram hash
// sets and the banded LSH bucket keys used for candidate retrieval. The
// permutation family, its constants and the bucket key format are wire
// contract: signatures and keys collide between independent implementations.
package minhash

import (
	"crypto/sha1"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/jordannanyan/plagiarism-backend/internal/fingerprint"
)

// Prime is the Mersenne prime 2^61-1. Signature entries are residues in
// [0, Prime); an empty input set yields the sentinel value Prime itself.
const Prime uint64 = 1<<61 - 1

// DefaultNumPerm is the signature length used by the check orchestrator.
const DefaultNumPerm = 100

// DefaultBands is the LSH band count used by the check orchestrator.
const DefaultBands = 20

// Signature computes the MinHash signature of the normalised text: for each
// of numPerm fixed universal-hash permutations over F_P, the minimum image of
// the set of distinct k-gram hashes. The result always has length numPerm;
// for a text with no k-grams every entry is the sentinel Prime.
func Signature(normalized string, k, numPerm int) []uint64 {
	set := fingerprint.HashSet(normalized, k)
	hashes := make([]uint64, 0, len(set))
	for h := range set {
		hashes = append(hashes, h)
	}
	return SignHashes(hashes, numPerm)
}

// SignHashes signs an explicit set of 64-bit k-gram hashes. Duplicates are
// harmless (the per-permutation minimum is unaffected) and input order is
// irrelevant.
//
// The permutation coefficients are fixed by contract:
//
//	a_i = 1 + (i*7919)  mod 100000
//	b_i = 1 + (i*104729) mod 100000
//	sig[i] = min over x of (a_i*x + b_i) mod Prime
//
// with x the input hash reduced mod Prime. Both multipliers are non-zero, so
// each permutation is a proper universal-hash member.
func SignHashes(hashes []uint64, numPerm int) []uint64 {
	if numPerm < 1 {
		return nil
	}

	sig := make([]uint64, numPerm)
	for i := range sig {
		sig[i] = Prime
	}
	if len(hashes) == 0 {
		return sig
	}

	for i := 0; i < numPerm; i++ {
		a := 1 + uint64(i)*7919%100000
		b := 1 + uint64(i)*104729%100000
		min := Prime
		for _, h := range hashes {
			v := permute(a, h%Prime, b)
			if v < min {
				min = v
			}
		}
		sig[i] = min
	}
	return sig
}

// permute evaluates (a*x + b) mod Prime with a 128-bit intermediate product;
// x is close to 2^61 so the multiply overflows 64 bits.
func permute(a, x, b uint64) uint64 {
	hi, lo := bits.Mul64(a, x)
	// a <= 100000 < Prime, so hi < Prime and Rem64 cannot trap.
	return (bits.Rem64(hi, lo, Prime) + b) % Prime
}

// Estimate returns the MinHash similarity estimate of two signatures: the
// fraction of positions whose minima collide, over the shorter length.
// Returns 0 if either signature is empty.
func Estimate(a, b []uint64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	matches := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(n)
}

// BucketKeys derives the LSH bucket keys of a signature. The signature is cut
// into bands of r = floor(len/bands) entries; each band's slice is joined as
// decimal strings with "-" and keyed as
//
//	"<band>:" + hex(SHA-1("<band>:" + joined))
//
// When len is not divisible by bands the trailing remainder entries are
// silently dropped; this is contract behaviour. Two documents are
// LSH-candidates when they share at least one key.
func BucketKeys(sig []uint64, bands int) []string {
	if bands < 1 {
		return nil
	}
	r := len(sig) / bands
	if r <= 0 {
		return nil
	}

	keys := make([]string, 0, bands)
	for b := 0; b < bands; b++ {
		slice := sig[b*r : (b+1)*r]
		parts := make([]string, len(slice))
		for i, v := range slice {
			parts[i] = strconv.FormatUint(v, 10)
		}
		material := fmt.Sprintf("%d:%s", b, strings.Join(parts, "-"))
		keys = append(keys, fmt.Sprintf("%d:%x", b, sha1.Sum([]byte(material))))
	}
	return keys
}

// SharesBucket reports whether two key sets intersect.
func SharesBucket(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, k := range a {
		set[k] = struct{}{}
	}
	for _, k := range b {
		if _, ok := set[k]; ok {
			return true
		}
	}
	return false
}
