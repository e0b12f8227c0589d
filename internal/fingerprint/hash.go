package fingerprint

import (
	"crypto/sha1"
	"encoding/binary"
)

// Hash64 maps a string to a 64-bit integer by taking the first 8 bytes of
// the SHA-1 digest of its UTF-8 bytes, interpreted big-endian. SHA-1 is part
// of the wire contract (its hex output is also embedded in LSH bucket keys),
// so independent implementations produce colliding fingerprints. K-grams are
// short and bounded in count, so digest speed is not a constraint here.
func Hash64(s string) uint64 {
	sum := sha1.Sum([]byte(s))
	return binary.BigEndian.Uint64(sum[:8])
}
