package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ComputeOutcomeHash fingerprints an ordered list of per-seed counter pairs.
// Order matters: seed order is part of the run identity.
func ComputeOutcomeHash(seeds []int64, numerators, denominators []float64) Hash {
	var data strings.Builder
	for i := range seeds {
		data.WriteString(fmt.Sprintf("%d:%g/%g;", seeds[i], numerators[i], denominators[i]))
	}
	return NewHash([]byte(data.String()))
}
