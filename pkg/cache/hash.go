package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/matzehuels/sunburst/pkg/tree"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// TreeHash hashes the RFC 8785 canonical JSON form of t, so trees that
// differ only in how they were written (format, key order, spacing) share
// cache entries.
func TreeHash(t tree.Tree) (string, error) {
	data, err := tree.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal tree: %w", err)
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("canonicalize tree: %w", err)
	}
	return Hash(canonical), nil
}
