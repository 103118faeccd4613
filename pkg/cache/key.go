package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes the SHA-256 hash of the input as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GraphKey derives the cache key of a computed Reeb graph from everything
// that determines it: the hash of the mesh file content, the scalar field
// selector and the simplification threshold.
func GraphKey(meshHash, field string, threshold float64) string {
	parts, _ := json.Marshal([]interface{}{meshHash, field, threshold})
	return fmt.Sprintf("reeb:%s", Hash(parts))
}
