package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// LookupKey derives the cache key for a lookup result from the target IP
// and the requested field filter. The field set is lowercased and sorted
// before hashing, so the key is insensitive to filter ordering. An empty
// or nil filter (full default field set) yields a distinct key from any
// filtered shape.
func LookupKey(ip string, fields []string) string {
	shape := struct {
		IP     string   `json:"ip"`
		Fields []string `json:"fields,omitempty"`
	}{IP: ip}

	if len(fields) > 0 {
		shape.Fields = make([]string, len(fields))
		for i, f := range fields {
			shape.Fields[i] = strings.ToLower(strings.TrimSpace(f))
		}
		sort.Strings(shape.Fields)
	}

	data, _ := json.Marshal(shape)
	return "lookup:" + Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
