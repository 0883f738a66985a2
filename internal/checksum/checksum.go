// Package checksum fingerprints snapshot blobs so writers and watchers can
// tell their own output apart from external edits.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sync"
)

// historySize bounds how many earlier digests a Tracker remembers.
const historySize = 16

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Tracker remembers the digest of the last blob seen plus a short history
// of earlier ones. Safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	last    string
	history []string // oldest first, includes last
}

// Observe records data and reports whether it differs from the previous blob.
func (t *Tracker) Observe(data []byte) bool {
	sum := Sum(data)
	t.mu.Lock()
	defer t.mu.Unlock()
	if sum == t.last {
		return false
	}
	t.last = sum
	t.history = append(t.history, sum)
	if len(t.history) > historySize {
		t.history = slices.Delete(t.history, 0, len(t.history)-historySize)
	}
	return true
}

// Known reports whether data matches any recently observed blob.
func (t *Tracker) Known(data []byte) bool {
	sum := Sum(data)
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.history, sum)
}

// Last returns the digest of the most recently observed blob.
func (t *Tracker) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
