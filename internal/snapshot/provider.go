// Package snapshot persists the store state as one opaque blob under a
// fixed key and rehydrates it at startup.
package snapshot

// Key is the single key the state blob is stored under.
const Key = "root"

// Provider stores blobs by key.
type Provider interface {
	// Load returns the blob stored under key, or an error wrapping
	// apperr.ErrNotFound when nothing has been saved yet.
	Load(key string) ([]byte, error)
	// Save replaces the blob under key.
	Save(key string, blob []byte) error
	// Close releases any underlying resources.
	Close() error
}
