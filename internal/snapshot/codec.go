package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

// Encode serialises the whole state tree.
func Encode(s store.State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// Decode parses a blob produced by Encode. Sections missing from the blob
// keep their empty defaults. Any parse failure wraps apperr.ErrCorruptSnapshot.
func Decode(blob []byte) (store.State, error) {
	s := store.Empty()
	if err := json.Unmarshal(blob, &s); err != nil {
		return store.Empty(), fmt.Errorf("snapshot: decode: %w: %v", apperr.ErrCorruptSnapshot, err)
	}
	return normalize(s), nil
}

// normalize replaces null collections with empty ones.
func normalize(s store.State) store.State {
	if s.Products.Items == nil {
		s.Products.Items = []models.Product{}
	}
	if s.Orders.Items == nil {
		s.Orders.Items = []models.Order{}
	}
	if s.Users.Items == nil {
		s.Users.Items = []models.User{}
	}
	if s.Blog.Items == nil {
		s.Blog.Items = []models.BlogPost{}
	}
	if s.Categories.Items == nil {
		s.Categories.Items = []models.Category{}
	}
	if s.Notifications.Items == nil {
		s.Notifications.Items = []models.Notification{}
	}
	return s
}
