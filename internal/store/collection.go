package store

import "github.com/starford/ansuz/internal/models"

// The helpers below always allocate, so a previous State that shares a
// backing array with the input is never observed to change.

func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

func replace[T models.Record](items []T, v T) []T {
	idx := indexOf(items, v.RecordID())
	if idx < 0 {
		return items
	}
	out := make([]T, len(items))
	copy(out, items)
	out[idx] = v
	return out
}

func remove[T models.Record](items []T, id string) []T {
	if indexOf(items, id) < 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.RecordID() != id {
			out = append(out, it)
		}
	}
	return out
}

func find[T models.Record](items []T, id string) (T, bool) {
	if idx := indexOf(items, id); idx >= 0 {
		return items[idx], true
	}
	var zero T
	return zero, false
}

func indexOf[T models.Record](items []T, id string) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}
