package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownKind     = errors.New("unknown entity kind")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
