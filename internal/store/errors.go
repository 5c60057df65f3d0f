package store

import "errors"

var (
	ErrNotFound         = errors.New("period not found")
	ErrRecordNotFound   = errors.New("daily record not found")
	ErrEventNotFound    = errors.New("annual event not found")
	ErrRevisionConflict = errors.New("period revision conflict")
)
