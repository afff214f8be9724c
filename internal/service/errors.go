package service

import "errors"

var (
	// ErrPersistence marks a failed write whose in-memory result is still
	// valid. Callers may retry; the engine never does.
	ErrPersistence = errors.New("persistence failure")

	// ErrSuperseded marks a write-back overtaken by a newer computation for
	// the same project. It is handled internally and never surfaces as a
	// failure.
	ErrSuperseded = errors.New("superseded by a newer computation")
)
