package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document. It is
	// distinct from a store failure so services can tell "absent" apart
	// from "unavailable".
	ErrNotFound = errors.New("record not found")

	// ErrDuplicatePair is returned by ConnectionRepository.Insert when the
	// unique pair_key index rejects a second request for the same pair.
	ErrDuplicatePair = errors.New("connection request already exists for this pair")
)
