package services

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to the HTTP layer. All are local and non-fatal;
// handlers match them with errors.Is to pick a status code.
var (
	ErrInvalidStatus     = errors.New("invalid status type")
	ErrSelfRequest       = errors.New("cannot send a connection request to yourself")
	ErrDuplicateRequest  = errors.New("connection request already exists")
	ErrRecipientNotFound = errors.New("user not found")
	ErrRequestNotFound   = errors.New("connection request not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// storeErr wraps a repository failure so it always surfaces as
// ErrStoreUnavailable while keeping the cause in the message.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
