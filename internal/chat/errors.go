package chat

import "errors"

var (
	// ErrConflict signals a uniqueness violation: duplicate username,
	// email, room name, pending friend request, or friendship edge.
	ErrConflict = errors.New("conflict")
	// ErrNotFound signals an operation referencing a nonexistent record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState signals an operation that is structurally invalid,
	// such as responding to an already-resolved friend request or a
	// message without exactly one destination.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnauthorized signals a failed credential or permission check.
	ErrUnauthorized = errors.New("unauthorized")
)
