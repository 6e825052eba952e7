package database

import (
	"errors"

	"github.com/lib/pq"
)

// ErrRequestResolved is returned when resolving a friend request that is
// no longer pending.
var ErrRequestResolved = errors.New("friend request already resolved")

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation, so callers can surface it as a conflict.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
