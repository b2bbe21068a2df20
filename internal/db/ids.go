package db

import (
	"encoding/hex"

	"github.com/google/uuid"

	"linkshare/internal/metrics"
)

// maxInsertAttempts bounds retries after an id collision.
const maxInsertAttempts = 5

// NewID returns a random 128-bit identifier as 32 lowercase hex characters.
func NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// insertWithRetry calls insert with freshly generated ids until it succeeds,
// fails with an error that is not an id conflict, or maxAttempts ids have
// all collided, in which case it returns ErrIDExhausted.
func insertWithRetry(maxAttempts int, generate func() string, insert func(id string) error, isIDConflict func(error) bool) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id := generate()
		err := insert(id)
		if err == nil {
			return id, nil
		}
		if !isIDConflict(err) {
			return "", err
		}
	}
	return "", ErrIDExhausted
}

// allocate runs insert with ids from the store's generator, retrying when the
// id collides with the primary key of table.
func (d *DB) allocate(table string, insert func(id string) error) (string, error) {
	idKey := table + ".id"
	return insertWithRetry(maxInsertAttempts, d.newID, insert, func(err error) bool {
		if uniqueViolation(err) != idKey {
			return false
		}
		metrics.RecordIDCollision(table)
		return true
	})
}
