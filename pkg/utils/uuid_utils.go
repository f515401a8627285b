package utils

import "github.com/google/uuid"

// GenerateUUIDv7 returns a time-ordered UUID. v7 keeps inserts roughly
// sequential for index locality; on the rare generation failure it falls
// back to a random v4.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
