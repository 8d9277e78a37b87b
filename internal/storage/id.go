package storage

import (
	"github.com/google/uuid"

	"expenses/internal/core"
)

// newID returns a random identifier. Random ids are never reused, even
// after the newest expense is deleted.
func newID() core.ID {
	return core.ID(uuid.NewString())
}
