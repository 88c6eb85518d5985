package util

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID returns a unique record identifier: creation time in millis plus a
// random suffix. Not sortable, not predictable; uniqueness is all that is
// required of it.
func NewID() string {
	return fmt.Sprintf("id-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
