package uid

import "github.com/google/uuid"

// New returns a random identifier suitable for request tracing.
func New() string {
	return uuid.NewString()
}
