package stac

import "github.com/google/uuid"

// newID generates an identifier for entities constructed without one.
func newID() string {
	return uuid.NewString()
}
