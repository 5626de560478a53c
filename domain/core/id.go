package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// SweepID identifies one effect-size sweep computation
type SweepID ID

func (id SweepID) String() string { return ID(id).String() }

// NewSweepID creates an identifier for a sweep result
func NewSweepID() SweepID {
	return SweepID(NewID())
}
