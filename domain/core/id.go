package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
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

// Domain-specific ID types
type (
	// FeatureID labels one observed variable (e.g. a taxon) of a feature matrix.
	FeatureID ID
	// SampleID labels one sample column of a feature matrix.
	SampleID ID
	RunID    ID
)

func (id FeatureID) String() string { return ID(id).String() }
func (id SampleID) String() string  { return ID(id).String() }
func (id RunID) String() string     { return ID(id).String() }

// NewRunID creates an identifier for one pipeline invocation
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseFeatureID parses a string into FeatureID
func ParseFeatureID(s string) (FeatureID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w", ErrEmptyFeatureID)
	}
	return FeatureID(s), nil
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}
