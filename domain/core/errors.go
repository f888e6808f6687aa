package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Method selection errors
	ErrUnsupportedMethod      = errors.New("unsupported method")
	ErrUnsupportedCorrelation = fmt.Errorf("%w: correlation", ErrUnsupportedMethod)
	ErrUnsupportedAdjustment  = fmt.Errorf("%w: p-value adjustment", ErrUnsupportedMethod)

	// Table errors
	ErrMissingColumn = errors.New("missing column")
	ErrUnknownColumn = errors.New("unknown column")

	// Matrix errors
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrDuplicateFeature  = errors.New("duplicate feature identifier")
	ErrEmptyFeatureID    = errors.New("empty feature identifier")
	ErrTooManyPairs      = errors.New("too many feature pairs")
)

// Error constructors with context
func NewUnsupportedCorrelationError(name string) error {
	return fmt.Errorf("%w %q (want pearson, spearman or kendall)", ErrUnsupportedCorrelation, name)
}

func NewUnsupportedAdjustmentError(name string) error {
	return fmt.Errorf("%w %q", ErrUnsupportedAdjustment, name)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: table has no %s column", ErrMissingColumn, column)
}

func NewDimensionMismatchError(a, b FeatureID, lenA, lenB int) error {
	return fmt.Errorf("%w: feature %s has %d values, feature %s has %d", ErrDimensionMismatch, a, lenA, b, lenB)
}

func NewDuplicateFeatureError(id FeatureID) error {
	return fmt.Errorf("%w: %s", ErrDuplicateFeature, id)
}

// Error checking helpers
func IsUnsupportedMethodError(err error) bool {
	return errors.Is(err, ErrUnsupportedMethod)
}

func IsMissingColumnError(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrDuplicateFeature) ||
		errors.Is(err, ErrEmptyFeatureID) ||
		errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrTooManyPairs)
}
