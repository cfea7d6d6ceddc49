package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrCountryNotFound  = fmt.Errorf("%w: country", ErrNotFound)
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot", ErrNotFound)

	// Selection and analysis errors
	ErrUnknownFeature   = errors.New("unknown feature")
	ErrNoSelection      = errors.New("nothing selected")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Dataset errors
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrEmptyDataset   = fmt.Errorf("%w: no records", ErrInvalidDataset)
)

// NewNotFoundError builds a not-found error for a resource/id pair
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewRowError reports a malformed input row
func NewRowError(row int, reason string) error {
	return fmt.Errorf("%w: row %d: %s", ErrInvalidDataset, row, reason)
}

// NewInsufficientDataError reports that a computation had too few usable observations
func NewInsufficientDataError(what string, n int) error {
	return fmt.Errorf("%w: %s has %d usable observations", ErrInsufficientData, what, n)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsDatasetError(err error) bool {
	return errors.Is(err, ErrInvalidDataset)
}
