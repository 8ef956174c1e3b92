package exam

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn    = errors.New("missing column")
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrNoNumericColumns = errors.New("no numeric columns")
	ErrMalformedRecords = errors.New("malformed examination records")
)

// NewMissingColumnError names the column that was not found
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

// NewInsufficientDataError reports how many rows were available
func NewInsufficientDataError(stage string, rows, needed int) error {
	return fmt.Errorf("%w: %s has %d rows, need at least %d", ErrInsufficientData, stage, rows, needed)
}
