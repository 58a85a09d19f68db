package survey

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFilter    = errors.New("unknown filter")
	ErrMissingColumns   = errors.New("missing required columns")
	ErrInvalidColumnMap = errors.New("invalid column mapping")
)

// NewMissingColumnsError names the required columns absent from a header row
func NewMissingColumnsError(missing []string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
}
