package contracts

import (
	"errors"
	"fmt"
)

// ErrInsufficientData indicates a required table was empty after
// validity filtering. Hard failure, no partial result.
var ErrInsufficientData = errors.New("insufficient data after filtering")

// ErrInsufficientUniverse indicates a scoring source dataset was empty
// after retrieval, so no composite ranking can be produced.
var ErrInsufficientUniverse = errors.New("insufficient universe coverage")

// ConfigError is a caller error detected before any computation begins:
// an invalid direction flag, window size, or weight vector.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// IsConfigError reports whether err is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
