package utils

import "github.com/pkg/errors"

// ErrInvalidConfiguration is returned when dimensions, probabilities or the
// history capacity are outside their allowed ranges.
var ErrInvalidConfiguration = errors.New("invalid configuration")
