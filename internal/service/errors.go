package service

import (
	"errors"
	"strings"
)

// ValidationError reports required fields that were empty after trimming, by
// display label, so handlers can show them to the user directly.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyArchived = errors.New("record is already archived")
	ErrNotArchived     = errors.New("record is not archived")
)
