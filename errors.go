// FILE: lixenwraith/objtemplate/errors.go
package objtemplate

import (
	"errors"
	"fmt"
)

var (
	// ErrContractViolation is returned when a destination path needs a container
	// where the result tree already holds a scalar
	ErrContractViolation = errors.New("destination contract violation")

	// ErrTemplateNotFound is returned when a template file cannot be located
	ErrTemplateNotFound = errors.New("template not found")

	// ErrUnknownFormat is returned when a file format cannot be determined
	ErrUnknownFormat = errors.New("unknown file format")

	// ErrInvalidEntry is returned for template entries that are neither a path
	// string nor a {path, helper} record
	ErrInvalidEntry = errors.New("invalid template entry")
)

// ContractError describes a write that met a value of the wrong shape
type ContractError struct {
	Path  string // destination path being written
	Found any    // value already present in the result tree
	Want  string // "mapping" or "sequence"
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%v: %q needs a %s but found %T", ErrContractViolation, e.Path, e.Want, e.Found)
}

// Unwrap lets errors.Is match ErrContractViolation
func (e *ContractError) Unwrap() error {
	return ErrContractViolation
}
