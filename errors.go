package cpudispatch

import (
	"fmt"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/status"
)

// Error is the error type returned by every failing cpudispatch operation.
type Error = status.Error

// Status classifies an Error.
type Status = status.Status

var (
	ErrNullArgument        = status.ErrNullArgument
	ErrMisalignedArgument  = status.ErrMisalignedArgument
	ErrInvalidArgument     = status.ErrInvalidArgument
	ErrInvalidData         = status.ErrInvalidData
	ErrInvalidState        = status.ErrInvalidState
	ErrUnsupportedHardware = status.ErrUnsupportedHardware
	ErrUnsupportedSoftware = status.ErrUnsupportedSoftware
	ErrInsufficientBuffer  = status.ErrInsufficientBuffer
	ErrOutOfMemory         = status.ErrOutOfMemory
	ErrSystemError         = status.ErrSystemError
	ErrAccessDenied        = status.ErrAccessDenied
)

// StatusOf returns the Status carried by err, Ok for nil.
func StatusOf(err error) Status { return status.Of(err) }

// ErrUnknownFeature indicates a feature identifier that names no feature of
// the running architecture.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownFeature struct {
	ID           string
	Architecture feature.Architecture
	cause        error
}

func (e *ErrUnknownFeature) Error() string {
	return fmt.Sprintf("unknown feature %q for architecture %s", e.ID, e.Architecture)
}

func (e *ErrUnknownFeature) Unwrap() error { return e.cause }

// LookupFeature resolves a feature identifier to the bits it names on arch.
// It fails with *ErrUnknownFeature when id names nothing.
func LookupFeature(arch feature.Architecture, id string) (feature.ISA, feature.SIMD, feature.System, error) {
	isa, simd, sys, ok := feature.Masks(arch, id)
	if !ok {
		return 0, 0, 0, &ErrUnknownFeature{ID: id, Architecture: arch, cause: status.ErrInvalidArgument}
	}
	return isa, simd, sys, nil
}
