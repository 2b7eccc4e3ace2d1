// Package status defines the error taxonomy shared by every cpudispatch package.
//
// Callers see a small, stable set of error kinds regardless of platform.
// Platform-specific causes (errno values, probe failures) are collapsed into
// a [Status] and carried by an [*Error], which matches the package sentinels
// through errors.Is:
//
//	_, err := telemetry.AcquireEnergyCounter(set, telemetry.RaplPackageEnergy)
//	if errors.Is(err, status.ErrAccessDenied) {
//	    // run as root or grant CAP_SYS_RAWIO
//	}
package status

import (
	"errors"
	"fmt"
)

// Status is an error kind.
type Status uint32

const (
	// Ok indicates success. It is never wrapped in an Error.
	Ok Status = iota
	// NullArgument indicates a required pointer argument was nil.
	NullArgument
	// MisalignedArgument indicates a pointer argument was not naturally aligned.
	MisalignedArgument
	// InvalidArgument indicates a bad enum value or an out-of-range argument.
	InvalidArgument
	// InvalidData indicates malformed input data.
	InvalidData
	// InvalidState indicates an operation applied to foreign, released or
	// mismatched state.
	InvalidState
	// UnsupportedHardware indicates the feature is physically absent.
	UnsupportedHardware
	// UnsupportedSoftware indicates the OS does not expose the facility.
	UnsupportedSoftware
	// InsufficientBuffer indicates a caller buffer was too small.
	InsufficientBuffer
	// OutOfMemory indicates an allocation failed.
	OutOfMemory
	// SystemError indicates an OS call failed for an unclassified reason.
	SystemError
	// AccessDenied indicates a privileged operation was refused.
	AccessDenied
)

var (
	ErrNullArgument        = errors.New("null argument")
	ErrMisalignedArgument  = errors.New("misaligned argument")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidData         = errors.New("invalid data")
	ErrInvalidState        = errors.New("invalid state")
	ErrUnsupportedHardware = errors.New("unsupported hardware")
	ErrUnsupportedSoftware = errors.New("unsupported software")
	ErrInsufficientBuffer  = errors.New("insufficient buffer")
	ErrOutOfMemory         = errors.New("out of memory")
	ErrSystemError         = errors.New("system error")
	ErrAccessDenied        = errors.New("access denied")
)

var sentinels = [...]error{
	NullArgument:        ErrNullArgument,
	MisalignedArgument:  ErrMisalignedArgument,
	InvalidArgument:     ErrInvalidArgument,
	InvalidData:         ErrInvalidData,
	InvalidState:        ErrInvalidState,
	UnsupportedHardware: ErrUnsupportedHardware,
	UnsupportedSoftware: ErrUnsupportedSoftware,
	InsufficientBuffer:  ErrInsufficientBuffer,
	OutOfMemory:         ErrOutOfMemory,
	SystemError:         ErrSystemError,
	AccessDenied:        ErrAccessDenied,
}

// Sentinel returns the sentinel error for s, or nil for Ok and unknown values.
func (s Status) Sentinel() error {
	if s == Ok || int(s) >= len(sentinels) {
		return nil
	}
	return sentinels[s]
}

// Defined reports whether s has an assigned meaning.
func (s Status) Defined() bool {
	return int(s) < len(sentinels)
}

var descriptions = [...]string{
	Ok:                  "Success",
	NullArgument:        "Null pointer",
	MisalignedArgument:  "Misaligned pointer",
	InvalidArgument:     "Invalid argument",
	InvalidData:         "Invalid data",
	InvalidState:        "Invalid state",
	UnsupportedHardware: "Unsupported hardware",
	UnsupportedSoftware: "Unsupported software",
	InsufficientBuffer:  "Insufficient buffer",
	OutOfMemory:         "Not enough memory",
	SystemError:         "System error",
	AccessDenied:        "Access denied",
}

var ids = [...]string{
	Ok:                  "Success",
	NullArgument:        "NullPointer",
	MisalignedArgument:  "MisalignedPointer",
	InvalidArgument:     "InvalidArgument",
	InvalidData:         "InvalidData",
	InvalidState:        "InvalidState",
	UnsupportedHardware: "UnsupportedHardware",
	UnsupportedSoftware: "UnsupportedSoftware",
	InsufficientBuffer:  "InsufficientBuffer",
	OutOfMemory:         "OutOfMemory",
	SystemError:         "SystemError",
	AccessDenied:        "AccessDenied",
}

// Description returns a human-readable description, or "" if s is undefined.
func (s Status) Description() string {
	if !s.Defined() {
		return ""
	}
	return descriptions[s]
}

// ID returns a short identifier, or "" if s is undefined.
func (s Status) ID() string {
	if !s.Defined() {
		return ""
	}
	return ids[s]
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if id := s.ID(); id != "" {
		return id
	}
	return fmt.Sprintf("Status(%d)", uint32(s))
}

// Error is returned by every public cpudispatch operation that fails.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type Error struct {
	// Op names the operation that failed, e.g. "atomics.Swap".
	Op string
	// Status is the error kind.
	Status Status
	// Required is the buffer length needed when Status is InsufficientBuffer.
	Required int
	// Err is the platform cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Status.Description()
	if e.Status == InsufficientBuffer {
		msg = fmt.Sprintf("%s (need %d bytes)", msg, e.Required)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e.Status.
func (e *Error) Is(target error) bool {
	s := e.Status.Sentinel()
	return s != nil && s == target
}

// New returns an *Error for op with kind s.
func New(op string, s Status) *Error {
	return &Error{Op: op, Status: s}
}

// Wrap returns an *Error for op with kind s caused by err.
func Wrap(op string, s Status, err error) *Error {
	return &Error{Op: op, Status: s, Err: err}
}

// Of extracts the Status carried by err. A nil error is Ok; errors that do
// not carry a Status are SystemError.
func Of(err error) Status {
	if err == nil {
		return Ok
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	for s := NullArgument; int(s) < len(sentinels); s++ {
		if errors.Is(err, sentinels[s]) {
			return s
		}
	}
	return SystemError
}
