package mmap

import "errors"

// Protection is the access mode of a mapping.
type Protection int

const (
	// ProtectReadWrite permits loads and stores.
	ProtectReadWrite Protection = iota
	// ProtectReadExec permits loads and instruction fetch.
	ProtectReadExec
	// ProtectNone forbids every access.
	ProtectNone
)

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the requested size is zero or negative.
	ErrInvalidSize = errors.New("mmap: invalid size")
	// ErrUnsupported is returned on platforms without anonymous executable mappings.
	ErrUnsupported = errors.New("mmap: not supported on this platform")
)
