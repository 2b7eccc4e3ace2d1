package mmap

import (
	"os"
	"sync/atomic"
)

// Mapping represents an anonymous memory mapping.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	size   int
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// MapAnon creates a private read-write anonymous mapping of at least size
// bytes, rounded up to whole pages.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	page := os.Getpagesize()
	size = (size + page - 1) &^ (page - 1)

	data, unmapFunc, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, size: size, unmap: unmapFunc}, nil
}

// MapCode maps a fresh page, copies code into it and makes it
// read-execute. The returned mapping is no longer writable.
func MapCode(code []byte) (*Mapping, error) {
	m, err := MapAnon(len(code))
	if err != nil {
		return nil, err
	}
	copy(m.data, code)
	if err := m.Protect(ProtectReadExec); err != nil {
		_ = m.Close()
		return nil, err
	}
	return m, nil
}

// Protect changes the access mode of the whole mapping.
func (m *Mapping) Protect(p Protection) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return osProtect(m.data, p)
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the underlying byte slice.
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return m.size
}
