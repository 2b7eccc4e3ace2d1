// Package atomics provides validated 32-bit atomic primitives with explicit
// memory orderings.
//
// Every operation checks its arguments before touching memory: a nil address
// fails with status.NullArgument, an address that is not 4-byte aligned with
// status.MisalignedArgument, and an unknown Ordering with
// status.InvalidArgument.
//
// The primitives are built on sync/atomic, whose operations are sequentially
// consistent. Weaker orderings are therefore always honoured by the strongest
// one; callers may rely on at least the ordering they request.
package atomics

import (
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/cpudispatch/status"
)

// Ordering is a memory-ordering constraint for an atomic operation.
type Ordering uint8

const (
	Relaxed Ordering = iota
	Acquire
	Release
	Ordered
)

func (o Ordering) valid() bool { return o <= Ordered }

func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "relaxed"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	case Ordered:
		return "ordered"
	default:
		return "invalid"
	}
}

// ErrValueMismatch is returned by compare-and-swap when the current value
// differs from the expected one. It matches status.ErrInvalidState.
var ErrValueMismatch = &status.Error{Op: "atomics.CompareAndSwap", Status: status.InvalidState}

func check(op string, p unsafe.Pointer, o Ordering) error {
	if p == nil {
		return status.New(op, status.NullArgument)
	}
	if uintptr(p)&3 != 0 {
		return status.New(op, status.MisalignedArgument)
	}
	if !o.valid() {
		return status.New(op, status.InvalidArgument)
	}
	return nil
}

func swap(p unsafe.Pointer, v uint32, o Ordering) (uint32, error) {
	if err := check("atomics.Swap", p, o); err != nil {
		return 0, err
	}
	return atomic.SwapUint32((*uint32)(p), v), nil
}

func compareAndSwap(p unsafe.Pointer, v, expected uint32, o Ordering) error {
	if err := check("atomics.CompareAndSwap", p, o); err != nil {
		return err
	}
	if !atomic.CompareAndSwapUint32((*uint32)(p), expected, v) {
		return ErrValueMismatch
	}
	return nil
}

func load(p unsafe.Pointer, o Ordering) (uint32, error) {
	if err := check("atomics.Load", p, o); err != nil {
		return 0, err
	}
	return atomic.LoadUint32((*uint32)(p)), nil
}

// Swap atomically stores v at addr and returns the previous value.
func Swap(addr *uint32, v uint32, o Ordering) (uint32, error) {
	return swap(unsafe.Pointer(addr), v, o)
}

// CompareAndSwap atomically stores v at addr if it currently holds expected.
// On mismatch it returns ErrValueMismatch and leaves memory unchanged.
func CompareAndSwap(addr *uint32, v, expected uint32, o Ordering) error {
	return compareAndSwap(unsafe.Pointer(addr), v, expected, o)
}

// Load atomically reads the value at addr.
func Load(addr *uint32, o Ordering) (uint32, error) {
	return load(unsafe.Pointer(addr), o)
}

func SwapRelaxed(addr *uint32, v uint32) (uint32, error) { return Swap(addr, v, Relaxed) }
func SwapAcquire(addr *uint32, v uint32) (uint32, error) { return Swap(addr, v, Acquire) }
func SwapRelease(addr *uint32, v uint32) (uint32, error) { return Swap(addr, v, Release) }
func SwapOrdered(addr *uint32, v uint32) (uint32, error) { return Swap(addr, v, Ordered) }

func CompareAndSwapRelaxed(addr *uint32, v, expected uint32) error {
	return CompareAndSwap(addr, v, expected, Relaxed)
}

func CompareAndSwapAcquire(addr *uint32, v, expected uint32) error {
	return CompareAndSwap(addr, v, expected, Acquire)
}

func CompareAndSwapRelease(addr *uint32, v, expected uint32) error {
	return CompareAndSwap(addr, v, expected, Release)
}

func CompareAndSwapOrdered(addr *uint32, v, expected uint32) error {
	return CompareAndSwap(addr, v, expected, Ordered)
}

func LoadRelaxed(addr *uint32) (uint32, error) { return Load(addr, Relaxed) }
func LoadAcquire(addr *uint32) (uint32, error) { return Load(addr, Acquire) }
