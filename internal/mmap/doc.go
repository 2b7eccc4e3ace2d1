// Package mmap provides anonymous page mappings with adjustable protection.
//
// # Overview
//
// The instruction prober needs a page it can fill with machine code and
// then execute. MapCode does exactly that: map read-write, copy, flip to
// read-execute (W^X).
//
// # Usage
//
//	m, err := mmap.MapCode([]byte{0x90, 0xC3}) // nop; ret
//	if err != nil { ... }
//	defer m.Close()
//
//	code := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) and mprotect(2) via golang.org/x/sys/unix
//   - Other platforms: every call returns ErrUnsupported
//
// # Thread Safety
//
// The Close() method is idempotent and protected by atomic operations.
// However, callers must ensure no goroutines access Bytes() after Close()
// returns.
package mmap
