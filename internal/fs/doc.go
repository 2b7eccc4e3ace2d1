// Package fs provides filesystem abstractions for testability and fault injection.
//
// Detection reads procfs and sysfs, and the energy counter reads MSR device
// files; all of them go through [FileSystem] so tests can substitute contents
// and failures.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with sequential and positional reads
//   - [FileSystem]: open, stat and directory listing
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [MemFS]: In-memory tree for procfs/sysfs fixtures
//   - [FaultyFS]: Test utility for fault injection (open errors, short reads, read errors)
//
// # Usage
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Open(nil, "/proc/cpuinfo")
//
// Tests can inject [FaultyFS] to simulate chunked delivery or failures:
//
//	mem := fs.NewMemFS()
//	mem.AddFile("/proc/cpuinfo", data)
//	ffs := fs.NewFaultyFS(mem)
//	ffs.AddRule("cpuinfo", fs.Fault{Chunks: []int{10, 7, 1000}, FailAfterBytes: -1})
//
// # Design Notes
//
// This package does not take context.Context parameters. The files it serves
// are kernel pseudo-files whose reads complete without blocking.
package fs
