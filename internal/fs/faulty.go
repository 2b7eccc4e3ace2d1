package fs

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the error returned by injected faults that carry no Err.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	OpenErr        error // Returned by OpenFile instead of opening the file.
	ReadDirErr     error // Returned by ReadDir.
	Chunks         []int // Successive reads return at most Chunks[i] bytes.
	ChunkSize      int   // Cap for reads once Chunks is exhausted. 0 to disable.
	EmptyReads     int   // Number of (0, nil) reads returned before any data.
	FailAfterBytes int64 // Fail reads after this many bytes read FROM THIS FILE. -1 to disable.
	Err            error
}

// FaultyFS is a FileSystem wrapper that can inject errors and short reads.
type FaultyFS struct {
	FS      FileSystem
	mu      sync.Mutex
	rules   map[string]Fault // Filename pattern -> Fault
	Default Fault            // Fallback
	opened  map[string]int
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{
		FS:    fsys,
		rules: make(map[string]Fault),
		Default: Fault{
			FailAfterBytes: -1, // No limit
		},
		opened: make(map[string]int),
	}
}

// AddRule adds a fault injection rule for a specific file pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// Opened returns how many times name was opened successfully.
func (f *FaultyFS) Opened(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened[name]
}

func (f *FaultyFS) match(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()
	fault := f.Default
	// Longest matching pattern wins.
	best := -1
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) && len(pattern) > best {
			fault, best = rule, len(pattern)
		}
	}
	return fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fault := f.match(name)
	if fault.OpenErr != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: fault.OpenErr}
	}

	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.opened[name]++
	f.mu.Unlock()

	return &faultyFile{File: file, fault: fault, chunks: fault.Chunks, empty: fault.EmptyReads}, nil
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.FS.Stat(name)
}

func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error) {
	if fault := f.match(name); fault.ReadDirErr != nil {
		return nil, &os.PathError{Op: "readdir", Path: name, Err: fault.ReadDirErr}
	}
	return f.FS.ReadDir(name)
}

type faultyFile struct {
	File
	fault  Fault
	chunks []int
	empty  int
	read   int64
}

func (ff *faultyFile) err() error {
	if ff.fault.Err != nil {
		return ff.fault.Err
	}
	return ErrInjected
}

func (ff *faultyFile) limit(n int) (int, error) {
	if ff.fault.FailAfterBytes >= 0 {
		remaining := ff.fault.FailAfterBytes - ff.read
		if remaining <= 0 {
			return 0, ff.err()
		}
		if int64(n) > remaining {
			n = int(remaining)
		}
	}
	return n, nil
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	if ff.empty > 0 {
		ff.empty--
		return 0, nil
	}

	n := len(p)
	if len(ff.chunks) > 0 {
		n = min(n, ff.chunks[0])
		ff.chunks = ff.chunks[1:]
	} else if ff.fault.ChunkSize > 0 {
		n = min(n, ff.fault.ChunkSize)
	}

	n, err := ff.limit(n)
	if err != nil {
		return 0, err
	}

	n, err = ff.File.Read(p[:n])
	ff.read += int64(n)
	return n, err
}

func (ff *faultyFile) ReadAt(p []byte, off int64) (int, error) {
	n, err := ff.limit(len(p))
	if err != nil {
		return 0, err
	}

	n, err = ff.File.ReadAt(p[:n], off)
	ff.read += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
