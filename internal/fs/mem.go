package fs

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemFS is an in-memory FileSystem. Directories exist implicitly as the
// parents of stored files; AddDir creates an empty one.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte), dirs: make(map[string]bool)}
}

// AddFile stores data under name, creating parent directories.
func (m *MemFS) AddFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	m.files[name] = slices.Clone(data)
	for dir := path.Dir(name); dir != "/" && dir != "."; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

// AddDir creates an empty directory and its parents.
func (m *MemFS) AddDir(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for dir := path.Clean(name); dir != "/" && dir != "."; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

func (m *MemFS) OpenFile(name string, flag int, _ os.FileMode) (File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}

	m.mu.RLock()
	data, ok := m.files[path.Clean(name)]
	m.mu.RUnlock()
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return &memFile{Reader: bytes.NewReader(data), info: memInfo{name: path.Base(name), size: int64(len(data))}}, nil
}

func (m *MemFS) Stat(name string) (os.FileInfo, error) {
	name = path.Clean(name)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[name]; ok {
		return memInfo{name: path.Base(name), size: int64(len(data))}, nil
	}
	if m.dirs[name] {
		return memInfo{name: path.Base(name), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MemFS) ReadDir(name string) ([]os.DirEntry, error) {
	name = path.Clean(name)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.dirs[name] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	prefix := name + "/"
	seen := make(map[string]os.DirEntry)
	for f, data := range m.files {
		if child, ok := directChild(prefix, f); ok {
			seen[child] = fs.FileInfoToDirEntry(memInfo{name: child, size: int64(len(data))})
		}
	}
	for d := range m.dirs {
		if child, ok := directChild(prefix, d); ok {
			seen[child] = fs.FileInfoToDirEntry(memInfo{name: child, dir: true})
		}
	}

	out := make([]os.DirEntry, 0, len(seen))
	for _, e := range seen {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b os.DirEntry) int { return strings.Compare(a.Name(), b.Name()) })
	return out, nil
}

func directChild(prefix, p string) (string, bool) {
	rest, ok := strings.CutPrefix(p, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

type memFile struct {
	*bytes.Reader
	info memInfo
}

func (f *memFile) Close() error               { return nil }
func (f *memFile) Stat() (os.FileInfo, error) { return f.info, nil }

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i memInfo) Name() string { return i.name }
func (i memInfo) Size() int64  { return i.size }
func (i memInfo) Mode() os.FileMode {
	if i.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() any           { return nil }
