package probe

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/hupe1980/cpudispatch/internal/fs"
)

// DefaultSysCPUPath is the sysfs directory listing logical processors.
const DefaultSysCPUPath = "/sys/devices/system/cpu"

// CountCPUs counts the entries of dir named cpu followed by one or more digits.
func CountCPUs(fsys fs.FileSystem, dir string) (int, error) {
	if fsys == nil {
		fsys = fs.Default
	}
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("probe: list %s: %w", dir, err)
	}

	n := 0
	for _, e := range entries {
		name, ok := strings.CutPrefix(e.Name(), "cpu")
		if ok && isDecimal(name) {
			n++
		}
	}
	return n, nil
}

// CacheType classifies a cache.
type CacheType uint8

const (
	CacheData CacheType = iota + 1
	CacheInstruction
	CacheUnified
)

func (t CacheType) String() string {
	switch t {
	case CacheData:
		return "data"
	case CacheInstruction:
		return "instruction"
	case CacheUnified:
		return "unified"
	default:
		return "unknown"
	}
}

// CacheEntry describes one cache as reported by the OS or the CPU.
// Unknown values are zero.
type CacheEntry struct {
	Level         int
	Type          CacheType
	Size          uint32
	LineSize      uint32
	Associativity uint32
}

// ReadSysfsCaches reads cpu0's cache descriptors below dir
// (cpu0/cache/index*/{level,type,size,coherency_line_size,ways_of_associativity}).
func ReadSysfsCaches(fsys fs.FileSystem, dir string) ([]CacheEntry, error) {
	if fsys == nil {
		fsys = fs.Default
	}
	base := path.Join(dir, "cpu0", "cache")
	entries, err := fsys.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("probe: list %s: %w", base, err)
	}

	var caches []CacheEntry
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "index") {
			continue
		}
		idx := path.Join(base, e.Name())

		level, err := readUint(fsys, path.Join(idx, "level"))
		if err != nil || level == 0 {
			continue
		}
		typ, err := readString(fsys, path.Join(idx, "type"))
		if err != nil {
			continue
		}

		c := CacheEntry{Level: int(level)}
		switch typ {
		case "Data":
			c.Type = CacheData
		case "Instruction":
			c.Type = CacheInstruction
		case "Unified":
			c.Type = CacheUnified
		default:
			continue
		}
		if s, err := readString(fsys, path.Join(idx, "size")); err == nil {
			c.Size = parseSize(s)
		}
		if v, err := readUint(fsys, path.Join(idx, "coherency_line_size")); err == nil {
			c.LineSize = uint32(v)
		}
		if v, err := readUint(fsys, path.Join(idx, "ways_of_associativity")); err == nil {
			c.Associativity = uint32(v)
		}
		caches = append(caches, c)
	}
	return caches, nil
}

// parseSize decodes sysfs sizes such as "32K", "1024K" or "8M".
func parseSize(s string) uint32 {
	mult := uint64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = 1<<10, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = 1<<20, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "G"):
		mult, s = 1<<30, strings.TrimSuffix(s, "G")
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v*mult > uint64(^uint32(0)) {
		return 0
	}
	return uint32(v * mult)
}

func readString(fsys fs.FileSystem, name string) (string, error) {
	f, err := fs.Open(fsys, name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, 256))
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(data)), nil
}

func readUint(fsys fs.FileSystem, name string) (uint64, error) {
	s, err := readString(fsys, name)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 10, 64)
}
