package probe

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/cpudispatch/internal/fs"
)

// DefaultCPUInfoPath is where Linux publishes per-processor information.
const DefaultCPUInfoPath = "/proc/cpuinfo"

// Field is one "key : value" line.
type Field struct {
	Key   string
	Value string
}

// CPUInfo is the ordered content of a cpuinfo-style file.
type CPUInfo struct {
	Fields []Field
}

// Value returns the first value recorded for key.
func (c CPUInfo) Value(key string) (string, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns every value recorded for key in file order.
func (c CPUInfo) Values(key string) []string {
	var out []string
	for _, f := range c.Fields {
		if f.Key == key {
			out = append(out, f.Value)
		}
	}
	return out
}

// Processors counts "processor" entries with a decimal value.
func (c CPUInfo) Processors() int {
	n := 0
	for _, v := range c.Values("processor") {
		if isDecimal(v) {
			n++
		}
	}
	return n
}

// ParseCPUInfo reads "key : value" lines from r. Keys and values are trimmed
// of spaces and tabs; lines without a colon are skipped.
func ParseCPUInfo(r io.Reader) (CPUInfo, error) {
	var info CPUInfo
	err := ReadLines(r, DefaultChunkSize, func(line []byte) error {
		key, value, ok := bytes.Cut(line, []byte{':'})
		if !ok {
			return nil
		}
		k := strings.Trim(string(key), " \t")
		if k == "" {
			return nil
		}
		info.Fields = append(info.Fields, Field{Key: k, Value: strings.Trim(string(value), " \t")})
		return nil
	})
	return info, err
}

// ReadCPUInfo opens path on fsys and parses it.
func ReadCPUInfo(fsys fs.FileSystem, path string) (CPUInfo, error) {
	f, err := fs.Open(fsys, path)
	if err != nil {
		return CPUInfo{}, fmt.Errorf("probe: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := ParseCPUInfo(f)
	if err != nil {
		return CPUInfo{}, fmt.Errorf("probe: read %s: %w", path, err)
	}
	return info, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
