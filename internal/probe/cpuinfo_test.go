package probe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cpudispatch/internal/fs"
)

func TestParseCPUInfo(t *testing.T) {
	info, err := ParseCPUInfo(strings.NewReader(sampleCPUInfo + "\nno colon here\n : empty key\n"))
	require.NoError(t, err)

	v, ok := info.Value("model name")
	require.True(t, ok)
	assert.Equal(t, "Intel(R) Core(TM) i7-4770 CPU @ 3.40GHz", v)

	v, ok = info.Value("flags")
	require.True(t, ok)
	assert.Equal(t, "fpu vme de pse tsc msr", v)

	assert.Equal(t, []string{"GenuineIntel", "GenuineIntel"}, info.Values("vendor_id"))
	assert.Equal(t, 2, info.Processors())

	_, ok = info.Value("bogomips")
	assert.False(t, ok)
}

func TestReadCPUInfoErrors(t *testing.T) {
	mem := fs.NewMemFS()
	_, err := ReadCPUInfo(mem, DefaultCPUInfoPath)
	assert.Error(t, err)

	mem.AddFile(DefaultCPUInfoPath, []byte(sampleCPUInfo))
	ffs := fs.NewFaultyFS(mem)
	ffs.AddRule("cpuinfo", fs.Fault{FailAfterBytes: 12})
	_, err = ReadCPUInfo(ffs, DefaultCPUInfoPath)
	assert.ErrorIs(t, err, fs.ErrInjected)

	info, err := ReadCPUInfo(mem, DefaultCPUInfoPath)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Processors())
}

func TestCountCPUs(t *testing.T) {
	mem := fs.NewMemFS()
	for _, d := range []string{"cpu0", "cpu1", "cpu2", "cpu10", "cpufreq", "cpuidle", "cpu", "cpu1a"} {
		mem.AddDir(DefaultSysCPUPath + "/" + d)
	}
	mem.AddFile(DefaultSysCPUPath+"/online", []byte("0-3"))

	n, err := CountCPUs(mem, DefaultSysCPUPath)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = CountCPUs(fs.NewMemFS(), DefaultSysCPUPath)
	assert.Error(t, err)
}

func addCache(mem *fs.MemFS, index, level, typ, size, line, ways string) {
	dir := DefaultSysCPUPath + "/cpu0/cache/" + index + "/"
	mem.AddFile(dir+"level", []byte(level+"\n"))
	mem.AddFile(dir+"type", []byte(typ+"\n"))
	mem.AddFile(dir+"size", []byte(size+"\n"))
	mem.AddFile(dir+"coherency_line_size", []byte(line+"\n"))
	mem.AddFile(dir+"ways_of_associativity", []byte(ways+"\n"))
}

func TestReadSysfsCaches(t *testing.T) {
	mem := fs.NewMemFS()
	addCache(mem, "index0", "1", "Data", "32K", "64", "8")
	addCache(mem, "index1", "1", "Instruction", "32K", "64", "8")
	addCache(mem, "index2", "2", "Unified", "256K", "64", "4")
	addCache(mem, "index3", "3", "Unified", "8M", "64", "16")
	addCache(mem, "index4", "0", "Data", "1K", "64", "1")
	mem.AddFile(DefaultSysCPUPath+"/cpu0/cache/uevent", nil)

	caches, err := ReadSysfsCaches(mem, DefaultSysCPUPath)
	require.NoError(t, err)
	assert.Equal(t, []CacheEntry{
		{Level: 1, Type: CacheData, Size: 32 << 10, LineSize: 64, Associativity: 8},
		{Level: 1, Type: CacheInstruction, Size: 32 << 10, LineSize: 64, Associativity: 8},
		{Level: 2, Type: CacheUnified, Size: 256 << 10, LineSize: 64, Associativity: 4},
		{Level: 3, Type: CacheUnified, Size: 8 << 20, LineSize: 64, Associativity: 16},
	}, caches)

	_, err = ReadSysfsCaches(fs.NewMemFS(), DefaultSysCPUPath)
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	assert.Equal(t, uint32(512), parseSize("512"))
	assert.Equal(t, uint32(48<<10), parseSize("48K"))
	assert.Equal(t, uint32(36<<20), parseSize("36M"))
	assert.Zero(t, parseSize("8G"))
	assert.Zero(t, parseSize("lots"))
}
