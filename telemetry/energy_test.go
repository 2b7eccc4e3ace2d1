package telemetry

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/fs"
	"github.com/hupe1980/cpudispatch/status"
)

var (
	haswell = feature.Set{
		Architecture:      feature.ArchX86,
		Vendor:            feature.VendorIntel,
		Microarchitecture: feature.UarchHaswell,
		Signature:         feature.Signature{Family: 6, Model: 0x3C},
	}
	sandyBridgeClient = feature.Set{
		Architecture:      feature.ArchX86,
		Vendor:            feature.VendorIntel,
		Microarchitecture: feature.UarchSandyBridge,
		Signature:         feature.Signature{Family: 6, Model: 0x2A},
	}
	sandyBridgeE = feature.Set{
		Architecture:      feature.ArchX86,
		Vendor:            feature.VendorIntel,
		Microarchitecture: feature.UarchSandyBridge,
		Signature:         feature.Signature{Family: 6, Model: 0x2D},
	}
)

func TestRaplMSR(t *testing.T) {
	tests := []struct {
		name string
		set  feature.Set
		kind EnergyKind
		want uint32
	}{
		{"haswell package", haswell, RaplPackageEnergy, msrPackageEnergy},
		{"haswell package power", haswell, RaplPackagePower, msrPackageEnergy},
		{"haswell pp0", haswell, RaplPowerPlane0Power, msrPowerPlane0Energy},
		{"haswell pp1", haswell, RaplPowerPlane1Energy, msrNone},
		{"haswell dram", haswell, RaplDRAMEnergy, msrNone},
		{"sandy bridge pp1", sandyBridgeClient, RaplPowerPlane1Power, msrPowerPlane1Energy},
		{"sandy bridge-e dram", sandyBridgeE, RaplDRAMPower, msrDRAMEnergy},
		{"sandy bridge client dram", sandyBridgeClient, RaplDRAMEnergy, msrNone},
		{"unknown core", feature.Set{Vendor: feature.VendorIntel}, RaplPackageEnergy, msrNone},
		{"amd", feature.Set{Vendor: feature.VendorAMD, Microarchitecture: feature.UarchPiledriver}, RaplPackageEnergy, msrNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, raplMSR(tt.set, tt.kind))
		})
	}
}

func TestEnergyKind(t *testing.T) {
	assert.False(t, EnergyKind(0).Valid())
	assert.False(t, EnergyKind(9).Valid())
	assert.True(t, RaplDRAMPower.IsPower())
	assert.False(t, RaplDRAMEnergy.IsPower())
	assert.Equal(t, "pp0-power", RaplPowerPlane0Power.String())
	assert.Equal(t, "EnergyKind(9)", EnergyKind(9).String())

	k, ok := ParseEnergyKind("package-energy")
	assert.True(t, ok)
	assert.Equal(t, RaplPackageEnergy, k)
	_, ok = ParseEnergyKind("gpu")
	assert.False(t, ok)
}

func TestJoulesPerUnit(t *testing.T) {
	// ESU 16 is the common Sandy Bridge value: 15.3 microjoules.
	assert.InDelta(t, 1.0/65536, joulesPerUnit(0x000A1003), 1e-12)
	assert.Equal(t, 1.0, joulesPerUnit(0))
}

// regFS serves a single msr device whose registers can change between reads.
type regFS struct {
	mu   sync.Mutex
	regs map[int64]uint64
}

func newRegFS() *regFS { return &regFS{regs: make(map[int64]uint64)} }

func (r *regFS) set(msr uint32, v uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs[int64(msr)] = v
}

func (r *regFS) OpenFile(name string, _ int, _ os.FileMode) (fs.File, error) {
	if name != msrPath(0) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return &regFile{fs: r}, nil
}

func (r *regFS) Stat(name string) (os.FileInfo, error) {
	return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
}

func (r *regFS) ReadDir(name string) ([]os.DirEntry, error) {
	return nil, &os.PathError{Op: "readdir", Path: name, Err: os.ErrNotExist}
}

type regFile struct {
	fs     *regFS
	closed bool
}

func (f *regFile) Read([]byte) (int, error)   { return 0, io.EOF }
func (f *regFile) Stat() (os.FileInfo, error) { return nil, os.ErrInvalid }

func (f *regFile) Close() error {
	f.closed = true
	return nil
}

func (f *regFile) ReadAt(p []byte, off int64) (int, error) {
	f.fs.mu.Lock()
	v, ok := f.fs.regs[off]
	f.fs.mu.Unlock()
	if !ok {
		return 0, syscall.EIO
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return copy(p, buf[:]), nil
}

func testDriver(fsys fs.FileSystem, ticks ...uint64) *msrDriver {
	i := 0
	return &msrDriver{
		fs:         fsys,
		currentCPU: func() (int, error) { return 0, nil },
		ticks: func() (uint64, error) {
			v := ticks[min(i, len(ticks)-1)]
			i++
			return v, nil
		},
	}
}

func TestMSRDriverEnergy(t *testing.T) {
	regs := newRegFS()
	regs.set(msrPowerUnit, 0x000A1003) // ESU 16
	regs.set(msrPackageEnergy, 0xFFFF_0000_FFFF_0000)
	d := testDriver(regs, 0)

	c, err := d.acquire(haswell, RaplPackageEnergy)
	require.NoError(t, err)
	assert.True(t, c.Running())
	assert.Equal(t, 0, c.CPU())
	assert.Equal(t, RaplPackageEnergy, c.Kind())

	// High bits are reserved; the low word wraps.
	regs.set(msrPackageEnergy, 0x1234_5678_0001_0000)
	joules, err := d.release(c)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, joules, 1e-9)
	assert.True(t, c.file.(*regFile).closed)
}

func TestMSRDriverPower(t *testing.T) {
	regs := newRegFS()
	regs.set(msrPowerUnit, 0x000A1003)
	regs.set(msrPowerPlane0Energy, 0)
	d := testDriver(regs, 1_000_000_000, 1_500_000_000)

	c, err := d.acquire(haswell, RaplPowerPlane0Power)
	require.NoError(t, err)

	regs.set(msrPowerPlane0Energy, 65536*10)
	watts, err := d.release(c)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, watts, 1e-9)
}

func TestMSRDriverErrors(t *testing.T) {
	_, err := testDriver(newRegFS(), 0).acquire(feature.Set{Vendor: feature.VendorIntel}, RaplPackageEnergy)
	assert.ErrorIs(t, err, status.ErrUnsupportedHardware)

	mem := fs.NewMemFS()
	_, err = testDriver(mem, 0).acquire(haswell, RaplPackageEnergy)
	assert.ErrorIs(t, err, status.ErrUnsupportedSoftware, "missing msr driver")

	tests := []struct {
		name    string
		openErr error
		want    error
	}{
		{"eio", syscall.EIO, status.ErrUnsupportedHardware},
		{"eacces", syscall.EACCES, status.ErrAccessDenied},
		{"eperm", syscall.EPERM, status.ErrAccessDenied},
		{"enxio", syscall.ENXIO, status.ErrUnsupportedSoftware},
		{"ebusy", syscall.EBUSY, status.ErrSystemError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ffs := fs.NewFaultyFS(mem)
			ffs.AddRule("/dev/cpu/", fs.Fault{OpenErr: tt.openErr})
			c, err := testDriver(ffs, 0).acquire(haswell, RaplPackageEnergy)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.openErr)
			assert.False(t, c.Running())
		})
	}

	// The register itself is unreadable.
	mem.AddFile(msrPath(0), bytes.Repeat([]byte{0}, 0x100))
	_, err = testDriver(mem, 0).acquire(haswell, RaplPackageEnergy)
	assert.ErrorIs(t, err, status.ErrSystemError)

	// Reading the unit register fails on release.
	regs := newRegFS()
	regs.set(msrPackageEnergy, 1)
	d := testDriver(regs, 0)
	c, err := d.acquire(haswell, RaplPackageEnergy)
	require.NoError(t, err)
	_, err = d.release(c)
	assert.ErrorIs(t, err, status.ErrSystemError)
	assert.True(t, c.file.(*regFile).closed)
}

func TestEnergyCounterUnsupportedThenInvalidState(t *testing.T) {
	// A processor without RAPL counters.
	set := feature.Set{Architecture: feature.ArchX86, Vendor: feature.VendorAMD}
	c, err := AcquireEnergyCounter(set, RaplPackageEnergy)
	require.Error(t, err)
	s := status.Of(err)
	assert.True(t, s == status.UnsupportedHardware || s == status.UnsupportedSoftware, "got %s", s)
	assert.False(t, c.Running())

	_, err = ReleaseEnergyCounter(&c)
	assert.ErrorIs(t, err, status.ErrInvalidState)
}

func TestEnergyCounterArguments(t *testing.T) {
	_, err := AcquireEnergyCounter(haswell, EnergyKind(0))
	assert.ErrorIs(t, err, status.ErrInvalidArgument)
	_, err = AcquireEnergyCounter(haswell, EnergyKind(9))
	assert.ErrorIs(t, err, status.ErrInvalidArgument)

	_, err = ReleaseEnergyCounter(nil)
	assert.ErrorIs(t, err, status.ErrNullArgument)

	forged := EnergyCounter{magic: 0xDEADBEEF, kind: RaplPackageEnergy}
	_, err = ReleaseEnergyCounter(&forged)
	assert.ErrorIs(t, err, status.ErrInvalidState)
	assert.False(t, forged.Running())
}
