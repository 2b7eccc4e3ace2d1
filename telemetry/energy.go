package telemetry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"syscall"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/fs"
	"github.com/hupe1980/cpudispatch/status"
)

// EnergyKind selects what an energy counter measures.
type EnergyKind uint32

const (
	// RaplPackageEnergy is the energy consumed by the whole package, in Joules.
	RaplPackageEnergy EnergyKind = iota + 1
	// RaplPowerPlane0Energy is the energy consumed by the cores and caches.
	RaplPowerPlane0Energy
	// RaplPowerPlane1Energy is the energy consumed by the integrated GPU.
	RaplPowerPlane1Energy
	// RaplDRAMEnergy is the energy consumed by memory modules.
	RaplDRAMEnergy
	// RaplPackagePower is the average package power, in Watts.
	RaplPackagePower
	RaplPowerPlane0Power
	RaplPowerPlane1Power
	RaplDRAMPower
)

var energyKindNames = [...]string{
	RaplPackageEnergy:     "package-energy",
	RaplPowerPlane0Energy: "pp0-energy",
	RaplPowerPlane1Energy: "pp1-energy",
	RaplDRAMEnergy:        "dram-energy",
	RaplPackagePower:      "package-power",
	RaplPowerPlane0Power:  "pp0-power",
	RaplPowerPlane1Power:  "pp1-power",
	RaplDRAMPower:         "dram-power",
}

// Valid reports whether k is a defined kind.
func (k EnergyKind) Valid() bool { return k >= RaplPackageEnergy && k <= RaplDRAMPower }

// IsPower reports whether k reports Watts rather than Joules.
func (k EnergyKind) IsPower() bool { return k >= RaplPackagePower && k <= RaplDRAMPower }

func (k EnergyKind) String() string {
	if k.Valid() {
		return energyKindNames[k]
	}
	return fmt.Sprintf("EnergyKind(%d)", uint32(k))
}

// ParseEnergyKind resolves a name returned by EnergyKind.String.
func ParseEnergyKind(s string) (EnergyKind, bool) {
	for k := RaplPackageEnergy; k <= RaplDRAMPower; k++ {
		if energyKindNames[k] == s {
			return k, true
		}
	}
	return 0, false
}

// Model-specific registers of the RAPL interface.
const (
	msrNone              uint32 = 0
	msrPowerUnit         uint32 = 0x606
	msrPackageEnergy     uint32 = 0x611
	msrPowerPlane0Energy uint32 = 0x639
	msrPowerPlane1Energy uint32 = 0x641
	msrDRAMEnergy        uint32 = 0x619
)

const energyCounterMagic = 0x14CFC5C1

// raplMSR returns the energy status register for kind on the processor
// described by set, or msrNone when the processor has no such counter.
func raplMSR(set feature.Set, kind EnergyKind) uint32 {
	intelCore := set.Vendor == feature.VendorIntel && set.Signature.Family == 0x06

	switch kind {
	case RaplPackageEnergy, RaplPackagePower, RaplPowerPlane0Energy, RaplPowerPlane0Power:
		switch set.Microarchitecture {
		case feature.UarchSandyBridge, feature.UarchIvyBridge, feature.UarchHaswell:
			if kind == RaplPackageEnergy || kind == RaplPackagePower {
				return msrPackageEnergy
			}
			return msrPowerPlane0Energy
		}
	case RaplPowerPlane1Energy, RaplPowerPlane1Power:
		// Client Sandy Bridge and Ivy Bridge.
		if intelCore && (set.Signature.Model == 0x2A || set.Signature.Model == 0x3A) {
			return msrPowerPlane1Energy
		}
	case RaplDRAMEnergy, RaplDRAMPower:
		// Sandy Bridge-E and Sandy Bridge EP/EX.
		if intelCore && set.Signature.Model == 0x2D {
			return msrDRAMEnergy
		}
	}
	return msrNone
}

// EnergyCounter holds the state of a running energy measurement. The zero
// value is not running. An EnergyCounter is owned by the goroutine that
// acquired it.
type EnergyCounter struct {
	magic uint32
	kind  EnergyKind
	msr   uint32
	cpu   int
	file  fs.File
	start uint32
	// startTicks is the monotonic time of acquisition, power kinds only.
	startTicks uint64
}

// Kind returns the measured kind, 0 when c is not running.
func (c *EnergyCounter) Kind() EnergyKind {
	if c == nil || c.magic != energyCounterMagic {
		return 0
	}
	return c.kind
}

// Running reports whether c holds an acquired measurement.
func (c *EnergyCounter) Running() bool { return c != nil && c.magic == energyCounterMagic }

// CPU returns the logical processor whose msr device is read.
func (c *EnergyCounter) CPU() int {
	if !c.Running() {
		return -1
	}
	return c.cpu
}

// msrDriver opens the per-CPU msr device nodes.
type msrDriver struct {
	fs         fs.FileSystem
	currentCPU func() (int, error)
	ticks      tickSource
}

func msrPath(cpu int) string { return fmt.Sprintf("/dev/cpu/%d/msr", cpu) }

func (d *msrDriver) acquire(set feature.Set, kind EnergyKind) (EnergyCounter, error) {
	const op = "telemetry.AcquireEnergyCounter"

	msr := raplMSR(set, kind)
	if msr == msrNone {
		return EnergyCounter{}, status.New(op, status.UnsupportedHardware)
	}

	cpu, err := d.currentCPU()
	if err != nil {
		return EnergyCounter{}, status.Wrap(op, status.SystemError, err)
	}
	f, err := fs.Open(d.fs, msrPath(cpu))
	if err != nil {
		return EnergyCounter{}, status.Wrap(op, classifyOpenError(err), err)
	}

	value, err := readMSR(f, msr)
	if err != nil {
		_ = f.Close()
		return EnergyCounter{}, status.Wrap(op, status.SystemError, err)
	}

	c := EnergyCounter{
		magic: energyCounterMagic,
		kind:  kind,
		msr:   msr,
		cpu:   cpu,
		file:  f,
		start: uint32(value),
	}
	if kind.IsPower() {
		if c.startTicks, err = d.ticks(); err != nil {
			_ = f.Close()
			return EnergyCounter{}, status.Wrap(op, status.SystemError, err)
		}
	}
	return c, nil
}

func (d *msrDriver) release(c EnergyCounter) (float64, error) {
	const op = "telemetry.ReleaseEnergyCounter"

	value, err := readMSR(c.file, c.msr)
	if err != nil {
		_ = c.file.Close()
		return 0, status.Wrap(op, status.SystemError, err)
	}
	// The status register is a 32-bit wrapping counter.
	measurement := float64(uint32(value) - c.start)

	if c.kind.IsPower() {
		end, err := d.ticks()
		if err != nil {
			_ = c.file.Close()
			return 0, status.Wrap(op, status.SystemError, err)
		}
		elapsed := float64(max(end-c.startTicks, 1)) / nanosPerSecond
		measurement /= elapsed
	}

	units, err := readMSR(c.file, msrPowerUnit)
	if err != nil {
		_ = c.file.Close()
		return 0, status.Wrap(op, status.SystemError, err)
	}
	measurement *= joulesPerUnit(units)

	if err := c.file.Close(); err != nil {
		return 0, status.Wrap(op, status.SystemError, err)
	}
	return measurement, nil
}

// joulesPerUnit decodes the energy status unit, bits 8..12 of
// MSR_RAPL_POWER_UNIT, as 1/2^ESU Joules.
func joulesPerUnit(powerUnit uint64) float64 {
	esu := int((powerUnit >> 8) & 0x1F)
	return math.Ldexp(1, -esu)
}

func readMSR(f fs.File, msr uint32) (uint64, error) {
	var buf [8]byte
	if _, err := f.ReadAt(buf[:], int64(msr)); err != nil {
		return 0, fmt.Errorf("read msr %#x: %w", msr, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// classifyOpenError maps a failure to open the msr device onto a Status.
func classifyOpenError(err error) status.Status {
	switch {
	case errors.Is(err, syscall.EIO):
		return status.UnsupportedHardware
	case errors.Is(err, os.ErrPermission):
		return status.AccessDenied
	case errors.Is(err, os.ErrNotExist), errors.Is(err, syscall.ENXIO), errors.Is(err, syscall.ENODEV):
		return status.UnsupportedSoftware
	default:
		return status.SystemError
	}
}

// AcquireEnergyCounter starts an energy measurement of kind on the processor
// described by set.
//
// It fails with InvalidArgument for undefined kinds, UnsupportedHardware when
// the processor has no such counter, UnsupportedSoftware when the msr driver
// is missing and AccessDenied when the process may not read it.
func AcquireEnergyCounter(set feature.Set, kind EnergyKind) (EnergyCounter, error) {
	if !kind.Valid() {
		return EnergyCounter{}, status.Wrap("telemetry.AcquireEnergyCounter", status.InvalidArgument,
			fmt.Errorf("energy kind %d", uint32(kind)))
	}
	return acquireEnergy(set, kind)
}

// ReleaseEnergyCounter stops the measurement and returns Joules for energy
// kinds or Watts for power kinds. c is reset to the zero value, also on
// failure. Releasing a counter that is not running fails with InvalidState.
func ReleaseEnergyCounter(c *EnergyCounter) (float64, error) {
	const op = "telemetry.ReleaseEnergyCounter"
	if c == nil {
		return 0, status.New(op, status.NullArgument)
	}
	state := *c
	*c = EnergyCounter{}
	if state.magic != energyCounterMagic || state.file == nil {
		return 0, status.New(op, status.InvalidState)
	}
	return defaultMSRDriver.release(state)
}
