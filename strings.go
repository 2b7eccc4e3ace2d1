package cpudispatch

import (
	"fmt"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/status"
)

// Enumeration selects the value space GetString looks a value up in.
type Enumeration uint32

const (
	EnumStatus            Enumeration = 0
	EnumArchitecture      Enumeration = 1
	EnumVendor            Enumeration = 2
	EnumMicroarchitecture Enumeration = 3
	// EnumBriefName and EnumFullName ignore the value and describe the
	// process default.
	EnumBriefName Enumeration = 4
	EnumFullName  Enumeration = 5

	// Feature enumerations are offset by the architecture; the value is a
	// bit position 0..63.
	EnumISA    Enumeration = 256
	EnumSIMD   Enumeration = 512
	EnumSystem Enumeration = 768
)

// ISAEnumeration returns the instruction-set enumeration for arch.
func ISAEnumeration(arch feature.Architecture) Enumeration { return EnumISA + Enumeration(arch) }

// SIMDEnumeration returns the vector-extension enumeration for arch.
func SIMDEnumeration(arch feature.Architecture) Enumeration { return EnumSIMD + Enumeration(arch) }

// SystemEnumeration returns the system-feature enumeration for arch.
func SystemEnumeration(arch feature.Architecture) Enumeration {
	return EnumSystem + Enumeration(arch)
}

// StringKind selects the form of the returned string.
type StringKind uint32

const (
	// StringDescription is a human-readable description, e.g. "AVX 2 instruction set".
	StringDescription StringKind = 0
	// StringID is a short identifier, e.g. "AVX2".
	StringID StringKind = 1
)

// GetString copies the string for value in enum into buf and returns its
// length in bytes. The string is not NUL-terminated.
//
// When buf is nil or shorter than the string, GetString returns the required
// length together with an InsufficientBuffer error whose Required field holds
// the same length. Undefined values and brief or full names requested in ID
// form fail with InvalidArgument. Names fail with InvalidState outside
// Init/Release.
func GetString(enum Enumeration, value uint32, kind StringKind, buf []byte) (int, error) {
	s, err := lookupString(enum, value, kind)
	if err != nil {
		return 0, err
	}
	if len(buf) < len(s) {
		return len(s), &status.Error{Op: "cpudispatch.GetString", Status: status.InsufficientBuffer, Required: len(s)}
	}
	return copy(buf, s), nil
}

// String is GetString into a buffer sized for the result.
func String(enum Enumeration, value uint32, kind StringKind) (string, error) {
	var stack [64]byte
	n, err := GetString(enum, value, kind, stack[:])
	if err == nil {
		return string(stack[:n]), nil
	}
	if status.Of(err) != status.InsufficientBuffer {
		return "", err
	}
	heap := make([]byte, n)
	n, err = GetString(enum, value, kind, heap)
	if err != nil {
		return "", err
	}
	return string(heap[:n]), nil
}

func lookupString(enum Enumeration, value uint32, kind StringKind) (string, error) {
	const op = "cpudispatch.GetString"
	if kind != StringDescription && kind != StringID {
		return "", status.Wrap(op, status.InvalidArgument, fmt.Errorf("string kind %d", kind))
	}

	pick := func(id, description string) string {
		if kind == StringID {
			return id
		}
		return description
	}

	var s string
	switch {
	case enum == EnumStatus:
		if st := status.Status(value); st.Defined() {
			s = pick(st.ID(), st.Description())
		}
	case enum == EnumArchitecture:
		if a := feature.Architecture(value); a.Defined() {
			s = pick(a.ID(), a.Description())
		}
	case enum == EnumVendor:
		if v := feature.Vendor(value); v.Defined() {
			s = pick(v.ID(), v.Description())
		}
	case enum == EnumMicroarchitecture:
		if m := feature.Microarchitecture(value); m.Defined() {
			s = pick(m.ID(), m.Description())
		}
	case enum == EnumBriefName, enum == EnumFullName:
		if kind == StringID {
			return "", status.Wrap(op, status.InvalidArgument, fmt.Errorf("enumeration %d has no identifier form", enum))
		}
		c := Current()
		if c == nil {
			return "", status.New(op, status.InvalidState)
		}
		if enum == EnumBriefName {
			s = c.BriefName()
		} else {
			s = c.FullName()
		}
		if s == "" {
			return "", status.New(op, status.UnsupportedHardware)
		}
		return s, nil
	case enum >= EnumISA && enum < EnumSystem+256:
		k, arch := featureKind(enum)
		if arch.Defined() {
			s = pick(feature.ID(arch, k, uint(value)), feature.Description(arch, k, uint(value)))
		}
	}

	if s == "" {
		return "", status.Wrap(op, status.InvalidArgument, fmt.Errorf("value %d undefined in enumeration %d", value, enum))
	}
	return s, nil
}

func featureKind(enum Enumeration) (feature.Kind, feature.Architecture) {
	base := enum &^ 0xFF
	arch := feature.Architecture(enum & 0xFF)
	switch base {
	case EnumISA:
		return feature.KindISA, arch
	case EnumSIMD:
		return feature.KindSIMD, arch
	default:
		return feature.KindSystem, arch
	}
}
