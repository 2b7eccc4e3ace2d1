// Package feature defines the CPU taxonomy shared by detection and dispatch:
// architectures, vendors, microarchitectures and the three 64-bit feature
// masks (ISA, SIMD, System).
//
// # Bit layout
//
// Feature bits are architecture-relative: bit 0 of an ISA mask means "x87 FPU"
// on x86 and "ARMv4" on ARM. System bits 0..31 are generic and carry the same
// meaning everywhere; bits 32..63 are architecture-specific.
//
// # Microarchitectures
//
// A Microarchitecture packs its architecture and vendor into the upper bits:
//
//	(architecture << 24) | (vendor << 16) | id
//
// so UarchHaswell.Vendor() == VendorIntel without any table lookup.
//
// # Names
//
// Every defined enumeration value and feature bit has a short identifier
// (no spaces, stable) and a human-readable description.
//
//	feature.ID(feature.ArchX86, feature.KindSIMD, 15)          // "AVX2"
//	feature.Description(feature.ArchX86, feature.KindSIMD, 15) // "AVX 2 instruction set"
package feature
