package feature

// Signature holds the decoded CPUID family, model and stepping of an x86 CPU.
// It is zero on other architectures.
type Signature struct {
	Family   uint32
	Model    uint32
	Stepping uint32
}

// Set is an immutable snapshot of everything that dispatch decisions depend on.
type Set struct {
	Architecture      Architecture
	Vendor            Vendor
	Microarchitecture Microarchitecture
	Signature         Signature
	ISA               ISA
	SIMD              SIMD
	System            System
}

// Mask clears the given bits and returns the result. The receiver is not modified.
func (s Set) Mask(isa ISA, simd SIMD, sys System) Set {
	s.ISA &^= isa
	s.SIMD &^= simd
	s.System &^= sys
	return s
}

// Names lists the identifiers of every feature present in s.
func (s Set) Names() (isa, simd, sys []string) {
	return Names(s.Architecture, KindISA, uint64(s.ISA)),
		Names(s.Architecture, KindSIMD, uint64(s.SIMD)),
		Names(s.Architecture, KindSystem, uint64(s.System))
}
