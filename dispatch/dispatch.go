package dispatch

import (
	"fmt"

	"github.com/hupe1980/cpudispatch/feature"
)

// Requirement is the set of capabilities an implementation needs.
// The zero Requirement runs anywhere and marks the fallback entry.
type Requirement struct {
	ISA               feature.ISA
	SIMD              feature.SIMD
	System            feature.System
	Microarchitecture feature.Microarchitecture
}

// IsFallback reports whether r requires nothing.
func (r Requirement) IsFallback() bool { return r == Requirement{} }

// Satisfied reports whether every required feature bit is present in set and
// the required microarchitecture is either the wildcard or set's own.
func (r Requirement) Satisfied(set feature.Set) bool {
	return r.featuresSatisfied(set) &&
		(r.Microarchitecture == feature.AnyMicroarchitecture || r.Microarchitecture == set.Microarchitecture)
}

func (r Requirement) featuresSatisfied(set feature.Set) bool {
	return set.ISA.Has(r.ISA) && set.SIMD.Has(r.SIMD) && set.System.Has(r.System)
}

// Entry is one implementation of a dispatched operation.
type Entry[F any] struct {
	Name        string
	Fn          F
	Requirement Requirement
}

// Table lists the implementations of one operation, most specialized first.
// It must contain a fallback entry.
type Table[F any] []Entry[F]

// Fallback returns the index of the first fallback entry, or -1.
func (t Table[F]) Fallback() int {
	for i, e := range t {
		if e.Requirement.IsFallback() {
			return i
		}
	}
	return -1
}

// Policy selects an entry from a table.
type Policy uint8

const (
	// FirstQualifying picks the first entry in table order whose
	// requirement is satisfied.
	FirstQualifying Policy = iota
	// PreferMicroarchitecture walks the preference list of the detected
	// microarchitecture and, for each listed microarchitecture in turn,
	// picks the first qualifying entry tuned for it. Entries after the
	// fallback are never considered.
	PreferMicroarchitecture
)

func (p Policy) String() string {
	switch p {
	case FirstQualifying:
		return "first-qualifying"
	case PreferMicroarchitecture:
		return "prefer-microarchitecture"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// Resolve returns the first entry of table satisfied by set.
//
// Resolve panics if table has no fallback entry, even when a specialized
// entry would qualify.
func Resolve[F any](table Table[F], set feature.Set) Entry[F] {
	return table[resolveIndex(table, set, FirstQualifying, "")]
}

// ResolveWith is Resolve under an explicit policy.
func ResolveWith[F any](table Table[F], set feature.Set, p Policy) Entry[F] {
	return table[resolveIndex(table, set, p, "")]
}

func resolveIndex[F any](table Table[F], set feature.Set, p Policy, name string) int {
	fallback := table.Fallback()
	if fallback < 0 {
		if name == "" {
			name = "table"
		}
		panic(fmt.Sprintf("dispatch: %s has no fallback entry (zero Requirement) among %d entries", name, len(table)))
	}

	switch p {
	case PreferMicroarchitecture:
		candidates := table[:fallback+1]
		for _, target := range preferenceList(set.Microarchitecture) {
			for i, e := range candidates {
				if e.Requirement.Microarchitecture == target && e.Requirement.featuresSatisfied(set) {
					return i
				}
			}
		}
	default:
		for i, e := range table {
			if e.Requirement.Satisfied(set) {
				return i
			}
		}
	}

	return fallback
}
