// Package probe gathers raw processor facts from the platform.
//
// Three techniques are combined:
//
//   - Declarative queries: CPUID through github.com/klauspost/cpuid/v2 on x86,
//     hwcaps through golang.org/x/sys/cpu on ARM, sysctl on Darwin and sysfs
//     on Linux.
//   - Text parsing: cpuinfo files are streamed with ReadLines, which tolerates
//     short reads and lines split across chunks.
//   - Instruction probing: a Prober re-executes the current binary with
//     HelperEnv set. The helper maps the instruction into an executable page,
//     runs it and exits. A clean exit means the instruction is supported; an
//     illegal-instruction fault means it is not; anything else is
//     Unavailable and treated as unsupported.
//
// Every binary that links this package becomes a valid helper: the helper
// branch runs from the package's init function, before main.
//
// Failures never surface as errors from Collect. A probe that cannot run
// leaves its facts unset, and the features it would have reported are absent.
package probe
