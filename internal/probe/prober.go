package probe

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/hupe1980/cpudispatch/internal/resource"
)

// HelperEnv carries the hex-encoded instruction bytes to a helper process.
const HelperEnv = "CPUDISPATCH_PROBE_HELPER"

// DefaultProbeTimeout bounds a single helper process.
const DefaultProbeTimeout = 5 * time.Second

// Result is the outcome of an instruction probe.
type Result uint8

const (
	// Unavailable means the probe could not be run. Callers treat it as
	// unsupported.
	Unavailable Result = iota
	// Supported means the instruction executed and returned.
	Supported
	// Unsupported means the instruction raised an illegal-instruction fault.
	Unsupported
)

func (r Result) String() string {
	switch r {
	case Supported:
		return "supported"
	case Unsupported:
		return "unsupported"
	default:
		return "unavailable"
	}
}

// Instruction is a machine-code sequence to try. Code must leave the stack
// and callee-visible state as it found them; a return is appended for it.
type Instruction struct {
	Name string
	Code []byte
}

// ProberOptions configures a Prober.
type ProberOptions struct {
	// Executable is re-executed in helper mode. Defaults to os.Executable().
	Executable string
	// Timeout bounds each helper. Defaults to DefaultProbeTimeout.
	Timeout time.Duration
	// Resources bounds concurrent helpers. Nil means unbounded.
	Resources *resource.Controller
	// Logger receives probe outcomes at debug level.
	Logger *slog.Logger
	// Disabled makes every probe report Unavailable without starting a process.
	Disabled bool
	// OnResult, if set, is called once per executed probe.
	OnResult func(name string, r Result)
}

// Prober runs instructions in disposable helper processes and caches the
// outcome per instruction encoding. A nil *Prober reports Unavailable.
type Prober struct {
	opts ProberOptions

	mu    sync.Mutex
	cache map[string]Result
}

// NewProber returns a Prober. Probing is disabled when no executable can be
// located.
func NewProber(opts ProberOptions) *Prober {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultProbeTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Executable == "" && !opts.Disabled {
		exe, err := os.Executable()
		if err != nil {
			opts.Logger.Debug("instruction probing disabled", "error", err)
			opts.Disabled = true
		}
		opts.Executable = exe
	}
	return &Prober{opts: opts, cache: make(map[string]Result)}
}

// Enabled reports whether Probe may start helper processes.
func (p *Prober) Enabled() bool {
	return p != nil && !p.opts.Disabled && helperSupported
}

// Probe reports whether ins executes on this CPU.
func (p *Prober) Probe(ctx context.Context, ins Instruction) Result {
	if !p.Enabled() || len(ins.Code) == 0 {
		return Unavailable
	}

	key := hex.EncodeToString(ins.Code)
	p.mu.Lock()
	r, ok := p.cache[key]
	p.mu.Unlock()
	if ok {
		return r
	}

	if err := p.opts.Resources.AcquireProbe(ctx); err != nil {
		return Unavailable
	}
	r, err := p.run(ctx, key)
	p.opts.Resources.ReleaseProbe()

	p.opts.Logger.DebugContext(ctx, "instruction probe",
		"instruction", ins.Name,
		"result", r.String(),
		"error", err,
	)
	if p.opts.OnResult != nil {
		p.opts.OnResult(ins.Name, r)
	}

	// A cancelled probe says nothing about the CPU.
	if ctx.Err() == nil {
		p.mu.Lock()
		p.cache[key] = r
		p.mu.Unlock()
	}
	return r
}

// helperGuard kills and reaps the helper on every exit path.
type helperGuard struct {
	cmd  *exec.Cmd
	done bool
}

func (g *helperGuard) wait() error {
	err := g.cmd.Wait()
	g.done = true
	return err
}

func (g *helperGuard) release() {
	if g.done {
		return
	}
	_ = g.cmd.Process.Kill()
	_ = g.cmd.Wait()
}

func (p *Prober) run(ctx context.Context, code string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.opts.Executable)
	cmd.Args = []string{"cpudispatch-probe-helper"}
	cmd.Env = append(os.Environ(), HelperEnv+"="+code)
	cmd.Stderr = &limitedBuffer{buf: &stderr, max: 4096}

	if err := cmd.Start(); err != nil {
		return Unavailable, err
	}
	g := &helperGuard{cmd: cmd}
	defer g.release()

	err := g.wait()
	return classify(cmd.ProcessState, stderr.String()), err
}

// classify maps a finished helper onto a Result. The Go runtime turns SIGILL
// into a fatal error that exits with status 2 after printing the signal name,
// so both a raw SIGILL termination and that report count as Unsupported.
func classify(state *os.ProcessState, stderr string) Result {
	if state == nil {
		return Unavailable
	}
	if state.Success() {
		return Supported
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() && ws.Signal() == syscall.SIGILL {
		return Unsupported
	}
	if state.ExitCode() == 2 && strings.Contains(stderr, "SIGILL: illegal instruction") {
		return Unsupported
	}
	return Unavailable
}

type limitedBuffer struct {
	buf *bytes.Buffer
	max int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if room := l.max - l.buf.Len(); room > 0 {
		l.buf.Write(p[:min(len(p), room)])
	}
	return len(p), nil
}

// errHelper is reported by helper processes that cannot run the payload.
var errHelper = errors.New("probe: helper cannot execute payload")
