package dispatch

import (
	"slices"

	"github.com/hupe1980/cpudispatch/atomics"
	"github.com/hupe1980/cpudispatch/feature"
)

// Source supplies the feature set a Cell resolves against.
type Source interface {
	Features() feature.Set
}

// SourceFunc adapts a function to Source.
type SourceFunc func() feature.Set

func (f SourceFunc) Features() feature.Set { return f() }

// StaticSource always reports the same set.
func StaticSource(set feature.Set) Source {
	return SourceFunc(func() feature.Set { return set })
}

// Recorder observes cell resolutions. won is true for the goroutine whose
// choice was published and false for those that adopted it.
type Recorder interface {
	RecordResolve(op, entry string, won bool)
}

type cellOptions struct {
	name     string
	policy   Policy
	recorder Recorder
}

// CellOption configures a Cell.
type CellOption func(*cellOptions)

// WithName labels the cell in panics and recorder callbacks.
func WithName(name string) CellOption {
	return func(o *cellOptions) { o.name = name }
}

// WithPolicy sets the selection policy. The default is FirstQualifying.
func WithPolicy(p Policy) CellOption {
	return func(o *cellOptions) { o.policy = p }
}

// WithRecorder attaches a resolution observer.
func WithRecorder(r Recorder) CellOption {
	return func(o *cellOptions) { o.recorder = r }
}

// Cell lazily resolves a table on first use and caches the choice for its
// lifetime. A Cell is safe for concurrent use and never locks.
//
// The state word is 0 while unresolved and i+1 once entry i has been
// published. It changes at most once, from 0, by compare-and-swap; racing
// resolvers that lose adopt the published entry.
type Cell[F any] struct {
	table  Table[F]
	source Source
	opts   cellOptions
	state  uint32
}

// NewCell creates an unresolved cell. The table is copied. NewCell panics if
// the table has no fallback entry.
func NewCell[F any](table Table[F], source Source, opts ...CellOption) *Cell[F] {
	o := cellOptions{policy: FirstQualifying}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cell[F]{
		table:  slices.Clone(table),
		source: source,
		opts:   o,
	}
	if c.table.Fallback() < 0 {
		name := o.name
		if name == "" {
			name = "cell table"
		}
		resolveIndex(c.table, feature.Set{}, o.policy, name)
	}
	return c
}

func (c *Cell[F]) load() uint32 {
	// Cannot fail: &c.state is non-nil and 4-byte aligned.
	v, _ := atomics.LoadAcquire(&c.state)
	return v
}

// Get returns the resolved implementation, resolving it on first call.
func (c *Cell[F]) Get() F {
	return c.Entry().Fn
}

// Entry returns the resolved table entry, resolving it on first call.
func (c *Cell[F]) Entry() Entry[F] {
	if s := c.load(); s != 0 {
		return c.table[s-1]
	}
	return c.table[c.resolve()]
}

// Resolved reports whether a choice has been published.
func (c *Cell[F]) Resolved() bool { return c.load() != 0 }

func (c *Cell[F]) resolve() int {
	var set feature.Set
	if c.source != nil {
		set = c.source.Features()
	}

	idx := resolveIndex(c.table, set, c.opts.policy, c.opts.name)
	won := atomics.CompareAndSwapOrdered(&c.state, uint32(idx+1), 0) == nil
	if !won {
		idx = int(c.load()) - 1
	}

	if c.opts.recorder != nil {
		c.opts.recorder.RecordResolve(c.opts.name, c.table[idx].Name, won)
	}
	return idx
}
