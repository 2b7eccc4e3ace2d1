package cpumodel

import "github.com/hupe1980/cpudispatch/internal/probe"

// Cache describes one cache. A zero Size means the cache is absent or unknown.
type Cache struct {
	Size          uint32
	LineSize      uint32
	Associativity uint32
	Unified       bool
}

// Caches is the hierarchy visible to one logical processor. L2 and L3 are
// always treated as unified.
type Caches struct {
	L0D, L0I Cache
	L1D, L1I Cache
	L2, L3   Cache
}

// Data returns the data cache at level, or the zero Cache.
func (c Caches) Data(level int) Cache {
	switch level {
	case 0:
		return c.L0D
	case 1:
		return c.L1D
	case 2:
		return c.L2
	case 3:
		return c.L3
	default:
		return Cache{}
	}
}

// Instruction returns the instruction cache at level. Levels 2 and 3 report
// the unified cache.
func (c Caches) Instruction(level int) Cache {
	switch level {
	case 0:
		return c.L0I
	case 1:
		return c.L1I
	default:
		return c.Data(level)
	}
}

func cachesFromEntries(entries []probe.CacheEntry) Caches {
	var c Caches
	for _, e := range entries {
		cache := Cache{
			Size:          e.Size,
			LineSize:      e.LineSize,
			Associativity: e.Associativity,
			Unified:       e.Type == probe.CacheUnified,
		}
		switch {
		case e.Level == 0 && e.Type == probe.CacheInstruction:
			c.L0I = cache
		case e.Level == 0:
			c.L0D = cache
		case e.Level == 1 && e.Type == probe.CacheInstruction:
			c.L1I = cache
		case e.Level == 1 && e.Type == probe.CacheData:
			c.L1D = cache
		case e.Level == 1:
			// A unified L1 serves both sides.
			c.L1D, c.L1I = cache, cache
		case e.Level == 2 && e.Type != probe.CacheInstruction:
			cache.Unified = true
			c.L2 = cache
		case e.Level == 3 && e.Type != probe.CacheInstruction:
			cache.Unified = true
			c.L3 = cache
		}
	}
	return c
}
