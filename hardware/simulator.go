package hardware

import (
	"fmt"
	"io"

	"github.com/archtrace/mipscore/hardware/cpu"
	"github.com/archtrace/mipscore/hardware/cpu/execution"
	"github.com/archtrace/mipscore/hardware/cpu/registers"
	"github.com/archtrace/mipscore/hardware/memory/cache"
	"github.com/archtrace/mipscore/hardware/memory/store"
	"github.com/archtrace/mipscore/logger"
)

// Config gathers everything needed to construct a Simulator: independent
// cache configurations for instruction fetch and data access, and the main
// memory size backing both.
type Config struct {
	ICache     cache.Config
	DCache     cache.Config
	MemorySize uint32
}

// SimulationStats is the aggregate counter report printed by Finalize,
// ordered the way the original driver prints it: total cycles first, then
// instruction-cache counters, then data-cache counters.
type SimulationStats struct {
	Cycles   uint64
	ICHits   uint64
	ICMisses uint64
	DCHits   uint64
	DCMisses uint64
}

func (s SimulationStats) String() string {
	return fmt.Sprintf("cycles=%d ic_hits=%d ic_misses=%d dc_hits=%d dc_misses=%d",
		s.Cycles, s.ICHits, s.ICMisses, s.DCHits, s.DCMisses)
}

// Simulator owns the pipeline controller, both caches and main memory, and
// drives the pipeline either one cycle at a time or to completion.
type Simulator struct {
	Memory *store.MainMemory
	ICache *cache.Cache
	DCache *cache.Cache
	Pipe   *cpu.PipelineController

	cycles uint64
}

// InitSimulator constructs a Simulator: a main memory of cfg.MemorySize
// bytes, independent instruction and data caches built from cfg.ICache and
// cfg.DCache, and a fresh PipelineController over both.
func InitSimulator(cfg Config) (*Simulator, error) {
	mem := store.New(cfg.MemorySize)

	icache, err := cache.New(cfg.ICache, mem)
	if err != nil {
		return nil, err
	}
	dcache, err := cache.New(cfg.DCache, mem)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		Memory: mem,
		ICache: icache,
		DCache: dcache,
		Pipe:   cpu.New(icache, dcache),
	}, nil
}

// RunCycle advances the pipeline by exactly one cycle.
func (s *Simulator) RunCycle() (bool, error) {
	halted, err := s.Pipe.Cycle()
	if err != nil {
		return false, err
	}
	s.cycles++
	return halted, nil
}

// RunCycles advances the pipeline by up to n cycles, stopping early if the
// machine halts. It returns the number of cycles actually run.
func (s *Simulator) RunCycles(n uint64) (uint64, error) {
	var ran uint64
	for ran < n {
		halted, err := s.RunCycle()
		if err != nil {
			return ran, err
		}
		ran++
		if halted {
			break
		}
	}
	return ran, nil
}

// RunTillHalt advances the pipeline until the halt sentinel retires.
func (s *Simulator) RunTillHalt() error {
	for {
		halted, err := s.RunCycle()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// LastPipeState returns the pipeline occupancy snapshot from the most
// recently executed cycle.
func (s *Simulator) LastPipeState() execution.PipelineState {
	return s.Pipe.State()
}

// Stats returns the current aggregate counters.
func (s *Simulator) Stats() SimulationStats {
	return SimulationStats{
		Cycles:   s.cycles,
		ICHits:   s.ICache.Hits(),
		ICMisses: s.ICache.Misses(),
		DCHits:   s.DCache.Hits(),
		DCMisses: s.DCache.Misses(),
	}
}

// Finalize prints aggregate stats, then drains both caches to main memory,
// then dumps the final register file and the given memory window - in that
// order, matching the original driver's finalizeSimulator.
func (s *Simulator) Finalize(w io.Writer, memStart, memLength uint32) error {
	stats := s.Stats()
	logger.Log("sim", stats)
	if _, err := fmt.Fprintln(w, stats.String()); err != nil {
		return err
	}

	if err := s.ICache.Drain(); err != nil {
		return err
	}
	if err := s.DCache.Drain(); err != nil {
		return err
	}

	if err := store.DumpProgramCounter(w, registers.NewProgramCounter(s.Pipe.PC)); err != nil {
		return err
	}

	if err := store.DumpRegisters(w, s.Pipe.Regs); err != nil {
		return err
	}

	return store.DumpMemory(w, s.Memory, memStart, memLength)
}
