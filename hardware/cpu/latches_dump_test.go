package cpu

import (
	"os"
	"testing"

	"github.com/bradleyjkemp/memviz"
	"github.com/stretchr/testify/require"

	"github.com/archtrace/mipscore/hardware/memory/cache"
	"github.com/archtrace/mipscore/hardware/memory/store"
)

// pipelineSnapshot is the plain struct memviz graphs: the four inter-stage
// latches plus the two caches they're attached to, at whatever instant the
// caller captures it. This is the same technique the teacher's own
// commandline parser test uses memviz for - dump a plain struct to a .dot
// graph for visual diagnosis of a failing test - aimed at pipeline state
// instead of a parsed command tree.
type pipelineSnapshot struct {
	IFID  ifidLatch
	IDEX  stageLatch
	EXMEM stageLatch
	MEMWB stageLatch

	ICache *cache.Cache
	DCache *cache.Cache
}

func (p *PipelineController) snapshot() pipelineSnapshot {
	return pipelineSnapshot{
		IFID:   p.ifid,
		IDEX:   p.idex,
		EXMEM:  p.exmem,
		MEMWB:  p.memwb,
		ICache: p.icache,
		DCache: p.dcache,
	}
}

// TestDumpLatchesGraph exercises memviz against a pipeline mid-run, the way
// a failing scenario test would be re-run with a .dot dump enabled to see
// exactly what every latch held at the point of failure.
func TestDumpLatchesGraph(t *testing.T) {
	cfg := cache.Config{BlockSize: 4, CacheSize: 64, Associativity: 1, MissLatency: 1}
	icache, err := cache.New(cfg, store.New(256))
	require.NoError(t, err)
	dcache, err := cache.New(cfg, store.New(256))
	require.NoError(t, err)

	p := New(icache, dcache)
	_, err = p.Cycle()
	require.NoError(t, err)

	dir := t.TempDir()
	f, err := os.Create(dir + "/latches.dot")
	require.NoError(t, err)
	defer f.Close()

	memviz.Map(f, p.snapshot())

	info, err := f.Stat()
	require.NoError(t, err)
	require.NotZero(t, info.Size(), "memviz should have written a non-empty .dot graph")
}
