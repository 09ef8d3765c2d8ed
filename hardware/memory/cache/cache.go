package cache

import (
	"github.com/archtrace/mipscore/errors"
	"github.com/archtrace/mipscore/hardware/memory/bus"
)

// way is one entry within a set.
type way struct {
	valid   bool
	dirty   bool
	tag     uint32
	lru     uint32
	readyAt uint64
	block   []byte
}

// cacheSet is one row of the cache: a fixed number of ways, sized by
// associativity.
type cacheSet struct {
	ways []way
}

// find returns the way within the set whose valid bit is set and whose tag
// matches, if any.
func (s *cacheSet) find(tag uint32) (int, bool) {
	for i := range s.ways {
		if s.ways[i].valid && s.ways[i].tag == tag {
			return i, true
		}
	}
	return 0, false
}

// Cache is a fixed-capacity, block-structured, set-associative cache. Two
// independent instances serve instruction fetch and data access; neither the
// type nor its methods distinguish between the two roles.
type Cache struct {
	cfg  Config
	mem  bus.MemoryBus
	sets []cacheSet

	offsetBits uint32
	setBits    uint32

	hits   uint64
	misses uint64

	// outstanding identifies the exact address a miss is currently in flight
	// for, so that the pipeline's re-presentation of that same access once
	// the miss latency elapses is recognised and not counted a second time.
	// Tracking the full address (not just the block) matters: a different
	// address that happens to fall in the same block as an in-flight miss
	// (e.g. 0x1004 after a miss on 0x1000 in a 16-byte block) is a distinct
	// access and must still be counted.
	outstanding      bool
	outstandingTag   uint32
	outstandingSet   uint32
	outstandingOff   uint32
	outstandingReady uint64
}

// New constructs a Cache against the given configuration and main memory.
func New(cfg Config, mem bus.MemoryBus) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cache{
		cfg:        cfg,
		mem:        mem,
		offsetBits: log2(cfg.BlockSize),
		setBits:    log2(cfg.numSets()),
	}

	c.sets = make([]cacheSet, cfg.numSets())
	for i := range c.sets {
		c.sets[i].ways = make([]way, cfg.Associativity)
		for w := range c.sets[i].ways {
			c.sets[i].ways[w].block = make([]byte, cfg.BlockSize)
		}
	}

	return c, nil
}

// decompose splits a physical address into tag, set index and byte offset,
// per the fixed bit-field layout of §3.
func (c *Cache) decompose(address uint32) (tag, setIndex, offset uint32) {
	offset = address & (c.cfg.BlockSize - 1)
	setIndex = (address >> c.offsetBits) & (c.cfg.numSets() - 1)
	tag = address >> (c.offsetBits + c.setBits)
	return
}

// baseAddress reconstructs the block-aligned address (tag ∥ set index ∥ 0)
// of a way, used when fetching or writing back a block.
func (c *Cache) baseAddress(tag, setIndex uint32) uint32 {
	return (tag << (c.offsetBits + c.setBits)) | (setIndex << c.offsetBits)
}

// chooseVictim selects an eviction candidate: an invalid way if one exists,
// otherwise the way with the lowest LRU rank.
func (s *cacheSet) chooseVictim() int {
	for i := range s.ways {
		if !s.ways[i].valid {
			return i
		}
	}

	victim := 0
	for i := range s.ways {
		if s.ways[i].lru < s.ways[victim].lru {
			victim = i
		}
	}
	return victim
}

// touchLRU promotes wayIdx to the most-recently-used rank and decrements
// every other valid way whose rank exceeded wayIdx's previous rank. For
// associativity 2 this is exactly a swap.
func (s *cacheSet) touchLRU(wayIdx int, associativity uint32) {
	old := s.ways[wayIdx].lru
	for i := range s.ways {
		if i == wayIdx {
			continue
		}
		if s.ways[i].valid && s.ways[i].lru > old {
			s.ways[i].lru--
		}
	}
	s.ways[wayIdx].lru = associativity - 1
}

// writeback flushes way wayIdx of set (at setIndex) to main memory byte by
// byte, regardless of its dirty bit - callers check dirty first.
func (c *Cache) writeback(set *cacheSet, wayIdx int, setIndex uint32) error {
	base := c.baseAddress(set.ways[wayIdx].tag, setIndex)
	for i := uint32(0); i < c.cfg.BlockSize; i++ {
		if err := c.mem.Write(base+i, set.ways[wayIdx].block[i]); err != nil {
			return err
		}
	}
	return nil
}

// resolve locates (or installs) the block covering tag/setIndex at the given
// cycle, returning the way index and the extra cycle count the access
// incurs: 0 for an immediate hit, cfg.MissLatency otherwise. Hit/miss
// accounting happens here, exactly once per distinct access: the pipeline
// re-presents the same stalled access, at the same address, once its miss
// latency has elapsed (cpu.go holds EX/MEM across the stall and retries),
// and resolve recognises that re-presentation via outstanding* rather than
// counting it again. A different address landing in the same block as an
// in-flight miss is not the retry - it is a distinct access and is resolved
// (and counted) normally. A way that matches but whose ready-at-cycle has
// not yet elapsed is treated as a miss too, and its contents are left
// untouched.
func (c *Cache) resolve(set *cacheSet, tag, setIndex, offset uint32, cycle uint64) (int, uint32, error) {
	if c.outstanding && c.outstandingTag == tag && c.outstandingSet == setIndex && c.outstandingOff == offset && cycle >= c.outstandingReady {
		c.outstanding = false
		idx, ok := set.find(tag)
		if !ok {
			return 0, 0, errors.Errorf(errors.CacheConfigError, "outstanding miss evicted before completion")
		}
		set.touchLRU(idx, c.cfg.Associativity)
		return idx, 0, nil
	}

	if idx, ok := set.find(tag); ok {
		w := &set.ways[idx]
		if w.readyAt > cycle {
			c.misses++
			return idx, c.cfg.MissLatency, nil
		}
		set.touchLRU(idx, c.cfg.Associativity)
		c.hits++
		return idx, 0, nil
	}

	victim := set.chooseVictim()
	if set.ways[victim].valid && set.ways[victim].dirty {
		if err := c.writeback(set, victim, setIndex); err != nil {
			return 0, 0, err
		}
	}

	base := c.baseAddress(tag, setIndex)
	for i := uint32(0); i < c.cfg.BlockSize; i++ {
		b, err := c.mem.Read(base + i)
		if err != nil {
			return 0, 0, err
		}
		set.ways[victim].block[i] = b
	}

	set.ways[victim].valid = true
	set.ways[victim].dirty = false
	set.ways[victim].tag = tag
	set.ways[victim].readyAt = cycle + uint64(c.cfg.MissLatency)
	set.touchLRU(victim, c.cfg.Associativity)

	c.misses++
	c.outstanding = true
	c.outstandingTag = tag
	c.outstandingSet = setIndex
	c.outstandingOff = offset
	c.outstandingReady = set.ways[victim].readyAt

	return victim, c.cfg.MissLatency, nil
}

// Read performs a big-endian multi-byte read of size bytes (1, 2 or 4) at
// address, as observed at cycle. The first byte's outcome classifies the
// whole access for hit/miss accounting.
func (c *Cache) Read(address uint32, size uint32, cycle uint64) (uint32, uint32, error) {
	tag, setIndex, offset := c.decompose(address)
	set := &c.sets[setIndex]

	wayIdx, extra, err := c.resolve(set, tag, setIndex, offset, cycle)
	if err != nil {
		return 0, 0, err
	}

	var value uint32
	for i := uint32(0); i < size; i++ {
		value = (value << 8) | uint32(set.ways[wayIdx].block[offset+i])
	}
	return value, extra, nil
}

// Write performs a big-endian multi-byte write of size bytes at address, as
// observed at cycle. The high-order byte is stored at the lowest address.
// A write miss installs the block and then stores into it, setting dirty
// (write-allocate), while still reporting the miss latency. A write to a
// resident block whose latency is still in flight (extra > 0) does not
// update the block's contents or dirty bit.
func (c *Cache) Write(address uint32, value uint32, size uint32, cycle uint64) (uint32, error) {
	tag, setIndex, offset := c.decompose(address)
	set := &c.sets[setIndex]

	_, resident := set.find(tag)
	wayIdx, extra, err := c.resolve(set, tag, setIndex, offset, cycle)
	if err != nil {
		return 0, err
	}
	if extra > 0 && resident {
		return extra, nil
	}

	for i := uint32(0); i < size; i++ {
		shift := (size - 1 - i) * 8
		set.ways[wayIdx].block[offset+i] = byte(value >> shift)
	}
	set.ways[wayIdx].dirty = true

	return extra, nil
}

// Drain flushes every valid dirty block back to main memory. Counters are
// left untouched. Calling Drain twice has the same effect as calling it
// once: the second call finds nothing dirty.
func (c *Cache) Drain() error {
	for setIndex := range c.sets {
		set := &c.sets[setIndex]
		for i := range set.ways {
			if set.ways[i].valid && set.ways[i].dirty {
				if err := c.writeback(set, i, uint32(setIndex)); err != nil {
					return err
				}
				set.ways[i].dirty = false
			}
		}
	}
	return nil
}

// Hits returns the number of accesses classified as hits so far.
func (c *Cache) Hits() uint64 { return c.hits }

// Misses returns the number of accesses classified as misses so far.
func (c *Cache) Misses() uint64 { return c.misses }
