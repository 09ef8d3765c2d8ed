package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archtrace/mipscore/hardware/memory/cache"
	"github.com/archtrace/mipscore/hardware/memory/store"
)

func TestMissThenHitLatencyAccounting(t *testing.T) {
	mem := store.New(1 << 16)
	c, err := cache.New(cache.Config{BlockSize: 16, CacheSize: 64, Associativity: 1, MissLatency: 5}, mem)
	require.NoError(t, err)

	_, extra, err := c.Read(0x1000, 4, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, extra)

	_, extra, err = c.Read(0x1004, 4, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, extra)

	assert.EqualValues(t, 1, c.Misses())
	assert.EqualValues(t, 1, c.Hits())
}

func TestWriteBackOnEviction(t *testing.T) {
	mem := store.New(4096)
	c, err := cache.New(cache.Config{BlockSize: 4, CacheSize: 8, Associativity: 1, MissLatency: 2}, mem)
	require.NoError(t, err)

	_, err = c.Write(0x0000, 0xdeadbeef, 4, 0)
	require.NoError(t, err)

	_, err = c.Write(0x0008, 0xcafebabe, 4, 10)
	require.NoError(t, err)

	b0, err := mem.Peek(0x0000)
	require.NoError(t, err)
	assert.EqualValues(t, 0xde, b0)
}

func TestHitsPlusMissesEqualsDistinctAccesses(t *testing.T) {
	// cache invariant: hits+misses equals the number of distinct accesses
	// presented.
	mem := store.New(256)
	c, err := cache.New(cache.Config{BlockSize: 8, CacheSize: 32, Associativity: 2, MissLatency: 3}, mem)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, _, err := c.Read(uint32(i*8), 1, uint64(i*10))
		require.NoError(t, err)
	}

	assert.EqualValues(t, 5, c.Hits()+c.Misses())
}

func TestSecondByteOfMultiByteAccessDoesNotDoubleCount(t *testing.T) {
	mem := store.New(256)
	c, err := cache.New(cache.Config{BlockSize: 16, CacheSize: 32, Associativity: 1, MissLatency: 4}, mem)
	require.NoError(t, err)

	_, _, err = c.Read(0x10, 4, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 1, c.Misses())
	assert.EqualValues(t, 0, c.Hits())
}

func TestDrainIsIdempotent(t *testing.T) {
	mem := store.New(256)
	c, err := cache.New(cache.Config{BlockSize: 4, CacheSize: 8, Associativity: 1, MissLatency: 1}, mem)
	require.NoError(t, err)

	_, err = c.Write(0, 0xaabbccdd, 4, 0)
	require.NoError(t, err)

	require.NoError(t, c.Drain())
	require.NoError(t, c.Drain())

	b, err := mem.Peek(0)
	require.NoError(t, err)
	assert.EqualValues(t, 0xaa, b)
}

func TestAssociativeLRUSwap(t *testing.T) {
	mem := store.New(4096)
	c, err := cache.New(cache.Config{BlockSize: 4, CacheSize: 8, Associativity: 2, MissLatency: 1}, mem)
	require.NoError(t, err)

	// both ways in the single set are installed, then way 0 touched again by
	// reading the first address; a third distinct block should now evict way 1.
	_, _, err = c.Read(0x0000, 4, 0)
	require.NoError(t, err)
	_, _, err = c.Read(0x0010, 4, 5)
	require.NoError(t, err)
	_, _, err = c.Read(0x0000, 4, 10)
	require.NoError(t, err)

	_, extra, err := c.Read(0x0020, 4, 15)
	require.NoError(t, err)
	assert.EqualValues(t, 1, extra)

	// 0x0000's block should still be resident (was the MRU way, not evicted)
	_, extra, err = c.Read(0x0000, 4, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, extra)
}
