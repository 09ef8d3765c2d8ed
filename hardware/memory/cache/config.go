package cache

import "github.com/archtrace/mipscore/errors"

// Config parameterizes a Cache instance. All four fields are supplied at
// simulation init; two independent Configs produce the I-cache and D-cache.
type Config struct {
	BlockSize     uint32
	CacheSize     uint32
	Associativity uint32
	MissLatency   uint32
}

// numBlocks and numSets are derived, not stored, from Config.
func (c Config) numBlocks() uint32 {
	return c.CacheSize / c.BlockSize
}

func (c Config) numSets() uint32 {
	return c.numBlocks() / c.Associativity
}

func isPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// Validate reports whether Config describes a constructible cache. Invalid
// configuration (non-power-of-two sizes, associativity other than 1 or 2) is
// a programmer error, per the core specification's error handling design.
func (c Config) Validate() error {
	if !isPowerOfTwo(c.BlockSize) {
		return errors.Errorf(errors.CacheConfigError, "block size must be a power of two")
	}
	if c.CacheSize%c.BlockSize != 0 {
		return errors.Errorf(errors.CacheConfigError, "cache size must be a multiple of block size")
	}
	if c.Associativity != 1 && c.Associativity != 2 {
		return errors.Errorf(errors.CacheConfigError, "associativity must be 1 or 2")
	}
	if !isPowerOfTwo(c.numSets()) {
		return errors.Errorf(errors.CacheConfigError, "number of sets must be a power of two")
	}
	return nil
}

// log2 returns the base-2 logarithm of a power-of-two value.
func log2(v uint32) uint32 {
	var n uint32
	for v > 1 {
		v >>= 1
		n++
	}
	return n
}
