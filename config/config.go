// Package config loads the TOML configuration file that parameterizes a
// simulation run: independent instruction- and data-cache geometries plus
// the handful of run-level knobs cmd/pipesim exposes as flag defaults.
//
// This replaces the teacher's key=value prefs file with a typed TOML
// document, decoded with github.com/BurntSushi/toml:
//
//	[icache]
//	block_size    = 4
//	cache_size    = 256
//	associativity = 1
//	miss_latency  = 10
//
//	[dcache]
//	block_size    = 4
//	cache_size    = 256
//	associativity = 2
//	miss_latency  = 10
//
//	[run]
//	max_cycles  = 1000000
//	stats_addr  = ""
//	dump_start  = 0
//	dump_length = 256
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/archtrace/mipscore/errors"
	"github.com/archtrace/mipscore/hardware"
	"github.com/archtrace/mipscore/hardware/memory/cache"
)

// cacheSection mirrors cache.Config field-for-field with toml tags; kept
// separate so the on-disk key names (snake_case) don't leak into the
// architectural Config type.
type cacheSection struct {
	BlockSize     uint32 `toml:"block_size"`
	CacheSize     uint32 `toml:"cache_size"`
	Associativity uint32 `toml:"associativity"`
	MissLatency   uint32 `toml:"miss_latency"`
}

func (s cacheSection) toCache() cache.Config {
	return cache.Config{
		BlockSize:     s.BlockSize,
		CacheSize:     s.CacheSize,
		Associativity: s.Associativity,
		MissLatency:   s.MissLatency,
	}
}

// Run gathers the simulation-driver knobs that aren't part of either cache's
// geometry: how long to run for, where to serve the live stats dashboard,
// and what memory window to print at the end.
type Run struct {
	MaxCycles  uint64 `toml:"max_cycles"`
	StatsAddr  string `toml:"stats_addr"`
	DumpStart  uint32 `toml:"dump_start"`
	DumpLength uint32 `toml:"dump_length"`
	MemorySize uint32 `toml:"memory_size"`
}

// document is the root of the TOML file.
type document struct {
	ICache cacheSection `toml:"icache"`
	DCache cacheSection `toml:"dcache"`
	Run    Run          `toml:"run"`
}

// Config is the decoded, validated result of loading a configuration file.
type Config struct {
	ICache cache.Config
	DCache cache.Config
	Run    Run
}

// defaultDocument supplies every field cmd/pipesim needs when no config file
// is given, or when a file omits a table entirely.
func defaultDocument() document {
	return document{
		ICache: cacheSection{BlockSize: 4, CacheSize: 256, Associativity: 1, MissLatency: 10},
		DCache: cacheSection{BlockSize: 4, CacheSize: 256, Associativity: 2, MissLatency: 10},
		Run:    Run{MaxCycles: 1_000_000, DumpLength: 256, MemorySize: 1 << 20},
	}
}

// Default returns the configuration used when the caller passes no file.
func Default() Config {
	return fromDocument(defaultDocument())
}

// Load reads and decodes a TOML configuration file at path, starting from
// Default so that a file which only overrides, say, [run] still produces a
// fully populated Config.
func Load(path string) (Config, error) {
	doc := defaultDocument()
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return Config{}, errors.Errorf(errors.ConfigDecodeError, err)
	}
	return fromDocument(doc), nil
}

func fromDocument(doc document) Config {
	return Config{
		ICache: doc.ICache.toCache(),
		DCache: doc.DCache.toCache(),
		Run:    doc.Run,
	}
}

// Validate checks both cache geometries; Run has no invariants of its own
// beyond what the flag parser in cmd/pipesim already enforces.
func (c Config) Validate() error {
	if err := c.ICache.Validate(); err != nil {
		return errors.Errorf(errors.ConfigError, err)
	}
	if err := c.DCache.Validate(); err != nil {
		return errors.Errorf(errors.ConfigError, err)
	}
	return nil
}

// HardwareConfig adapts the decoded cache geometries into a
// hardware.Config, the shape InitSimulator actually wants.
func (c Config) HardwareConfig() hardware.Config {
	return hardware.Config{
		ICache:     c.ICache,
		DCache:     c.DCache,
		MemorySize: c.Run.MemorySize,
	}
}
