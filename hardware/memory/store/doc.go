// Package store implements main memory: a flat, byte-addressed array with
// synchronous, zero-latency reads and writes. The cache is the only
// privileged caller; everything else (the program loader, the dumper, tests)
// reaches main memory through the same bus.MemoryBus/bus.DebugBus contract.
//
// This package, the program Loader and the register/memory Dumper, are named
// an external collaborator by the core specification - they carry no
// pipeline or cache semantics of their own, only the plumbing needed to get
// bytes in and architectural state out.
package store
