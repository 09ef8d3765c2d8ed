// Package cache implements the direct-mapped and two-way set-associative
// write-back, write-allocate cache used for both instruction fetch and data
// access. Two independent instances are created, one per cache; neither
// package nor type is aware of which role a given instance serves.
//
// The design is grounded directly on the original cache_sim.cpp: a fixed
// array of sets, each holding one or two ways, each way carrying a tag,
// valid/dirty flags, an LRU rank, a ready-at-cycle counter modelling miss
// latency, and a fixed-size byte block.
package cache
