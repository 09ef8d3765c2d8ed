// Package execution holds the small value types shared between the
// pipeline controller and its latches: OptionalWord, an explicit "present or
// absent" 32-bit value used for pending register writes, and PipelineState,
// a per-cycle snapshot of the instruction word in each of the five stages
// used for reporting (spec.md §6).
package execution
