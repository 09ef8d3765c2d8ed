// Package registers implements the MIPS32 integer register file: thirty-two
// 32-bit general purpose registers plus the program counter.
//
// Register 0 ($zero) is hardwired: reads always return zero and writes are
// silently discarded. The File type enforces this at the point of Set/Get so
// that callers (the pipeline controller, the instruction semantics engine)
// never need to special-case it themselves.
//
// The program counter is represented separately by the ProgramCounter type,
// which is a plain 32-bit value with no special-register behaviour.
package registers
