// Package instructions is the instruction semantics engine. It decodes a
// 32-bit MIPS32 word into a tagged Instruction value - one of the R, I, J or
// Illegal variants - and computes the architectural effect of the
// instruction during the execute stage.
//
// Decode is a pure function of the word plus the register file snapshot
// needed to fill in the RSValue/RTValue fields the pipeline controller
// forwards into. Execute is a pure function of an already-decoded
// Instruction, returning the value to write back (if any) and whether the
// instruction raised an exception.
package instructions
