package cpu

import (
	"github.com/archtrace/mipscore/hardware/cpu/execution"
	"github.com/archtrace/mipscore/hardware/cpu/instructions"
)

// ifidLatch is the IF/ID boundary: the fetched word and the PC it was
// fetched from.
type ifidLatch struct {
	Word uint32
	PC   uint32
}

// stageLatch is the common shape of the ID/EX, EX/MEM and MEM/WB boundaries:
// the original word (for display), the decoded instruction record, the
// destination register (0 if none) and a pending write value that is
// present iff the execute or memory stage has produced a defined result.
type stageLatch struct {
	Word    uint32
	Inst    instructions.Instruction
	Dest    uint8
	Pending execution.OptionalWord
}

// bubble reports whether this latch has no architectural effect: no
// destination register and no pending value.
func (s stageLatch) bubble() bool {
	return s.Dest == 0 && !s.Pending.Present
}
