// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package cpu

import (
	"github.com/archtrace/mipscore/errors"
	"github.com/archtrace/mipscore/hardware/cpu/execution"
	"github.com/archtrace/mipscore/hardware/cpu/instructions"
	"github.com/archtrace/mipscore/hardware/cpu/registers"
	"github.com/archtrace/mipscore/hardware/memory/cache"
	"github.com/archtrace/mipscore/logger"
)

// PipelineController drives the five-stage in-order pipeline described by
// the core design: four inter-stage latches, the architectural register
// file and program counter, and the stall/halt bookkeeping that governs
// whether those latches commit, hold or bubble at the end of a cycle.
type PipelineController struct {
	Regs *registers.File
	PC   uint32

	icache *cache.Cache
	dcache *cache.Cache

	ifid  ifidLatch
	idex  stageLatch
	exmem stageLatch
	memwb stageLatch

	haltSeen bool
	halted   bool

	memStallCycles uint32
	cycle          uint64

	lastState execution.PipelineState
}

// New constructs a PipelineController with PC at zero, a fresh register
// file and every latch a bubble.
func New(icache, dcache *cache.Cache) *PipelineController {
	return &PipelineController{
		Regs:   registers.NewFile(),
		icache: icache,
		dcache: dcache,
	}
}

// Halted reports whether the halt sentinel has retired from write-back.
func (p *PipelineController) Halted() bool {
	return p.halted
}

// State returns the pipeline occupancy snapshot most recently produced by
// Cycle: the cycle number plus the instruction word associated with each of
// the five stages.
func (p *PipelineController) State() execution.PipelineState {
	return p.lastState
}

func maxu32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// decodeDestination returns the destination register an ordinary (non-flow)
// R or I form instruction writes, or 0 if it writes none.
func decodeDestination(dec instructions.Instruction) uint8 {
	switch dec.Tag {
	case instructions.TagR:
		return dec.DestinationR()
	case instructions.TagI:
		if dec.Category == instructions.Store {
			return 0
		}
		return dec.DestinationT()
	default:
		return 0
	}
}

// branchSources returns the source registers a conditional branch compares.
func branchSources(dec instructions.Instruction) []uint8 {
	switch dec.Operator {
	case instructions.BEQ, instructions.BNE:
		return []uint8{dec.SourceRS(), dec.SourceRT()}
	default:
		return []uint8{dec.SourceRS()}
	}
}

// Cycle advances the pipeline by exactly one cycle. It returns true once the
// halt sentinel has retired from write-back; once true, every subsequent
// call is a no-op that also returns true.
func (p *PipelineController) Cycle() (bool, error) {
	if p.halted {
		return true, nil
	}

	if p.memStallCycles > 0 {
		p.memStallCycles--
		p.cycle++
		return false, nil
	}

	// stage 1: write-back, using the latches as they stand at cycle start,
	// so decode later this same cycle observes the write.
	if p.memwb.Pending.Present && p.memwb.Dest != 0 {
		p.Regs.Set(p.memwb.Dest, p.memwb.Pending.Value)
	}
	halting := p.memwb.Word == instructions.HaltSentinel

	curIFID := p.ifid
	curIDEX := p.idex
	curEXMEM := p.exmem
	curMEMWB := p.memwb

	var nextIFID ifidLatch
	var nextIDEX, nextEXMEM, nextMEMWB stageLatch

	nextPC := p.PC
	pcOverridden := false

	fetchStall := false
	decodeStall := false
	memoryStall := false
	flush := false

	// stage 2: instruction fetch
	if !p.haltSeen {
		word, extra, err := p.icache.Read(p.PC, 4, p.cycle)
		if err != nil {
			return false, err
		}
		if extra > 0 {
			fetchStall = true
			p.memStallCycles = maxu32(p.memStallCycles, extra)
			logger.Logf("cpu", "fetch stall at pc=%#08x (%d cycles)", p.PC, extra)
		} else {
			nextIFID = ifidLatch{Word: word, PC: p.PC}
			nextPC = p.PC + 4
			if word == instructions.HaltSentinel {
				p.haltSeen = true
			}
		}
	} else {
		nextIFID = ifidLatch{Word: 0, PC: p.PC}
	}

	// stage 3: instruction decode, always against the latch as it stood at
	// the start of the cycle - a fetch stall this cycle doesn't prevent
	// decoding whatever was already fetched last cycle.
	dec := instructions.Decode(curIFID.Word, curIFID.PC, p.Regs)

	switch {
	case curIFID.Word == instructions.HaltSentinel:
		// the sentinel carries no architectural effect of its own; the
		// pipeline controller detects it at write-back (see halting above),
		// not here, so it must not be treated as a reserved instruction.
		nextIDEX = stageLatch{Word: curIFID.Word}

	case dec.Tag == instructions.TagIllegal:
		flush = true
		logger.Log("cpu", errors.Errorf(errors.ReservedInstruction, curIFID.Word, curIFID.PC))

	case dec.Operator == instructions.JR:
		if branchOperandUnavailable([]uint8{dec.SourceRS()}, curIDEX, curEXMEM) {
			decodeStall = true
		} else {
			rs := forward(dec.RSValue, dec.SourceRS(), curEXMEM)
			nextPC = rs
			pcOverridden = true
			nextIDEX = stageLatch{Word: curIFID.Word, Inst: dec}
		}

	case dec.Tag == instructions.TagI && dec.Category == instructions.Flow:
		sources := branchSources(dec)
		if branchOperandUnavailable(sources, curIDEX, curEXMEM) {
			decodeStall = true
		} else {
			dec.RSValue = forward(dec.RSValue, dec.SourceRS(), curEXMEM)
			dec.RTValue = forward(dec.RTValue, dec.SourceRT(), curEXMEM)
			if dec.BranchTaken() {
				nextPC = dec.BranchTarget()
				pcOverridden = true
			}
			nextIDEX = stageLatch{Word: curIFID.Word, Inst: dec}
		}

	case dec.Tag == instructions.TagJ:
		nextPC = dec.JumpTarget()
		pcOverridden = true
		nextIDEX = stageLatch{Word: curIFID.Word, Inst: dec}
		if dec.Operator == instructions.JAL {
			nextIDEX.Dest = 31
			nextIDEX.Pending = execution.Some(dec.FetchPC + 8)
		}

	default:
		sources := []uint8{dec.SourceRS(), dec.SourceRT()}
		if loadUseHazard(sources, curIDEX) {
			decodeStall = true
		} else {
			nextIDEX = stageLatch{Word: curIFID.Word, Inst: dec, Dest: decodeDestination(dec)}
		}
	}

	// stage 4: execute, against the latch as it stood at the start of the
	// cycle, with MEM/WB forwarding applied first and EX/MEM forwarding
	// applied second so the newer producer wins when both match.
	execLatch := curIDEX
	applyOperandForwarding(&execLatch, curEXMEM, curMEMWB)

	var pending execution.OptionalWord
	overflow := false
	if execLatch.Inst.Category == instructions.Compute {
		pending, overflow = execLatch.Inst.Execute()
	} else {
		pending = execLatch.Pending
	}

	nextEXMEM = stageLatch{Word: execLatch.Word, Inst: execLatch.Inst, Dest: execLatch.Dest, Pending: pending}

	if overflow {
		flush = true
		logger.Log("cpu", errors.Errorf(errors.ArithmeticOverflow, execLatch.Inst.Operator, curIFID.PC))
	}

	// stage 5: memory, against the latch as it stood at the start of the
	// cycle, with MEM/WB forwarding restricted to the store-value path.
	memIn := curEXMEM
	applyStoreForwarding(&memIn, curMEMWB)

	var memPending execution.OptionalWord
	switch {
	case memIn.Inst.IsMemRead():
		addr := memIn.Inst.EffectiveAddress()
		val, extra, err := p.dcache.Read(addr, uint32(memIn.Inst.MemSize()), p.cycle)
		if err != nil {
			return false, err
		}
		if extra > 0 {
			memoryStall = true
			p.memStallCycles = maxu32(p.memStallCycles, extra)
			logger.Logf("cpu", "memory stall reading %#08x (%d cycles)", addr, extra)
		} else {
			memPending = execution.Some(val)
		}

	case memIn.Inst.IsMemWrite():
		addr := memIn.Inst.EffectiveAddress()
		extra, err := p.dcache.Write(addr, memIn.Inst.RTValue, uint32(memIn.Inst.MemSize()), p.cycle)
		if err != nil {
			return false, err
		}
		if extra > 0 {
			memoryStall = true
			p.memStallCycles = maxu32(p.memStallCycles, extra)
			logger.Logf("cpu", "memory stall writing %#08x (%d cycles)", addr, extra)
		}

	default:
		memPending = memIn.Pending
	}

	nextMEMWB = stageLatch{Word: memIn.Word, Inst: memIn.Inst, Dest: memIn.Dest, Pending: memPending}

	// stall resolution, highest-priority stall first
	switch {
	case memoryStall:
		nextIFID = curIFID
		nextIDEX = curIDEX
		nextEXMEM = curEXMEM
		nextMEMWB = stageLatch{}
		nextPC = p.PC

	case decodeStall:
		nextIFID = curIFID
		nextIDEX = stageLatch{}
		nextPC = p.PC

	case fetchStall:
		if pcOverridden {
			// a branch or jump in decode waits there until its delay slot
			// has been fetched, so the redirect never skips the delay slot.
			nextIFID = curIFID
			nextIDEX = stageLatch{}
		} else {
			nextIFID = ifidLatch{}
		}
		nextPC = p.PC
	}

	// exception flush takes priority over any stall-driven hold: it
	// squashes whatever fetch and decode produced this cycle and redirects
	// to the exception vector, regardless of what stage raised it.
	if flush {
		nextPC = instructions.ExceptionVector
		nextIFID = ifidLatch{}
		nextIDEX = stageLatch{}
		p.haltSeen = false
	}

	p.lastState = execution.PipelineState{
		Cycle: p.cycle,
		IF:    nextIFID.Word,
		ID:    curIFID.Word,
		EX:    curIDEX.Word,
		MEM:   curEXMEM.Word,
		WB:    curMEMWB.Word,
	}

	p.ifid = nextIFID
	p.idex = nextIDEX
	p.exmem = nextEXMEM
	p.memwb = nextMEMWB
	p.PC = nextPC
	p.cycle++

	if halting {
		p.halted = true
	}

	return p.halted, nil
}
