package instructions

import (
	"github.com/archtrace/mipscore/hardware/cpu/registers"
)

// Tag discriminates the four instruction-encoding variants of spec.md §3.
type Tag int

const (
	TagR Tag = iota
	TagI
	TagJ
	TagIllegal
)

func (t Tag) String() string {
	switch t {
	case TagR:
		return "R"
	case TagI:
		return "I"
	case TagJ:
		return "J"
	default:
		return "illegal"
	}
}

// Instruction is the tagged decode record described by spec.md §3. Every
// variant answers SourceRS/SourceRT uniformly (returning register 0 - which
// never participates in hazards - for fields a variant doesn't have), so
// hazard detection never needs to switch on Tag itself.
type Instruction struct {
	Tag      Tag
	Operator Operator
	Category Category

	Opcode Opcode
	Funct  Funct

	// register fields, present for R and (partially) I forms
	rs, rt, rd uint8
	Shamt      uint8

	// operand snapshots, taken at decode and mutated in place by forwarding
	// (see forwarding.go in the cpu package)
	RSValue, RTValue uint32

	// I-form immediate and its projections
	Imm16   uint16
	SignExt uint32
	ZeroExt uint32

	// J-form fields
	Target  uint32 // 26-bit field
	FetchPC uint32 // PC at which this instruction was fetched (set for I and J forms only)
}

// SourceRS returns the rs register index this instruction reads, or 0 if it
// has none. Register 0 never participates in hazard detection, so this is
// safe for variants (J, Illegal) that have no rs field.
func (in Instruction) SourceRS() uint8 {
	switch in.Tag {
	case TagR, TagI:
		return in.rs
	default:
		return 0
	}
}

// SourceRT returns the rt register index this instruction reads (as a
// source, not as a destination), or 0 if it has none.
func (in Instruction) SourceRT() uint8 {
	switch in.Tag {
	case TagR, TagI:
		return in.rt
	default:
		return 0
	}
}

// DestinationR returns rd for R-type compute instructions.
func (in Instruction) DestinationR() uint8 { return in.rd }

// DestinationT returns rt for I-type instructions that write rt.
func (in Instruction) DestinationT() uint8 { return in.rt }

// IsMemRead reports whether this is a load (lw/lhu/lbu), the instruction
// category the load-use hazard rule keys off.
func (in Instruction) IsMemRead() bool {
	return in.Tag == TagI && in.Category == Load
}

// IsMemWrite reports whether this is a store (sw/sh/sb).
func (in Instruction) IsMemWrite() bool {
	return in.Tag == TagI && in.Category == Store
}

// MemSize returns the access width in bytes for loads and stores.
func (in Instruction) MemSize() int {
	switch in.Operator {
	case LW, SW:
		return 4
	case LHU, SH:
		return 2
	case LBU, SB:
		return 1
	default:
		return 0
	}
}

// getOpcode extracts the high 6 bits of a 32-bit instruction word.
func getOpcode(word uint32) Opcode {
	return Opcode((word >> 26) & 0x3f)
}

// Decode decodes a 32-bit instruction word fetched from pc into a tagged
// Instruction, taking register snapshots from regs for R/I forms. The halt
// sentinel decodes as TagIllegal but carries no practical meaning: the
// pipeline controller never lets it reach execute (see cpu.go).
func Decode(word uint32, pc uint32, regs *registers.File) Instruction {
	op := getOpcode(word)

	switch {
	case op == OpZero:
		return decodeR(word, regs)
	case op == OpJ || op == OpJAL:
		return decodeJ(word, pc, op)
	default:
		if operator, ok := iTypeOperators[op]; ok {
			return decodeI(word, pc, op, operator, regs)
		}
		return Instruction{Tag: TagIllegal, Category: Illegal}
	}
}

func decodeR(word uint32, regs *registers.File) Instruction {
	rs := uint8((word >> 21) & 0x1f)
	rt := uint8((word >> 16) & 0x1f)
	rd := uint8((word >> 11) & 0x1f)
	shamt := uint8((word >> 6) & 0x1f)
	funct := Funct(word & 0x3f)

	operator, ok := rTypeOperators[funct]
	if !ok {
		return Instruction{Tag: TagIllegal, Category: Illegal, Funct: funct}
	}

	return Instruction{
		Tag:      TagR,
		Operator: operator,
		Category: Compute,
		Opcode:   OpZero,
		Funct:    funct,
		rs:       rs,
		rt:       rt,
		rd:       rd,
		Shamt:    shamt,
		RSValue:  regs.Get(rs),
		RTValue:  regs.Get(rt),
	}
}

func decodeI(word uint32, pc uint32, op Opcode, operator Operator, regs *registers.File) Instruction {
	rs := uint8((word >> 21) & 0x1f)
	rt := uint8((word >> 16) & 0x1f)
	imm := uint16(word & 0xffff)

	return Instruction{
		Tag:      TagI,
		Operator: operator,
		Category: iTypeCategory(operator),
		Opcode:   op,
		rs:       rs,
		rt:       rt,
		Imm16:    imm,
		SignExt:  uint32(int32(int16(imm))),
		ZeroExt:  uint32(imm),
		RSValue:  regs.Get(rs),
		RTValue:  regs.Get(rt),
		FetchPC:  pc,
	}
}

func decodeJ(word uint32, pc uint32, op Opcode) Instruction {
	return Instruction{
		Tag:      TagJ,
		Operator: jTypeOperators[op],
		Category: Flow,
		Opcode:   op,
		Target:   word & 0x3ffffff,
		FetchPC:  pc,
	}
}

// IsFuncCodeValid reports whether funct names a recognised R-type operation.
// decodeR already performs this lookup itself and tags the result TagIllegal
// when it fails, so the pipeline controller never calls IsFuncCodeValid
// directly; it exists as a standalone query against the function-code table
// for callers (tests, tooling) that want the answer without decoding a full
// instruction word.
func IsFuncCodeValid(funct Funct) bool {
	_, ok := rTypeOperators[funct]
	return ok
}
