package instructions

import "github.com/archtrace/mipscore/hardware/cpu/execution"

// sign returns the sign bit of a 32-bit two's complement value.
func sign(v uint32) uint32 {
	return (v >> 31) & 1
}

// addSub computes s1+s2 (isAdd) or s1-s2 (!isAdd) as 32-bit two's
// complement, reporting overflow when checkOverflow requests it. This is
// the sole arithmetic primitive behind add/addu/addi/addiu/sub/subu,
// matching spec.md §4.2's overflow rule: for add, overflow iff both
// operands share a sign and the result's sign differs from them; for sub,
// overflow iff the operands' signs differ and the result's sign differs
// from the minuend's.
func addSub(s1, s2 uint32, isAdd, checkOverflow bool) (result uint32, overflow bool) {
	if isAdd {
		result = s1 + s2
	} else {
		result = s1 - s2
	}

	if !checkOverflow {
		return result, false
	}

	if isAdd {
		overflow = sign(s1) == sign(s2) && sign(result) != sign(s1)
	} else {
		overflow = sign(s1) != sign(s2) && sign(result) != sign(s1)
	}
	return result, overflow
}

// Execute computes the architectural effect of an already-decoded, already
// forwarded Instruction during the execute stage, per spec.md §4.2. Loads
// and stores produce no value here (their effect happens in the memory
// stage); branches and jumps are resolved in decode and likewise produce
// nothing here. The returned OptionalWord is empty wherever the
// instruction writes no register, or where overflow is reported - on
// overflow the pipeline controller raises the arithmetic-overflow
// exception and the result must be discarded regardless of what value is
// returned.
func (in Instruction) Execute() (result execution.OptionalWord, overflow bool) {
	switch in.Tag {
	case TagR:
		return in.executeR()
	case TagI:
		return in.executeI()
	default:
		return execution.None, false
	}
}

func (in Instruction) executeR() (execution.OptionalWord, bool) {
	switch in.Operator {
	case ADD:
		v, ov := addSub(in.RSValue, in.RTValue, true, true)
		if ov {
			return execution.None, true
		}
		return execution.Some(v), false
	case ADDU:
		v, _ := addSub(in.RSValue, in.RTValue, true, false)
		return execution.Some(v), false
	case SUB:
		v, ov := addSub(in.RSValue, in.RTValue, false, true)
		if ov {
			return execution.None, true
		}
		return execution.Some(v), false
	case SUBU:
		v, _ := addSub(in.RSValue, in.RTValue, false, false)
		return execution.Some(v), false
	case AND:
		return execution.Some(in.RSValue & in.RTValue), false
	case OR:
		return execution.Some(in.RSValue | in.RTValue), false
	case NOR:
		return execution.Some(^(in.RSValue | in.RTValue)), false
	case SLT:
		if int32(in.RSValue) < int32(in.RTValue) {
			return execution.Some(1), false
		}
		return execution.Some(0), false
	case SLTU:
		if in.RSValue < in.RTValue {
			return execution.Some(1), false
		}
		return execution.Some(0), false
	case SLL:
		return execution.Some(in.RTValue << in.Shamt), false
	case SRL:
		return execution.Some(in.RTValue >> in.Shamt), false
	case JR:
		// resolved in decode; no execute-stage effect
		return execution.None, false
	default:
		return execution.None, false
	}
}

func (in Instruction) executeI() (execution.OptionalWord, bool) {
	switch in.Operator {
	case ADDI:
		v, ov := addSub(in.RSValue, in.SignExt, true, true)
		if ov {
			return execution.None, true
		}
		return execution.Some(v), false
	case ADDIU:
		v, _ := addSub(in.RSValue, in.SignExt, true, false)
		return execution.Some(v), false
	case ANDI:
		return execution.Some(in.RSValue & in.ZeroExt), false
	case ORI:
		return execution.Some(in.RSValue | in.ZeroExt), false
	case SLTI:
		if int32(in.RSValue) < int32(in.SignExt) {
			return execution.Some(1), false
		}
		return execution.Some(0), false
	case SLTIU:
		if in.RSValue < in.SignExt {
			return execution.Some(1), false
		}
		return execution.Some(0), false
	case LUI:
		return execution.Some(uint32(in.Imm16) << 16), false
	case LW, LHU, LBU, SW, SH, SB:
		// happens in the memory stage
		return execution.None, false
	default:
		return execution.None, false
	}
}

// EffectiveAddress computes rs + sign-extended immediate, the address used
// by every load and store (spec.md §4.2).
func (in Instruction) EffectiveAddress() uint32 {
	return in.RSValue + in.SignExt
}

// BranchTaken evaluates a branch's condition against its (possibly
// forwarded) operand values.
func (in Instruction) BranchTaken() bool {
	switch in.Operator {
	case BEQ:
		return in.RSValue == in.RTValue
	case BNE:
		return in.RSValue != in.RTValue
	case BLEZ:
		return int32(in.RSValue) <= 0
	case BGTZ:
		return int32(in.RSValue) > 0
	default:
		return false
	}
}

// BranchTarget computes (branch PC + 4) + (sign-extended immediate << 2).
func (in Instruction) BranchTarget() uint32 {
	return in.FetchPC + 4 + uint32(int32(in.SignExt)<<2)
}

// JumpTarget computes the j/jal target: ((PC of delay slot) & 0xF0000000) |
// (addr << 2).
func (in Instruction) JumpTarget() uint32 {
	return ((in.FetchPC + 4) & 0xF0000000) | (in.Target << 2)
}
