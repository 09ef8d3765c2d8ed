package instructions

// Opcode is the high 6 bits of a MIPS32 instruction word.
type Opcode uint8

// Recognised opcodes, per spec.md §6. OpZero marks R-type instructions,
// whose operation is further identified by a Funct value.
const (
	OpZero  Opcode = 0x00
	OpJ     Opcode = 0x02
	OpJAL   Opcode = 0x03
	OpBEQ   Opcode = 0x04
	OpBNE   Opcode = 0x05
	OpBLEZ  Opcode = 0x06
	OpBGTZ  Opcode = 0x07
	OpADDI  Opcode = 0x08
	OpADDIU Opcode = 0x09
	OpSLTI  Opcode = 0x0A
	OpSLTIU Opcode = 0x0B
	OpANDI  Opcode = 0x0C
	OpORI   Opcode = 0x0D
	OpLUI   Opcode = 0x0F
	OpLW    Opcode = 0x23
	OpLBU   Opcode = 0x24
	OpLHU   Opcode = 0x25
	OpSB    Opcode = 0x28
	OpSH    Opcode = 0x29
	OpSW    Opcode = 0x2B
)

// Funct is the low 6 bits of an R-type instruction word.
type Funct uint8

// Recognised R-type function codes, per spec.md §6.
const (
	FnSLL  Funct = 0x00
	FnSRL  Funct = 0x02
	FnJR   Funct = 0x08
	FnADD  Funct = 0x20
	FnADDU Funct = 0x21
	FnSUB  Funct = 0x22
	FnSUBU Funct = 0x23
	FnAND  Funct = 0x24
	FnOR   Funct = 0x25
	FnNOR  Funct = 0x27
	FnSLT  Funct = 0x2A
	FnSLTU Funct = 0x2B
)

// HaltSentinel is the word that signals end-of-program (spec.md §4.3, §6).
const HaltSentinel uint32 = 0xFEEDFEED

// ExceptionVector is the fixed PC redirected to on a synchronous exception
// (spec.md §3, §7).
const ExceptionVector uint32 = 0x00008000

var rTypeOperators = map[Funct]Operator{
	FnADD:  ADD,
	FnADDU: ADDU,
	FnSUB:  SUB,
	FnSUBU: SUBU,
	FnAND:  AND,
	FnOR:   OR,
	FnNOR:  NOR,
	FnSLT:  SLT,
	FnSLTU: SLTU,
	FnSLL:  SLL,
	FnSRL:  SRL,
	FnJR:   JR,
}

var iTypeOperators = map[Opcode]Operator{
	OpADDI:  ADDI,
	OpADDIU: ADDIU,
	OpANDI:  ANDI,
	OpORI:   ORI,
	OpSLTI:  SLTI,
	OpSLTIU: SLTIU,
	OpLUI:   LUI,
	OpLW:    LW,
	OpLHU:   LHU,
	OpLBU:   LBU,
	OpSW:    SW,
	OpSH:    SH,
	OpSB:    SB,
	OpBEQ:   BEQ,
	OpBNE:   BNE,
	OpBLEZ:  BLEZ,
	OpBGTZ:  BGTZ,
}

var jTypeOperators = map[Opcode]Operator{
	OpJ:   J,
	OpJAL: JAL,
}

// iTypeCategory reports the Category of a recognised I-type opcode.
func iTypeCategory(op Operator) Category {
	switch op {
	case LW, LHU, LBU:
		return Load
	case SW, SH, SB:
		return Store
	case BEQ, BNE, BLEZ, BGTZ:
		return Flow
	default:
		return Compute
	}
}
