package registers

// abiNames is the conventional MIPS32 ABI naming of the 32 general purpose
// registers, used only for diagnostics and disassembly - architectural code
// addresses registers numerically.
var abiNames = [NumRegisters]string{
	"$zero", "$at",
	"$v0", "$v1",
	"$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9",
	"$k0", "$k1",
	"$gp", "$sp", "$fp", "$ra",
}

// ABIName returns the conventional ABI name for register index i.
func ABIName(i int) string {
	if i < 0 || i >= NumRegisters {
		return ""
	}
	return abiNames[i]
}

// ABIView groups the flat register file into the named fields a MIPS
// assembly programmer expects to see, for human-readable dumps. It mirrors
// the grouped RegisterInfo layout of the original simulator this package
// was modelled on, but is a read-only convenience view - architectural
// state lives solely in File.
type ABIView struct {
	At                 uint32
	V                  [2]uint32
	A                  [4]uint32
	T                  [10]uint32
	S                  [8]uint32
	K                  [2]uint32
	GP, SP, FP, RA     uint32
}

// View builds an ABIView snapshot of the register file.
func (f *File) View() ABIView {
	var v ABIView
	v.At = f.Get(1)
	for i := 0; i < 2; i++ {
		v.V[i] = f.Get(uint8(2 + i))
	}
	for i := 0; i < 4; i++ {
		v.A[i] = f.Get(uint8(4 + i))
	}
	for i := 0; i < 8; i++ {
		v.T[i] = f.Get(uint8(8 + i))
	}
	v.T[8] = f.Get(24)
	v.T[9] = f.Get(25)
	for i := 0; i < 8; i++ {
		v.S[i] = f.Get(uint8(16 + i))
	}
	v.K[0] = f.Get(26)
	v.K[1] = f.Get(27)
	v.GP = f.Get(28)
	v.SP = f.Get(29)
	v.FP = f.Get(30)
	v.RA = f.Get(31)
	return v
}
