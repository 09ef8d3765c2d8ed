package registers

// NumRegisters is the size of the general purpose register file.
const NumRegisters = 32

// File is the architectural general purpose register file: thirty-two
// 32-bit registers indexed 0..31. Register 0 is $zero: Get always returns
// zero for it and Set silently discards any write.
type File struct {
	regs [NumRegisters]Register
}

// NewFile creates a register file with every register labelled by its ABI
// name and initialised to zero.
func NewFile() *File {
	f := &File{}
	for i := range f.regs {
		f.regs[i] = NewRegister(0, ABIName(i))
	}
	return f
}

// Get returns the current value of register i. Register 0 always reads as
// zero, regardless of what may have been written to it in the past (it is
// never actually written to, see Set).
func (f *File) Get(i uint8) uint32 {
	if i == 0 {
		return 0
	}
	return f.regs[i].Value()
}

// Set writes val to register i. Writes to register 0 are silently
// discarded, matching MIPS32 semantics.
func (f *File) Set(i uint8, val uint32) {
	if i == 0 {
		return
	}
	f.regs[i].Load(val)
}

// Register returns the Register at index i, primarily for diagnostics and
// disassembly; architectural code should use Get/Set so that register 0's
// special behaviour is never bypassed.
func (f *File) Register(i uint8) Register {
	return f.regs[i]
}
