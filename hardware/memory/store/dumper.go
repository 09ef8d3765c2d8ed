package store

import (
	"fmt"
	"io"

	"github.com/archtrace/mipscore/hardware/cpu/registers"
)

// DumpRegisters writes the 32-entry register file, one register per line, to
// w. Format matches the per-cycle pipeline trace: name then zero-padded hex.
func DumpRegisters(w io.Writer, regs *registers.File) error {
	for i := 0; i < registers.NumRegisters; i++ {
		_, err := fmt.Fprintf(w, "%-5s %08x\n", registers.ABIName(i), regs.Get(uint8(i)))
		if err != nil {
			return err
		}
	}
	return nil
}

// DumpProgramCounter writes the current program counter, formatted the same
// way as the general purpose registers, to w.
func DumpProgramCounter(w io.Writer, pc registers.ProgramCounter) error {
	_, err := fmt.Fprintf(w, "%-5s %s\n", pc.Label(), pc)
	return err
}

// DumpMemory writes a window of main memory [start, start+length) to w, 16
// bytes per line, each line prefixed by its address.
func DumpMemory(w io.Writer, mem *MainMemory, start, length uint32) error {
	for addr := start; addr < start+length; addr += 16 {
		_, err := fmt.Fprintf(w, "%08x:", addr)
		if err != nil {
			return err
		}
		for col := uint32(0); col < 16 && addr+col < start+length; col++ {
			b, err := mem.Peek(addr + col)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, " %02x", b)
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintln(w)
		if err != nil {
			return err
		}
	}
	return nil
}
