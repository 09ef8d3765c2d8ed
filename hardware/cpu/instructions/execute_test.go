package instructions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archtrace/mipscore/hardware/cpu/instructions"
	"github.com/archtrace/mipscore/hardware/cpu/registers"
)

func TestExecuteAddOverflow(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 0x7fffffff)
	regs.Set(9, 1)

	in := instructions.Decode(encodeR(0, 8, 9, 10, 0, 0x20), 0, regs) // add
	result, overflow := in.Execute()

	assert.True(t, overflow)
	assert.False(t, result.Present)
}

func TestExecuteAdduNoOverflow(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 0x7fffffff)
	regs.Set(9, 1)

	in := instructions.Decode(encodeR(0, 8, 9, 10, 0, 0x21), 0, regs) // addu
	result, overflow := in.Execute()

	assert.False(t, overflow)
	assert.True(t, result.Present)
	assert.EqualValues(t, 0x80000000, result.Value)
}

func TestExecuteSubOverflow(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 0x80000000) // most negative
	regs.Set(9, 1)

	in := instructions.Decode(encodeR(0, 8, 9, 10, 0, 0x22), 0, regs) // sub
	_, overflow := in.Execute()

	assert.True(t, overflow)
}

func TestExecuteLogicalAndShift(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 0xff00)
	regs.Set(9, 0x0ff0)

	and := instructions.Decode(encodeR(0, 8, 9, 10, 0, 0x24), 0, regs)
	r, _ := and.Execute()
	assert.EqualValues(t, 0xff00&0x0ff0, r.Value)

	sll := instructions.Decode(encodeR(0, 0, 8, 10, 4, 0x00), 0, regs)
	r, _ = sll.Execute()
	assert.EqualValues(t, 0xff00<<4, r.Value)
}

func TestExecuteSltSigned(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 0xffffffff) // -1
	regs.Set(9, 1)

	in := instructions.Decode(encodeR(0, 8, 9, 10, 0, 0x2a), 0, regs) // slt
	r, _ := in.Execute()
	assert.EqualValues(t, 1, r.Value)
}

func TestExecuteSltuUnsigned(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 0xffffffff)
	regs.Set(9, 1)

	in := instructions.Decode(encodeR(0, 8, 9, 10, 0, 0x2b), 0, regs) // sltu
	r, _ := in.Execute()
	assert.EqualValues(t, 0, r.Value)
}

func TestExecuteLui(t *testing.T) {
	regs := registers.NewFile()
	word := encodeI(0x0f, 0, 8, 0x1234)
	in := instructions.Decode(word, 0, regs)

	r, overflow := in.Execute()
	assert.False(t, overflow)
	assert.EqualValues(t, 0x12340000, r.Value)
}

func TestExecuteLoadStoreProduceNoValue(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 0x1000)

	lw := instructions.Decode(encodeI(0x23, 8, 9, 0), 0, regs)
	r, _ := lw.Execute()
	assert.False(t, r.Present)

	sw := instructions.Decode(encodeI(0x2b, 8, 9, 0), 0, regs)
	r, _ = sw.Execute()
	assert.False(t, r.Present)
}

func TestJumpRegisterTarget(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(31, 0x400)

	in := instructions.Decode(encodeR(0, 31, 0, 0, 0, 0x08), 0, regs) // jr $ra
	assert.Equal(t, instructions.JR, in.Operator)
	assert.EqualValues(t, 0x400, in.RSValue)
}
