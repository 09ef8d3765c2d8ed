package instructions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archtrace/mipscore/hardware/cpu/instructions"
	"github.com/archtrace/mipscore/hardware/cpu/registers"
)

func encodeR(opcode, rs, rt, rd, shamt, funct uint32) uint32 {
	return (opcode << 26) | (rs << 21) | (rt << 16) | (rd << 11) | (shamt << 6) | funct
}

func encodeI(opcode, rs, rt uint32, imm uint16) uint32 {
	return (opcode << 26) | (rs << 21) | (rt << 16) | uint32(imm)
}

func encodeJ(opcode, target uint32) uint32 {
	return (opcode << 26) | (target & 0x3ffffff)
}

func TestDecodeRType(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 10)
	regs.Set(9, 20)

	word := encodeR(0, 8, 9, 10, 0, 0x20) // add $t2, $t0, $t1
	in := instructions.Decode(word, 0x1000, regs)

	assert.Equal(t, instructions.TagR, in.Tag)
	assert.Equal(t, instructions.ADD, in.Operator)
	assert.Equal(t, instructions.Compute, in.Category)
	assert.EqualValues(t, 8, in.SourceRS())
	assert.EqualValues(t, 9, in.SourceRT())
	assert.EqualValues(t, 10, in.DestinationR())
	assert.EqualValues(t, 10, in.RSValue)
	assert.EqualValues(t, 20, in.RTValue)
}

func TestDecodeRTypeIllegalFunct(t *testing.T) {
	regs := registers.NewFile()
	word := encodeR(0, 1, 2, 3, 0, 0x3f) // unrecognised funct
	in := instructions.Decode(word, 0, regs)

	assert.Equal(t, instructions.TagIllegal, in.Tag)
	assert.Equal(t, instructions.Illegal, in.Category)
}

func TestDecodeIllegalOpcode(t *testing.T) {
	regs := registers.NewFile()
	word := encodeI(0x3f, 0, 0, 0)
	in := instructions.Decode(word, 0, regs)

	assert.Equal(t, instructions.TagIllegal, in.Tag)
}

func TestDecodeITypeLoad(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 0x1000)

	word := encodeI(0x23, 8, 9, 4) // lw $t1, 4($t0)
	in := instructions.Decode(word, 0, regs)

	assert.Equal(t, instructions.TagI, in.Tag)
	assert.Equal(t, instructions.LW, in.Operator)
	assert.Equal(t, instructions.Load, in.Category)
	assert.True(t, in.IsMemRead())
	assert.False(t, in.IsMemWrite())
	assert.Equal(t, 4, in.MemSize())
	assert.EqualValues(t, 9, in.DestinationT())
	assert.EqualValues(t, 0x1004, in.EffectiveAddress())
}

func TestDecodeITypeNegativeImmediateSignExtends(t *testing.T) {
	regs := registers.NewFile()
	word := encodeI(0x08, 0, 1, 0xffff) // addi $at, $zero, -1
	in := instructions.Decode(word, 0, regs)

	assert.EqualValues(t, 0xffffffff, in.SignExt)
	assert.EqualValues(t, 0x0000ffff, in.ZeroExt)
}

func TestDecodeBranch(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 5)
	regs.Set(9, 5)

	word := encodeI(0x04, 8, 9, 3) // beq $t0, $t1, 3
	in := instructions.Decode(word, 0x2000, regs)

	assert.Equal(t, instructions.Flow, in.Category)
	assert.True(t, in.BranchTaken())
	assert.EqualValues(t, 0x2000+4+(3<<2), in.BranchTarget())
}

func TestDecodeJumpAndLink(t *testing.T) {
	word := encodeJ(0x03, 0x123456)
	in := instructions.Decode(word, 0x4000, nil)

	assert.Equal(t, instructions.TagJ, in.Tag)
	assert.Equal(t, instructions.JAL, in.Operator)
	assert.EqualValues(t, (0x4004&0xF0000000)|(0x123456<<2), in.JumpTarget())
}

func TestIsFuncCodeValid(t *testing.T) {
	assert.True(t, instructions.IsFuncCodeValid(instructions.FnADD))
	assert.False(t, instructions.IsFuncCodeValid(0x3f))
}
