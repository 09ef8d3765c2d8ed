package store_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archtrace/mipscore/hardware/cpu/registers"
	"github.com/archtrace/mipscore/hardware/memory/store"
)

func TestReadWriteRoundTrip(t *testing.T) {
	mem := store.New(64)

	require.NoError(t, mem.Write(10, 0xab))
	v, err := mem.Read(10)
	require.NoError(t, err)
	assert.EqualValues(t, 0xab, v)
}

func TestOutOfRangeIsError(t *testing.T) {
	mem := store.New(4)

	_, err := mem.Read(4)
	assert.Error(t, err)

	err = mem.Write(100, 1)
	assert.Error(t, err)
}

func TestPeekPokeBypassSameBacking(t *testing.T) {
	mem := store.New(4)

	require.NoError(t, mem.Poke(0, 0x42))
	v, err := mem.Read(0)
	require.NoError(t, err)
	assert.EqualValues(t, 0x42, v)
}

func TestDumpRegisters(t *testing.T) {
	regs := registers.NewFile()
	regs.Set(8, 5)

	var buf bytes.Buffer
	require.NoError(t, store.DumpRegisters(&buf, regs))
	assert.Contains(t, buf.String(), "$t0")
	assert.Contains(t, buf.String(), "00000005")
}

func TestDumpMemory(t *testing.T) {
	mem := store.New(32)
	require.NoError(t, mem.Poke(0, 0xde))
	require.NoError(t, mem.Poke(1, 0xad))

	var buf bytes.Buffer
	require.NoError(t, store.DumpMemory(&buf, mem, 0, 16))
	assert.Contains(t, buf.String(), "de ad")
}
