package store

import (
	"github.com/archtrace/mipscore/errors"
)

// MainMemory is a flat 32-bit address space backed by a Go byte slice. There
// is no notion of unmapped regions: every address in [0, len(bytes)) is
// readable and writable; addresses beyond that range return a curated
// error, which is the only error condition this package produces.
type MainMemory struct {
	bytes []byte
}

// New creates a MainMemory of the given size in bytes, initialised to zero.
func New(size uint32) *MainMemory {
	return &MainMemory{bytes: make([]byte, size)}
}

// Read implements bus.MemoryBus.
func (m *MainMemory) Read(address uint32) (uint8, error) {
	if int(address) >= len(m.bytes) {
		return 0, errors.Errorf(errors.UnreadableAddress, address)
	}
	return m.bytes[address], nil
}

// Write implements bus.MemoryBus.
func (m *MainMemory) Write(address uint32, data uint8) error {
	if int(address) >= len(m.bytes) {
		return errors.Errorf(errors.UnwritableAddress, address)
	}
	m.bytes[address] = data
	return nil
}

// Peek implements bus.DebugBus. Identical to Read but named separately so
// that callers which must not be confused with ordinary architectural
// accesses (the dumper, tests) are explicit about their intent.
func (m *MainMemory) Peek(address uint32) (uint8, error) {
	if int(address) >= len(m.bytes) {
		return 0, errors.Errorf(errors.UnpeekableAddress, address)
	}
	return m.bytes[address], nil
}

// Poke implements bus.DebugBus.
func (m *MainMemory) Poke(address uint32, value uint8) error {
	if int(address) >= len(m.bytes) {
		return errors.Errorf(errors.UnpokeableAddress, address)
	}
	m.bytes[address] = value
	return nil
}

// Size returns the total addressable size in bytes.
func (m *MainMemory) Size() uint32 {
	return uint32(len(m.bytes))
}
