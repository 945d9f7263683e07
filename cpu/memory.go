package cpu

import (
	"errors"
)

const (
	MEMORY_SIZE = 16 * 1024 * 1024 // 24-bit address space
)

// Memory models the byte-addressable address space. Multi-byte accesses
// are big-endian and may be unaligned; every access is bounds-checked.
type Memory struct {
	Data []byte
}

// NewMemory creates a zeroed full-size address space.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		Data: make([]byte, MEMORY_SIZE),
	}

	return
}

// Reset zeroes the entire address space.
func (mem *Memory) Reset() {
	clear(mem.Data)
}

// check validates an access of 'width' bytes starting at address.
func (mem *Memory) check(address uint32, width uint32) (err error) {
	if uint64(address)+uint64(width) > uint64(len(mem.Data)) {
		err = errors.Join(ErrMemoryBounds, ErrAddress(address))
	}

	return
}

// ReadByte reads a single byte.
func (mem *Memory) ReadByte(address uint32) (value uint8, err error) {
	err = mem.check(address, 1)
	if err != nil {
		return
	}

	value = mem.Data[address]
	return
}

// WriteByte writes a single byte.
func (mem *Memory) WriteByte(address uint32, value uint8) (err error) {
	err = mem.check(address, 1)
	if err != nil {
		return
	}

	mem.Data[address] = value
	return
}

// ReadWord reads a 16-bit word, most significant byte first.
func (mem *Memory) ReadWord(address uint32) (value uint16, err error) {
	err = mem.check(address, 2)
	if err != nil {
		return
	}

	value = (uint16(mem.Data[address]) << 8) | uint16(mem.Data[address+1])
	return
}

// WriteWord writes a 16-bit word, most significant byte first.
func (mem *Memory) WriteWord(address uint32, value uint16) (err error) {
	err = mem.check(address, 2)
	if err != nil {
		return
	}

	mem.Data[address] = uint8(value >> 8)
	mem.Data[address+1] = uint8(value)
	return
}

// ReadLong reads a 32-bit long word, most significant byte first.
func (mem *Memory) ReadLong(address uint32) (value uint32, err error) {
	err = mem.check(address, 4)
	if err != nil {
		return
	}

	value = (uint32(mem.Data[address]) << 24) |
		(uint32(mem.Data[address+1]) << 16) |
		(uint32(mem.Data[address+2]) << 8) |
		uint32(mem.Data[address+3])
	return
}

// WriteLong writes a 32-bit long word, most significant byte first.
func (mem *Memory) WriteLong(address uint32, value uint32) (err error) {
	err = mem.check(address, 4)
	if err != nil {
		return
	}

	mem.Data[address] = uint8(value >> 24)
	mem.Data[address+1] = uint8(value >> 16)
	mem.Data[address+2] = uint8(value >> 8)
	mem.Data[address+3] = uint8(value)
	return
}
