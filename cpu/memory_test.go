package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	assert.Equal(MEMORY_SIZE, len(mem.Data))

	err := mem.WriteLong(0x1000, 0x12345678)
	assert.NoError(err)

	// big-endian byte order
	b, err := mem.ReadByte(0x1000)
	assert.NoError(err)
	assert.Equal(uint8(0x12), b)
	b, err = mem.ReadByte(0x1003)
	assert.NoError(err)
	assert.Equal(uint8(0x78), b)

	w, err := mem.ReadWord(0x1000)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), w)
	w, err = mem.ReadWord(0x1002)
	assert.NoError(err)
	assert.Equal(uint16(0x5678), w)

	l, err := mem.ReadLong(0x1000)
	assert.NoError(err)
	assert.Equal(uint32(0x12345678), l)

	// unaligned access
	l, err = mem.ReadLong(0x1001)
	assert.NoError(err)
	assert.Equal(uint32(0x34567800), l)

	mem.Reset()
	l, err = mem.ReadLong(0x1000)
	assert.NoError(err)
	assert.Equal(uint32(0), l)
}

func TestMemoryBounds(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	// last valid accesses of each width
	_, err := mem.ReadByte(MEMORY_SIZE - 1)
	assert.NoError(err)
	_, err = mem.ReadWord(MEMORY_SIZE - 2)
	assert.NoError(err)
	_, err = mem.ReadLong(MEMORY_SIZE - 4)
	assert.NoError(err)

	// one past the end of each width
	_, err = mem.ReadByte(MEMORY_SIZE)
	assert.ErrorIs(err, ErrMemoryBounds)
	_, err = mem.ReadWord(MEMORY_SIZE - 1)
	assert.ErrorIs(err, ErrMemoryBounds)
	_, err = mem.ReadLong(MEMORY_SIZE - 3)
	assert.ErrorIs(err, ErrMemoryBounds)

	err = mem.WriteWord(MEMORY_SIZE-1, 0xffff)
	assert.ErrorIs(err, ErrMemoryBounds)
	err = mem.WriteLong(0xffffffff, 1)
	assert.ErrorIs(err, ErrMemoryBounds)

	// a failed write leaves memory untouched
	var ea ErrAddress
	err = mem.WriteLong(MEMORY_SIZE-2, 0xdeadbeef)
	assert.True(errors.As(err, &ea))
	assert.Equal(uint32(MEMORY_SIZE-2), uint32(ea))
	b, err := mem.ReadByte(MEMORY_SIZE - 2)
	assert.NoError(err)
	assert.Equal(uint8(0), b)
}
