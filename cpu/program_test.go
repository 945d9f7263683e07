package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramWords(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, []string{
		"        ORG     $100",
		"        MOVE.L  #1, D0",
		"        SIMHALT",
	})

	image := prog.Image()
	expected := [][2]uint32{
		{0x100, 0x203c},
		{0x102, 0x0000},
		{0x104, 0x0001},
		{0x106, 0x4e72},
	}
	assert.Equal(expected, image)

	// early termination of the iterator
	var first uint32
	for address := range prog.Words() {
		first = address
		break
	}
	assert.Equal(uint32(0x100), first)
}

func TestProgramDebug(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, []string{
		"        MOVE.L  #1, D0", // 0-5
		"        NOP",            // 6
		"        SIMHALT",        // 8
	})

	// every byte of a multi-word instruction maps to its statement
	for pc := uint32(0); pc < 6; pc += 2 {
		stmt := prog.Debug(pc)
		if assert.NotNil(stmt) {
			assert.Equal(1, stmt.LineNo)
		}
	}

	stmt := prog.Debug(6)
	if assert.NotNil(stmt) {
		assert.Equal(2, stmt.LineNo)
		assert.Equal("NOP", stmt.Mnemonic)
	}

	assert.Nil(prog.Debug(100))
}

func TestProgramDebugReservedSpace(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, []string{
		"BUF:    DS.L    2",
		"        NOP",
	})

	// DS space belongs to its statement even though it emits no words
	stmt := prog.Debug(4)
	if assert.NotNil(stmt) {
		assert.Equal("DS", stmt.Mnemonic)
	}

	stmt = prog.Debug(8)
	if assert.NotNil(stmt) {
		assert.Equal("NOP", stmt.Mnemonic)
	}
}
