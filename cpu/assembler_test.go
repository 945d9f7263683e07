package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doAssemble(t *testing.T, program []string) *Program {
	t.Helper()
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	return prog
}

// wordsAt flattens the program image into a single word list, checking
// the addresses are contiguous from the given origin.
func wordsAt(t *testing.T, prog *Program, origin uint32) (words []uint16) {
	assert := assert.New(t)

	next := origin
	for address, word := range prog.Words() {
		assert.Equal(next, address)
		next += 2
		words = append(words, word)
	}

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Assemble(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))
	assert.Equal(uint32(0), prog.Entry)
}

func TestAssemblerEncodings(t *testing.T) {
	assert := assert.New(t)

	// one instruction per case; all at origin 0
	cases := []struct {
		line  string
		words []uint16
	}{
		{"MOVEQ #42, D0", []uint16{0x702a}},
		{"MOVEQ #-1, D7", []uint16{0x7eff}},
		{"MOVE D0, D1", []uint16{0x3200}},
		{"MOVE.L #1, D0", []uint16{0x203c, 0x0000, 0x0001}},
		{"MOVE.W #1, D0", []uint16{0x303c, 0x0001}},
		{"MOVE.L (A0), D2", []uint16{0x2410}},
		{"MOVE.L D3, (A1)", []uint16{0x2283}},
		{"MOVEA.L #$1000, A0", []uint16{0x207c, 0x0000, 0x1000}},
		{"ADD.L D1, D0", []uint16{0xd081}},
		{"ADD.L #2, D0", []uint16{0xd0bc, 0x0000, 0x0002}},
		{"SUB.L #1, D0", []uint16{0x90bc, 0x0000, 0x0001}},
		{"CMP.L D2, D1", []uint16{0xb282}},
		{"MULS #2, D1", []uint16{0xc3fc, 0x0002}},
		{"MULS D0, D1", []uint16{0xc3c0}},
		{"TST.L D0", []uint16{0x4a80}},
		{"ADDQ.L #1, D0", []uint16{0x5280}},
		{"SUBQ.L #1, D1", []uint16{0x5381}},
		{"SUBQ.L #8, D0", []uint16{0x5180}},
		{"ASL.L #1, D1", []uint16{0xe381}},
		{"BRA +2", []uint16{0x6002}},
		{"BNE -2", []uint16{0x66fe}},
		{"TRAP #15", []uint16{0x4e4f}},
		{"NOP", []uint16{0x4e71}},
		{"RTS", []uint16{0x4e75}},
		{"SIMHALT", []uint16{0x4e72}},
	}

	for _, c := range cases {
		prog := doAssemble(t, []string{c.line})
		assert.Equal(c.words, wordsAt(t, prog, 0), c.line)
	}
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, []string{
		"LOOP:   SUBQ.L  #1, D0",
		"        BNE     LOOP",
		"        BRA     DONE",
		"DONE    TRAP    #15",
	})

	assert.Equal(uint32(0), prog.Symbols["LOOP"])
	assert.Equal(uint32(6), prog.Symbols["DONE"])

	// BNE at 2: disp = 0 - 4; BRA at 4: disp = 6 - 6
	expected := []uint16{0x5380, 0x66fc, 0x6000, 0x4e4f}
	assert.Equal(expected, wordsAt(t, prog, 0))
}

func TestAssemblerAbsolute(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, []string{
		"        ORG     $100",
		"RESULT: DS.L    1",
		"START:  MOVE.L  D0, RESULT",
		"        MOVE.L  RESULT, D1",
		"        JMP     START",
	})

	assert.Equal(uint32(0x100), prog.Symbols["RESULT"])
	assert.Equal(uint32(0x104), prog.Symbols["START"])
	assert.Equal(uint32(0x104), prog.Entry)

	// DS emits nothing; words start at START
	expected := []uint16{
		0x21c0, 0x0100, // move.l d0, (RESULT).w
		0x2238, 0x0100, // move.l (RESULT).w, d1
		0x4ef8, 0x0104, // jmp (START).w
	}
	assert.Equal(expected, wordsAt(t, prog, 0x104))
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	prog := doAssemble(t, []string{
		"        ORG     $200",
		"TBL:    DC.L    1, $FFFF",
		"W:      DC.W    42",
		"PTR:    DC.W    TBL",
		"        NOP",
		"        END",
		"        MOVEQ   #1, D0  ; never assembled",
	})

	assert.Equal(uint32(0x200), prog.Symbols["TBL"])
	assert.Equal(uint32(0x208), prog.Symbols["W"])
	assert.Equal(uint32(0x20a), prog.Symbols["PTR"])

	expected := []uint16{
		0x0000, 0x0001,
		0x0000, 0xffff,
		0x002a,
		0x0200,
		0x4e71,
	}
	assert.Equal(expected, wordsAt(t, prog, 0x200))

	// the only instruction is the NOP after the data
	assert.Equal(uint32(0x20c), prog.Entry)
}

func TestAssemblerEquates(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "$100")

	prog, err := asm.Assemble(strings.NewReader(strings.Join([]string{
		"TWO     EQU     2",
		"        ORG     BASE",
		"        MOVEQ   #TWO, D0",
		"        MOVEQ   #$(TWO * 4), D1",
	}, "\n")))
	assert.NoError(err)

	assert.Equal("2", asm.Equate["TWO"])
	assert.Equal("$100", asm.Equate["BASE"])

	expected := []uint16{0x7002, 0x7208}
	assert.Equal(expected, wordsAt(t, prog, 0x100))
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		name     string
		program  []string
		sentinel error
	}{
		{"unknown mnemonic", []string{" FROB D0"}, ErrMnemonicUnknown},
		{"unknown directive", []string{" .align 4"}, ErrDirectiveUnknown},
		{"duplicate label", []string{"X: NOP", "X: NOP"}, ErrLabelDuplicate},
		{"duplicate equate", []string{"K EQU 1", "K EQU 2"}, ErrEquateDuplicate},
		{"byte data", []string{" DC.B 1"}, ErrSizeInvalid},
		{"add word size", []string{" ADD.W D1, D0"}, ErrSizeInvalid},
		{"move byte size", []string{" MOVE.B D1, D0"}, ErrSizeInvalid},
		{"malformed operand", []string{" MOVE.L 12$34, D0"}, ErrOperandMalformed},
		{"immediate destination", []string{" MOVE.L D0, #1"}, ErrOperandMalformed},
		{"operand count", []string{" ADD.L D0"}, ErrOperandCount},
		{"moveq range", []string{" MOVEQ #128, D0"}, ErrOperandRange},
		{"quick range", []string{" ADDQ.L #9, D0"}, ErrOperandRange},
		{"quick zero", []string{" SUBQ.L #0, D0"}, ErrOperandRange},
		{"trap range", []string{" TRAP #16"}, ErrOperandRange},
		{"absolute range", []string{" ORG $10000", "FAR: NOP", " MOVE.L FAR, D0"}, ErrOperandRange},
	}

	for _, c := range cases {
		asm := &Assembler{}
		prog, err := asm.Assemble(strings.NewReader(strings.Join(c.program, "\n")))
		assert.ErrorIs(err, c.sentinel, c.name)
		assert.Nil(prog, c.name)
	}
}

func TestAssemblerUndefinedLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble(strings.NewReader(strings.Join([]string{
		"        BRA     MISSING",
		"        TRAP    #15",
	}, "\n")))

	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal("MISSING", string(missing))
	assert.Nil(prog)

	// the error names the offending line
	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(1, syntax.LineNo)
}

func TestAssemblerBranchRange(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Assemble(strings.NewReader(strings.Join([]string{
		"        BRA     FAR",
		"        ORG     $200",
		"FAR:    NOP",
	}, "\n")))
	assert.ErrorIs(err, ErrOperandRange)
	assert.Nil(prog)

	// backward branches reach exactly -128
	prog = doAssemble(t, []string{
		"NEAR:   NOP",
		"        ORG     $7E",
		"        BRA     NEAR",
	})
	var branch uint16
	for address, word := range prog.Words() {
		if address == 0x7e {
			branch = word
		}
	}
	assert.Equal(uint16(0x6080), branch)

	// one byte further is out of range
	asm = &Assembler{}
	_, err = asm.Assemble(strings.NewReader(strings.Join([]string{
		"NEAR:   NOP",
		"        ORG     $80",
		"        BRA     NEAR",
	}, "\n")))
	assert.ErrorIs(err, ErrOperandRange)
}

func TestAssemblerEntry(t *testing.T) {
	assert := assert.New(t)

	// START wins over the first instruction
	prog := doAssemble(t, []string{
		"SKIP:   NOP",
		"START:  MOVEQ   #1, D0",
	})
	assert.Equal(uint32(2), prog.Entry)

	// otherwise the first instruction is the entry point
	prog = doAssemble(t, []string{
		"        ORG     $40",
		"        MOVEQ   #1, D0",
	})
	assert.Equal(uint32(0x40), prog.Entry)
}

func TestAssemblerIdempotent(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"COUNT   EQU     8",
		"START:  MOVEQ   #1, D0",
		"        MOVEQ   #COUNT, D1",
		"LOOP:   TST.L   D1",
		"        BEQ     DONE",
		"        MULS    #2, D0",
		"        SUBQ.L  #1, D1",
		"        BRA     LOOP",
		"DONE:   TRAP    #15",
	}

	first := doAssemble(t, program)
	second := doAssemble(t, program)
	assert.Equal(first.Image(), second.Image())
	assert.Equal(first.Entry, second.Entry)
	assert.Equal(first.Symbols, second.Symbols)

	// same assembler, reused
	asm := &Assembler{}
	third, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	fourth, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(third.Image(), fourth.Image())
}
