package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	f.Add(uint16(0x4e71), uint32(0), uint32(0))          // nop
	f.Add(uint16(0x4e75), uint32(0), uint32(0))          // rts on an empty stack
	f.Add(uint16(0x4e4f), uint32(42), uint32(0))         // trap #15
	f.Add(uint16(0x4e47), uint32(0), uint32(0))          // trap #7, unregistered
	f.Add(uint16(0x203c), uint32(0), uint32(0))          // move.l #imm, d0
	f.Add(uint16(0xd081), uint32(1), uint32(0xffffffff)) // add.l d1, d0
	f.Add(uint16(0x90bc), uint32(0), uint32(0))          // sub.l #imm, d0
	f.Add(uint16(0xc3fc), uint32(0), uint32(0xffff))     // muls #imm, d1
	f.Add(uint16(0x5280), uint32(0x7fffffff), uint32(0)) // addq.l #1, d0
	f.Add(uint16(0xe381), uint32(0x40000000), uint32(0)) // asl.l #1, d1
	f.Add(uint16(0x51c8), uint32(0), uint32(3))          // dbra d0
	f.Add(uint16(0x6002), uint32(0), uint32(0))          // bra +2
	f.Add(uint16(0x61fe), uint32(0), uint32(0))          // bsr
	f.Add(uint16(0x4ef8), uint32(0), uint32(0))          // jmp abs
	f.Add(uint16(0xffff), uint32(0), uint32(0))          // invalid
	f.Add(uint16(0x0000), uint32(0), uint32(0))          // invalid

	f.Fuzz(func(t *testing.T, opcode uint16, d0, d1 uint32) {
		assert := assert.New(t)

		// a raw opcode plus enough extension words for any shape
		prog := &Program{
			Statements: []Statement{{
				LineNo: 1,
				Addr:   0,
				Words:  []uint16{opcode, 0x1234, 0x0010},
				width:  6,
			}},
		}

		cpu := New()
		err := cpu.Load(prog)
		assert.NoError(err)
		cpu.Data[0] = d0
		cpu.Data[1] = d1

		err = cpu.Step()
		if err != nil {
			// every fault maps to the runtime error taxonomy
			known := errors.Is(err, ErrOpcodeInvalid) ||
				errors.Is(err, ErrMemoryBounds) ||
				errors.Is(err, ErrStackUnderflow) ||
				errors.Is(err, ErrStackOverflow) ||
				errors.Is(err, ErrTrapUnknown(0))
			assert.True(known, "opcode %04x: %v", opcode, err)
			assert.Equal(STATE_FAULTED, cpu.State)
			assert.Equal(uint32(0), cpu.FaultAddr)
			return
		}

		switch cpu.State {
		case STATE_RUNNING, STATE_HALTED:
		default:
			t.Fatalf("opcode %04x: state %v", opcode, cpu.State)
		}

		// data movement leaves the flags untouched
		switch CodeClass(opcode >> 12) {
		case OP_MOVE_L, OP_MOVE_W, OP_MOVEQ:
			assert.Equal(Flags{}, cpu.Flags, "opcode %04x", opcode)
		}
	})
}

func FuzzAssembler(f *testing.F) {
	f.Add("")
	f.Add("START: MOVEQ #1, D0\n TRAP #15")
	f.Add(" ORG $100\nX: DC.L 1, 2\n DS.W 4\n NOP")
	f.Add("K EQU 8\n MOVEQ #$(K * 2), D0")
	f.Add("LOOP: SUBQ.L #1, D0\n BNE LOOP\n RTS")
	f.Add(" MOVE.L (A0), D1\n MOVEA.L #$1000, A0")
	f.Add(" BRA MISSING")
	f.Add("X: NOP\nX: NOP")
	f.Add(" DC.B 1")
	f.Add(" $(")

	f.Fuzz(func(t *testing.T, source string) {
		assert := assert.New(t)

		asm := &Assembler{}
		prog, err := asm.Assemble(strings.NewReader(source))
		if err != nil {
			// all-or-nothing, and every error carries its location
			assert.Nil(prog)
			var syntax *ErrSyntax
			assert.True(errors.As(err, &syntax), "%v", err)
			return
		}

		// assembly is deterministic
		again := &Assembler{}
		dup, err := again.Assemble(strings.NewReader(source))
		assert.NoError(err)
		assert.Equal(prog.Image(), dup.Image())
		assert.Equal(prog.Entry, dup.Entry)
	})
}
