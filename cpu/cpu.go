package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

// State is the engine lifecycle state.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_READY   = State(0) // ready
	STATE_RUNNING = State(1) // running
	STATE_HALTED  = State(2) // halted
	STATE_FAULTED = State(3) // faulted
)

// TRAP_EXIT is the vector of the built-in exit trap: it latches D0 as the
// program result and halts.
const TRAP_EXIT = uint16(15)

// TrapFunc services one TRAP vector. A returned error faults the engine.
type TrapFunc func(cpu *Cpu) error

// Cpu is the MC68000-subset execution engine: eight data registers, eight
// address registers, a program counter, condition codes, a bounded call
// stack, and a byte-addressed big-endian memory.
//
// Each Step is atomic; a fault leaves the visible registers exactly as the
// failing instruction found them, except for the program counter.
type Cpu struct {
	Data   [8]uint32
	Addr   [8]uint32
	Pc     uint32
	Flags  Flags
	Stack  CallStack
	Memory *Memory
	State  State

	Result    uint32 // D0 as latched by the exit trap
	Fault     error  // first runtime error; sticky until Reset
	FaultAddr uint32 // address of the faulting instruction

	Verbose bool // If set, verbosely logs each executed instruction.

	program *Program
	traps   map[uint16]TrapFunc
}

// New creates a Cpu with zeroed registers, a full memory, and the exit
// trap registered on vector 15.
func New() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(),
		traps:  map[uint16]TrapFunc{},
	}
	cpu.RegisterTrap(TRAP_EXIT, func(cpu *Cpu) error {
		cpu.Result = cpu.Data[0]
		cpu.State = STATE_HALTED
		return nil
	})

	return
}

// RegisterTrap installs a handler for a TRAP vector, replacing any prior
// handler.
func (cpu *Cpu) RegisterTrap(vector uint16, handler TrapFunc) {
	cpu.traps[vector&0xf] = handler
}

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":      fmt.Sprintf("%v", MEMORY_SIZE),
	"CALL_STACK_LIMIT": fmt.Sprintf("%v", CALL_STACK_LIMIT),
	"TRAP_EXIT":        fmt.Sprintf("%v", TRAP_EXIT),
}

// Defines returns an iterator over the engine's assembly-time constants.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Load installs an assembled program: memory is cleared, the image words
// are written at their addresses, and the engine becomes ready at the
// program's entry point.
func (cpu *Cpu) Load(prog *Program) (err error) {
	cpu.program = prog
	return cpu.Reset()
}

// Reset rewinds the engine to the ready state: registers, flags, and call
// stack cleared, memory re-imaged from the loaded program, program counter
// at the entry point.
func (cpu *Cpu) Reset() (err error) {
	cpu.Data = [8]uint32{}
	cpu.Addr = [8]uint32{}
	cpu.Flags = Flags{}
	cpu.Stack.Reset()
	cpu.Memory.Reset()
	cpu.Result = 0
	cpu.Fault = nil
	cpu.FaultAddr = 0
	cpu.Pc = 0
	cpu.State = STATE_READY

	if cpu.program == nil {
		return
	}

	for address, word := range cpu.program.Words() {
		err = cpu.Memory.WriteWord(address, word)
		if err != nil {
			cpu.State = STATE_FAULTED
			cpu.Fault = err
			return
		}
	}
	cpu.Pc = cpu.program.Entry

	return
}

// Program returns the loaded program, or nil.
func (cpu *Cpu) Program() *Program {
	return cpu.program
}

// Step executes exactly one instruction. It is valid from the ready and
// running states; a halted engine returns ErrCpuHalted and a faulted one
// ErrCpuFaulted, neither changing state. Runtime errors transition the
// engine to faulted and stick until Reset.
func (cpu *Cpu) Step() (err error) {
	switch cpu.State {
	case STATE_HALTED:
		return ErrCpuHalted
	case STATE_FAULTED:
		return ErrCpuFaulted
	}
	if cpu.program == nil {
		return ErrNoProgram
	}

	cpu.State = STATE_RUNNING

	start := cpu.Pc
	err = cpu.execute()
	if err != nil {
		cpu.State = STATE_FAULTED
		cpu.Fault = err
		cpu.FaultAddr = start
	}

	return
}

// HaltCondition stops a Run before the engine halts on its own. It is
// checked before each step.
type HaltCondition func(cpu *Cpu) bool

// MaxSteps stops a Run after the given number of instructions.
func MaxSteps(limit uint64) HaltCondition {
	var count uint64
	return func(cpu *Cpu) bool {
		count++
		return count > limit
	}
}

// BreakpointAt stops a Run when the program counter reaches the address.
func BreakpointAt(address uint32) HaltCondition {
	return func(cpu *Cpu) bool {
		return cpu.Pc == address
	}
}

// Run steps the engine until it halts, faults, or a halt condition fires.
// It returns the number of instructions executed and, on a fault, the
// runtime error.
func (cpu *Cpu) Run(until ...HaltCondition) (steps uint64, err error) {
	if cpu.program == nil {
		err = ErrNoProgram
		return
	}

	for cpu.State == STATE_READY || cpu.State == STATE_RUNNING {
		for _, cond := range until {
			if cond(cpu) {
				return
			}
		}
		err = cpu.Step()
		if err != nil {
			return
		}
		steps++
	}

	return
}

// fetch reads the word at the program counter and advances past it.
func (cpu *Cpu) fetch() (word uint16, err error) {
	word, err = cpu.Memory.ReadWord(cpu.Pc)
	if err != nil {
		return
	}
	cpu.Pc += 2

	return
}

// readEA fetches any extension words and produces the operand value,
// zero-extended to 32 bits for word accesses.
func (cpu *Cpu) readEA(ea EA, size Size) (value uint32, err error) {
	switch ea.Mode {
	case EA_MODE_DATA:
		value = cpu.Data[ea.Reg]
	case EA_MODE_ADDR:
		value = cpu.Addr[ea.Reg]
	case EA_MODE_INDIRECT:
		return cpu.readMemory(cpu.Addr[ea.Reg], size)
	case EA_MODE_EXTENDED:
		switch ea.Reg {
		case EA_EXT_IMMEDIATE:
			var ext uint16
			ext, err = cpu.fetch()
			if err != nil {
				return
			}
			value = uint32(ext)
			if size == SIZE_LONG {
				ext, err = cpu.fetch()
				if err != nil {
					return
				}
				value = (value << 16) | uint32(ext)
			}
			return
		case EA_EXT_ABSOLUTE:
			var ext uint16
			ext, err = cpu.fetch()
			if err != nil {
				return
			}
			return cpu.readMemory(uint32(ext), size)
		default:
			err = errors.Join(ErrOpcodeInvalid, ErrBadWord(ea.Bits()))
			return
		}
	default:
		err = errors.Join(ErrOpcodeInvalid, ErrBadWord(ea.Bits()))
		return
	}

	if size == SIZE_WORD {
		value &= 0xffff
	}

	return
}

// writeEA fetches any extension words and stores the value. Word writes to
// a data register replace the low word only; word writes to an address
// register sign-extend.
func (cpu *Cpu) writeEA(ea EA, size Size, value uint32) (err error) {
	switch ea.Mode {
	case EA_MODE_DATA:
		if size == SIZE_WORD {
			value = (cpu.Data[ea.Reg] &^ 0xffff) | (value & 0xffff)
		}
		cpu.Data[ea.Reg] = value
	case EA_MODE_ADDR:
		if size == SIZE_WORD {
			value = uint32(int32(int16(uint16(value))))
		}
		cpu.Addr[ea.Reg] = value
	case EA_MODE_INDIRECT:
		return cpu.writeMemory(cpu.Addr[ea.Reg], size, value)
	case EA_MODE_EXTENDED:
		if ea.Reg != EA_EXT_ABSOLUTE {
			return errors.Join(ErrOpcodeInvalid, ErrBadWord(ea.Bits()))
		}
		var ext uint16
		ext, err = cpu.fetch()
		if err != nil {
			return
		}
		return cpu.writeMemory(uint32(ext), size, value)
	default:
		return errors.Join(ErrOpcodeInvalid, ErrBadWord(ea.Bits()))
	}

	return
}

func (cpu *Cpu) readMemory(address uint32, size Size) (value uint32, err error) {
	if size == SIZE_WORD {
		var word uint16
		word, err = cpu.Memory.ReadWord(address)
		value = uint32(word)
		return
	}

	return cpu.Memory.ReadLong(address)
}

func (cpu *Cpu) writeMemory(address uint32, size Size, value uint32) (err error) {
	if size == SIZE_WORD {
		return cpu.Memory.WriteWord(address, uint16(value))
	}

	return cpu.Memory.WriteLong(address, value)
}

// execute fetches, decodes, and performs one instruction.
func (cpu *Cpu) execute() (err error) {
	start := cpu.Pc

	word, err := cpu.fetch()
	if err != nil {
		return
	}

	if cpu.Verbose {
		if stmt := cpu.program.Debug(start); stmt != nil {
			log.Printf("%06x: %04x\t%v\n", start, word, stmt.Line)
		} else {
			log.Printf("%06x: %04x\n", start, word)
		}
	}

	switch CodeClass(word >> 12) {
	case OP_MOVE_W:
		return cpu.opMove(word, SIZE_WORD)
	case OP_MOVE_L:
		return cpu.opMove(word, SIZE_LONG)
	case OP_MISC:
		return cpu.opMisc(word)
	case OP_QUICK:
		return cpu.opQuick(word)
	case OP_BRANCH:
		return cpu.opBranch(word)
	case OP_MOVEQ:
		value := uint32(int32(int8(uint8(word))))
		cpu.Data[(word>>9)&7] = value
		return
	case OP_ADD, OP_SUB, OP_CMP:
		return cpu.opArith(word)
	case OP_MULS:
		return cpu.opMuls(word)
	case OP_SHIFT:
		return cpu.opShift(word)
	}

	return errors.Join(ErrOpcodeInvalid, ErrBadWord(word))
}

// opMove performs MOVE and MOVEA. Data movement never touches the flags.
func (cpu *Cpu) opMove(word uint16, size Size) (err error) {
	src := eaOf(word & 0x3f)
	dst := EA{Mode: EAMode((word >> 6) & 7), Reg: (word >> 9) & 7}

	value, err := cpu.readEA(src, size)
	if err != nil {
		return
	}

	return cpu.writeEA(dst, size, value)
}

// opMisc decodes the 0x4 family: NOP, SIMHALT, RTS, JMP, TRAP, and TST.
func (cpu *Cpu) opMisc(word uint16) (err error) {
	switch word {
	case OPCODE_NOP:
		return
	case OPCODE_SIMHALT:
		cpu.State = STATE_HALTED
		return
	case OPCODE_RTS:
		address, ok := cpu.Stack.Pop()
		if !ok {
			return ErrStackUnderflow
		}
		cpu.Pc = address
		return
	case OPCODE_JMP_ABS:
		var ext uint16
		ext, err = cpu.fetch()
		if err != nil {
			return
		}
		cpu.Pc = uint32(ext)
		return
	}

	if word&0xfff0 == OPCODE_TRAP {
		return cpu.opTrap(word & 0xf)
	}

	if word&0xffc0 == OPCODE_TST_L {
		var value uint32
		value, err = cpu.readEA(eaOf(word&0x3f), SIZE_LONG)
		if err != nil {
			return
		}
		cpu.Flags.setLogic(value)
		return
	}

	return errors.Join(ErrOpcodeInvalid, ErrBadWord(word))
}

// opTrap dispatches a TRAP vector to its registered handler.
func (cpu *Cpu) opTrap(vector uint16) (err error) {
	handler, ok := cpu.traps[vector]
	if !ok {
		return ErrTrapUnknown(vector)
	}

	return handler(cpu)
}

// opQuick decodes the 0x5 family: ADDQ.L, SUBQ.L, and DBRA.
func (cpu *Cpu) opQuick(word uint16) (err error) {
	if word&0xfff8 == OPCODE_DBRA {
		reg := word & 7
		base := cpu.Pc
		var ext uint16
		ext, err = cpu.fetch()
		if err != nil {
			return
		}

		// Decrement the low word; fall through once it wraps past zero.
		count := uint16(cpu.Data[reg]) - 1
		cpu.Data[reg] = (cpu.Data[reg] &^ 0xffff) | uint32(count)
		if count != 0xffff {
			cpu.Pc = base + uint32(int32(int16(ext)))
		}
		return
	}

	// ADDQ.L/SUBQ.L #data, Dn
	if word&0xf8 != 0x80 {
		return errors.Join(ErrOpcodeInvalid, ErrBadWord(word))
	}

	data := uint32((word >> 9) & 7)
	if data == 0 {
		data = 8
	}
	reg := word & 7
	before := cpu.Data[reg]

	if word&0x100 != 0 {
		result := before - data
		cpu.Flags.setSub(before, data, result)
		cpu.Data[reg] = result
	} else {
		result := before + data
		cpu.Flags.setAdd(before, data, result)
		cpu.Data[reg] = result
	}

	return
}

// opBranch performs Bcc and BSR with an 8-bit displacement.
func (cpu *Cpu) opBranch(word uint16) (err error) {
	cond := CodeCond((word >> 8) & 0xf)
	base := cpu.Pc // displacement is from the word after the opcode

	if !cond.Holds(cpu.Flags) {
		return
	}

	if cond == COND_BSR {
		if cpu.Stack.Full() {
			return ErrStackOverflow
		}
		cpu.Stack.Push(cpu.Pc)
	}

	cpu.Pc = base + uint32(int32(int8(uint8(word))))
	return
}

// opArith performs the long-form ADD, SUB, and CMP with a data register
// destination.
func (cpu *Cpu) opArith(word uint16) (err error) {
	if (word>>6)&7 != 2 {
		return errors.Join(ErrOpcodeInvalid, ErrBadWord(word))
	}

	reg := (word >> 9) & 7
	value, err := cpu.readEA(eaOf(word&0x3f), SIZE_LONG)
	if err != nil {
		return
	}
	before := cpu.Data[reg]

	switch CodeClass(word >> 12) {
	case OP_ADD:
		result := before + value
		cpu.Flags.setAdd(before, value, result)
		cpu.Data[reg] = result
	case OP_SUB:
		result := before - value
		cpu.Flags.setSub(before, value, result)
		cpu.Data[reg] = result
	case OP_CMP:
		cpu.Flags.setCmp(before, value, before-value)
	}

	return
}

// opMuls performs the signed 16x16 -> 32 multiply.
func (cpu *Cpu) opMuls(word uint16) (err error) {
	if (word>>6)&7 != 7 {
		return errors.Join(ErrOpcodeInvalid, ErrBadWord(word))
	}

	reg := (word >> 9) & 7
	value, err := cpu.readEA(eaOf(word&0x3f), SIZE_WORD)
	if err != nil {
		return
	}

	product := int32(int16(uint16(value))) * int32(int16(uint16(cpu.Data[reg])))
	cpu.Data[reg] = uint32(product)
	cpu.Flags.setLogic(uint32(product))

	return
}

// opShift performs ASL.L with an immediate count.
func (cpu *Cpu) opShift(word uint16) (err error) {
	if word&0x1f8 != 0x180 {
		return errors.Join(ErrOpcodeInvalid, ErrBadWord(word))
	}

	count := uint32((word >> 9) & 7)
	if count == 0 {
		count = 8
	}
	reg := word & 7
	value := cpu.Data[reg]

	var carry, changed bool
	for n := uint32(0); n < count; n++ {
		carry = (value >> 31) != 0
		shifted := value << 1
		changed = changed || ((value^shifted)>>31) != 0
		value = shifted
	}

	cpu.Data[reg] = value
	cpu.Flags.Zero = value == 0
	cpu.Flags.Negative = (value >> 31) != 0
	cpu.Flags.Carry = carry
	cpu.Flags.Extend = carry
	cpu.Flags.Overflow = changed

	return
}

// String renders a register dump.
func (cpu *Cpu) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "pc=%06x ccr=%v state=%v\n", cpu.Pc, cpu.Flags, cpu.State)
	for n := range 8 {
		fmt.Fprintf(&sb, "d%d=%08x ", n, cpu.Data[n])
	}
	sb.WriteByte('\n')
	for n := range 8 {
		fmt.Fprintf(&sb, "a%d=%08x ", n, cpu.Addr[n])
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "call depth %d", cpu.Stack.Depth())

	return sb.String()
}
