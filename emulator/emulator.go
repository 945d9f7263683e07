package emulator

import (
	"io"
	"iter"
	"maps"

	"github.com/retrosim/sim68k/cpu"
	"github.com/retrosim/sim68k/internal"
)

var _emulator_defines = map[string]string{
	"EXIT": "15", // TRAP #EXIT ends the program
}

// Emulator state. Assembler + CPU + loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Assembler cpu.Assembler
}

// NewEmulator creates a new emulator with every define predefined as an
// EQU constant for assembly.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.New(),
	}

	for name, value := range emu.Defines() {
		emu.Assembler.Predefine(name, value)
	}

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assemble translates source text and loads the resulting program. On an
// assembly error nothing is loaded and the prior program stays in place.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	emu.Assembler.Verbose = emu.Verbose

	prog, err := emu.Assembler.Assemble(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return emu.Cpu.Load(prog)
}

// LineNo returns the source line number for an instruction address, or 0.
func (emu *Emulator) LineNo(address uint32) int {
	if emu.Program == nil {
		return 0
	}
	if stmt := emu.Program.Debug(address); stmt != nil {
		return stmt.LineNo
	}

	return 0
}

// Step executes a single instruction, locating any runtime error in the
// source listing.
func (emu *Emulator) Step() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo(emu.Cpu.Pc)
	err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}

	return
}

// Run steps until the program halts, faults, or a halt condition fires.
func (emu *Emulator) Run(until ...cpu.HaltCondition) (steps uint64, err error) {
	emu.Cpu.Verbose = emu.Verbose

	steps, err = emu.Cpu.Run(until...)
	if err != nil {
		err = &ErrRuntime{LineNo: emu.LineNo(emu.Cpu.FaultAddr), Err: err}
	}

	return
}

// ReadRegister reads a register by name: D0-D7, A0-A7, or PC.
func (emu *Emulator) ReadRegister(name string) (value uint32, ok bool) {
	if name == "PC" || name == "pc" {
		return emu.Cpu.Pc, true
	}
	if len(name) != 2 || name[1] < '0' || name[1] > '7' {
		return
	}

	n := name[1] - '0'
	switch name[0] {
	case 'D', 'd':
		return emu.Cpu.Data[n], true
	case 'A', 'a':
		return emu.Cpu.Addr[n], true
	}

	return
}

// Flags returns the current condition codes.
func (emu *Emulator) Flags() cpu.Flags {
	return emu.Cpu.Flags
}

// ProgramCounter returns the current program counter.
func (emu *Emulator) ProgramCounter() uint32 {
	return emu.Cpu.Pc
}

// ReadMemory reads a word or long from memory.
func (emu *Emulator) ReadMemory(address uint32, size cpu.Size) (value uint32, err error) {
	if size == cpu.SIZE_WORD {
		var word uint16
		word, err = emu.Cpu.Memory.ReadWord(address)
		value = uint32(word)
		return
	}

	return emu.Cpu.Memory.ReadLong(address)
}
