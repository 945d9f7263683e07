package cpu

import (
	"errors"

	"github.com/retrosim/sim68k/translate"
)

var f = translate.From

var (
	// Runtime errors; each transitions the engine to STATE_FAULTED.
	ErrOpcodeInvalid  = errors.New(f("invalid opcode"))
	ErrMemoryBounds   = errors.New(f("memory access out of bounds"))
	ErrStackUnderflow = errors.New(f("call stack underflow"))
	ErrStackOverflow  = errors.New(f("call stack overflow"))

	// Engine state errors.
	ErrCpuHalted  = errors.New(f("cpu halted"))
	ErrCpuFaulted = errors.New(f("cpu faulted"))
	ErrNoProgram  = errors.New(f("no program loaded"))

	// Assembler errors.
	ErrMnemonicUnknown  = errors.New(f("unknown mnemonic"))
	ErrDirectiveUnknown = errors.New(f("unknown directive"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrEquateDuplicate  = errors.New(f("EQU duplicated"))
	ErrOperandRange     = errors.New(f("operand out of range"))
	ErrOperandMalformed = errors.New(f("malformed operand"))
	ErrOperandCount     = errors.New(f("wrong operand count"))
	ErrSizeInvalid      = errors.New(f("size suffix invalid"))
)

// ErrLabelMissing reports a label referenced but never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v undefined", string(el))
}

func (el ErrLabelMissing) Is(err error) (ok bool) {
	_, ok = err.(ErrLabelMissing)
	return
}

// ErrTrapUnknown reports a TRAP with an unregistered vector.
type ErrTrapUnknown uint16

func (et ErrTrapUnknown) Error() string {
	return f("unknown trap #%v", uint16(et))
}

func (et ErrTrapUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrTrapUnknown)
	return
}

// ErrBadWord reports the opcode word that failed to decode.
type ErrBadWord uint16

func (eb ErrBadWord) Error() string {
	return f("opcode word 0x%04x", uint16(eb))
}

// ErrAddress reports the address of a faulted memory access.
type ErrAddress uint32

func (ea ErrAddress) Error() string {
	return f("address 0x%06x", uint32(ea))
}

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseNumber reports a word that should have been a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseExpression reports a $() expression that failed to evaluate.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
