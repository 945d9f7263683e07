package cpu

import (
	"iter"
)

// OperandKind tags the shape of a parsed operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_DATA_REG  = OperandKind(0) // dn
	OPERAND_ADDR_REG  = OperandKind(1) // an
	OPERAND_INDIRECT  = OperandKind(2) // (an)
	OPERAND_IMMEDIATE = OperandKind(3) // #imm
	OPERAND_ABSOLUTE  = OperandKind(4) // abs
	OPERAND_LABEL     = OperandKind(5) // label
)

// Operand is a parsed instruction operand. Immediate and label operands may
// carry a symbol instead of a value; symbols resolve in the second pass.
type Operand struct {
	Kind   OperandKind
	Reg    uint16 // register number for dn/an/(an)
	Value  uint32
	Symbol string
}

// Statement is one source line that occupies address space: an instruction
// or a DC/DS directive. Built during pass one, encoded during pass two,
// retained only for the debug listing.
type Statement struct {
	LineNo   int
	Line     string
	Addr     uint32
	Mnemonic string
	Size     Size
	Operands []Operand
	Words    []uint16 // filled by pass two; empty for DS
	width    uint32   // encoded width in bytes, known statically
}

// Program is an assembled machine-code image plus its symbol table and
// source listing.
type Program struct {
	Statements []Statement
	Symbols    map[string]uint32
	Entry      uint32
}

// Words iterates the image as (address, word) pairs in emission order.
func (prog *Program) Words() iter.Seq2[uint32, uint16] {
	return func(yield func(address uint32, word uint16) bool) {
		for _, stmt := range prog.Statements {
			for n, word := range stmt.Words {
				if !yield(stmt.Addr+uint32(2*n), word) {
					return
				}
			}
		}
	}
}

// Image flattens the program into (address, word) pairs.
func (prog *Program) Image() (image [][2]uint32) {
	for address, word := range prog.Words() {
		image = append(image, [2]uint32{address, uint32(word)})
	}

	return
}

// Debug finds the statement covering a program-counter address, or nil.
func (prog *Program) Debug(pc uint32) (stmt *Statement) {
	for n := range prog.Statements {
		s := &prog.Statements[n]
		if pc >= s.Addr && pc < s.Addr+s.width {
			stmt = s
			break
		}
	}

	return
}
