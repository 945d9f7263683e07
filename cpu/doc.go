// Package cpu implements the assembler and processor model for a subset of
// the MC68000 architecture.
//
// The processor consists of eight 32-bit data registers (D0-D7), eight 32-bit
// address registers (A0-A7), a program counter, five condition flags
// (Zero, Negative, Carry, Overflow, Extend), a call stack for subroutine
// linkage, and 16 MiB of big-endian byte-addressable memory.
//
// The assembler is a two-pass translator: pass one builds statement records
// and resolves label addresses, pass two encodes each statement into 16-bit
// opcode and extension words. EQU constants and compile-time $(...)
// expressions are supported in operand positions.
package cpu
