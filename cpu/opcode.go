package cpu

// CodeClass is the instruction family selector, the top nibble of the
// opcode word.
type CodeClass uint16

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_MOVE_L = CodeClass(0x2) // move.l
	OP_MOVE_W = CodeClass(0x3) // move.w
	OP_MISC   = CodeClass(0x4) // misc
	OP_QUICK  = CodeClass(0x5) // quick
	OP_BRANCH = CodeClass(0x6) // bcc
	OP_MOVEQ  = CodeClass(0x7) // moveq
	OP_SUB    = CodeClass(0x9) // sub
	OP_CMP    = CodeClass(0xb) // cmp
	OP_MULS   = CodeClass(0xc) // muls
	OP_ADD    = CodeClass(0xd) // add
	OP_SHIFT  = CodeClass(0xe) // shift
)

// CodeCond is a branch condition selector.
type CodeCond uint16

//go:generate go tool stringer -linecomment -type=CodeCond
const (
	COND_BRA = CodeCond(0x0) // bra
	COND_BSR = CodeCond(0x1) // bsr
	COND_BHI = CodeCond(0x2) // bhi
	COND_BLS = CodeCond(0x3) // bls
	COND_BCC = CodeCond(0x4) // bcc
	COND_BCS = CodeCond(0x5) // bcs
	COND_BNE = CodeCond(0x6) // bne
	COND_BEQ = CodeCond(0x7) // beq
	COND_BVC = CodeCond(0x8) // bvc
	COND_BVS = CodeCond(0x9) // bvs
	COND_BPL = CodeCond(0xa) // bpl
	COND_BMI = CodeCond(0xb) // bmi
	COND_BGE = CodeCond(0xc) // bge
	COND_BLT = CodeCond(0xd) // blt
	COND_BGT = CodeCond(0xe) // bgt
	COND_BLE = CodeCond(0xf) // ble
)

// Holds reports whether the condition is satisfied by the flags.
// BRA is always taken; BSR is always taken, as a subroutine call.
func (cond CodeCond) Holds(fl Flags) bool {
	switch cond {
	case COND_BRA, COND_BSR:
		return true
	case COND_BHI:
		return !fl.Carry && !fl.Zero
	case COND_BLS:
		return fl.Carry || fl.Zero
	case COND_BCC:
		return !fl.Carry
	case COND_BCS:
		return fl.Carry
	case COND_BNE:
		return !fl.Zero
	case COND_BEQ:
		return fl.Zero
	case COND_BVC:
		return !fl.Overflow
	case COND_BVS:
		return fl.Overflow
	case COND_BPL:
		return !fl.Negative
	case COND_BMI:
		return fl.Negative
	case COND_BGE:
		return fl.Negative == fl.Overflow
	case COND_BLT:
		return fl.Negative != fl.Overflow
	case COND_BGT:
		return !fl.Zero && (fl.Negative == fl.Overflow)
	case COND_BLE:
		return fl.Zero || (fl.Negative != fl.Overflow)
	}

	return false
}

// EAMode is the 3-bit effective-address mode field.
type EAMode uint16

//go:generate go tool stringer -linecomment -type=EAMode
const (
	EA_MODE_DATA     = EAMode(0) // dn
	EA_MODE_ADDR     = EAMode(1) // an
	EA_MODE_INDIRECT = EAMode(2) // (an)
	EA_MODE_EXTENDED = EAMode(7) // ext
)

// Register sub-selectors of EA_MODE_EXTENDED.
const (
	EA_EXT_ABSOLUTE  = uint16(0) // (xxx).W
	EA_EXT_IMMEDIATE = uint16(4) // #imm
)

// EA is a decoded effective-address field: 3-bit mode plus 3-bit register.
type EA struct {
	Mode EAMode
	Reg  uint16
}

// Bits packs the effective address into its 6-bit field encoding.
func (ea EA) Bits() uint16 {
	return (uint16(ea.Mode) << 3) | (ea.Reg & 7)
}

// eaOf unpacks the low six bits of an opcode word.
func eaOf(bits uint16) EA {
	return EA{
		Mode: EAMode((bits >> 3) & 7),
		Reg:  bits & 7,
	}
}

// ExtWords returns how many 16-bit extension words the effective address
// occupies for an access of the given size. The count depends only on the
// address shape, never on the operand value.
func (ea EA) ExtWords(size Size) int {
	if ea.Mode != EA_MODE_EXTENDED {
		return 0
	}
	if ea.Reg == EA_EXT_IMMEDIATE && size == SIZE_LONG {
		return 2
	}

	return 1
}

// Size is an operation width selector.
type Size int

//go:generate go tool stringer -linecomment -type=Size
const (
	SIZE_BYTE = Size(0) // b
	SIZE_WORD = Size(1) // w
	SIZE_LONG = Size(2) // l
)

// Bytes returns the operand width in bytes.
func (size Size) Bytes() uint32 {
	switch size {
	case SIZE_BYTE:
		return 1
	case SIZE_WORD:
		return 2
	}

	return 4
}

// Fixed opcode words of the misc (0x4) and quick (0x5) families.
const (
	OPCODE_NOP     = uint16(0x4e71)
	OPCODE_SIMHALT = uint16(0x4e72)
	OPCODE_RTS     = uint16(0x4e75)
	OPCODE_TRAP    = uint16(0x4e40) // | vector
	OPCODE_JMP_ABS = uint16(0x4ef8) // + abs16 extension
	OPCODE_TST_L   = uint16(0x4a80) // | ea
	OPCODE_DBRA    = uint16(0x51c8) // | dn, + disp16 extension
)

// MakeMove encodes MOVE.W/MOVE.L (and MOVEA, via an address-register
// destination): 00ss DDD ddd mmm rrr.
func MakeMove(size Size, src, dst EA) uint16 {
	class := OP_MOVE_W
	if size == SIZE_LONG {
		class = OP_MOVE_L
	}

	return (uint16(class) << 12) | (dst.Reg << 9) | (uint16(dst.Mode) << 6) | src.Bits()
}

// MakeMoveq encodes MOVEQ #imm8, Dn.
func MakeMoveq(reg uint16, value uint8) uint16 {
	return (uint16(OP_MOVEQ) << 12) | (reg << 9) | uint16(value)
}

// MakeAdd encodes ADD.L ea, Dn.
func MakeAdd(reg uint16, src EA) uint16 {
	return (uint16(OP_ADD) << 12) | (reg << 9) | 0x080 | src.Bits()
}

// MakeSub encodes SUB.L ea, Dn.
func MakeSub(reg uint16, src EA) uint16 {
	return (uint16(OP_SUB) << 12) | (reg << 9) | 0x080 | src.Bits()
}

// MakeCmp encodes CMP.L ea, Dn.
func MakeCmp(reg uint16, src EA) uint16 {
	return (uint16(OP_CMP) << 12) | (reg << 9) | 0x080 | src.Bits()
}

// MakeMuls encodes MULS ea, Dn (signed 16x16 -> 32 multiply).
func MakeMuls(reg uint16, src EA) uint16 {
	return (uint16(OP_MULS) << 12) | (reg << 9) | 0x1c0 | src.Bits()
}

// MakeTst encodes TST.L ea.
func MakeTst(src EA) uint16 {
	return OPCODE_TST_L | src.Bits()
}

// MakeQuick encodes ADDQ.L/SUBQ.L #data, Dn. The quick value 8 is encoded
// as 0.
func MakeQuick(subtract bool, data uint16, reg uint16) uint16 {
	word := (uint16(OP_QUICK) << 12) | ((data & 7) << 9) | 0x080 | reg
	if subtract {
		word |= 0x100
	}

	return word
}

// MakeAsl encodes ASL.L #count, Dn. The count value 8 is encoded as 0.
func MakeAsl(count uint16, reg uint16) uint16 {
	return (uint16(OP_SHIFT) << 12) | ((count & 7) << 9) | 0x180 | reg
}

// MakeBranch encodes Bcc with an 8-bit displacement (BSR included).
func MakeBranch(cond CodeCond, disp int8) uint16 {
	return (uint16(OP_BRANCH) << 12) | (uint16(cond) << 8) | uint16(uint8(disp))
}

// MakeTrap encodes TRAP #vector.
func MakeTrap(vector uint16) uint16 {
	return OPCODE_TRAP | (vector & 0xf)
}
