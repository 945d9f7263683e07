package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a two-pass assembler for the MC68000 subset.
//
// Pass one walks the source in order, expanding EQU constants and $()
// expressions, recording every label against a running location counter,
// and building statement records whose encoded widths are known from the
// operand shapes alone. Pass two re-walks the records with the completed
// symbol table, resolves label references and branch displacements, and
// emits the opcode and extension words.
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Symbols map[string]uint32 // Label addresses; immutable after pass one.
	Equate  map[string]string // EQU constants.

	predefine  map[string]string
	statements []Statement
	counter    uint32
	entry      uint32
	haveEntry  bool
	ended      bool
}

// Predefine defines an EQU constant visible to every assembly.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// instruction mnemonics and their default operation size
var mnemonicSize = map[string]Size{
	"MOVE":    SIZE_WORD,
	"MOVEA":   SIZE_LONG,
	"MOVEQ":   SIZE_LONG,
	"ADD":     SIZE_LONG,
	"SUB":     SIZE_LONG,
	"CMP":     SIZE_LONG,
	"MULS":    SIZE_WORD,
	"TST":     SIZE_LONG,
	"ADDQ":    SIZE_LONG,
	"SUBQ":    SIZE_LONG,
	"ASL":     SIZE_LONG,
	"DBRA":    SIZE_WORD,
	"JMP":     SIZE_WORD,
	"RTS":     SIZE_WORD,
	"NOP":     SIZE_WORD,
	"TRAP":    SIZE_WORD,
	"SIMHALT": SIZE_WORD,
}

// branchMap maps branch mnemonics to their condition field.
var branchMap = map[string]CodeCond{
	"BRA": COND_BRA,
	"BSR": COND_BSR,
	"BHI": COND_BHI,
	"BLS": COND_BLS,
	"BCC": COND_BCC,
	"BCS": COND_BCS,
	"BNE": COND_BNE,
	"BEQ": COND_BEQ,
	"BVC": COND_BVC,
	"BVS": COND_BVS,
	"BPL": COND_BPL,
	"BMI": COND_BMI,
	"BGE": COND_BGE,
	"BLT": COND_BLT,
	"BGT": COND_BGT,
	"BLE": COND_BLE,
}

var sizeSuffix = map[string]Size{
	"B": SIZE_BYTE,
	"W": SIZE_WORD,
	"L": SIZE_LONG,
}

// isKeyword reports whether a word is a mnemonic or directive, with or
// without a size suffix. Used to tell labels from instructions on lines
// where the label carries no colon.
func isKeyword(word string) bool {
	base, _, _ := strings.Cut(strings.ToUpper(word), ".")

	if _, ok := mnemonicSize[base]; ok {
		return true
	}
	if _, ok := branchMap[base]; ok {
		return true
	}

	switch base {
	case "ORG", "DC", "DS", "END", "EQU":
		return true
	}

	return false
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// valueOf returns the numeric value of a simple word. EQU constants are
// substituted first; `$` and `0x` prefixes select hexadecimal.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if equ, ok := asm.Equate[word]; ok {
		word = equ
	}

	if strings.HasPrefix(word, "$") {
		v64, perr := strconv.ParseUint(word[1:], 16, 32)
		if perr != nil {
			err = ErrParseNumber(word)
			return
		}
		value = uint32(v64)
		return
	}

	v64, perr := strconv.ParseInt(word, 0, 33)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}
	value = uint32(v64)

	return
}

// parenEval does assembly-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value32, verr := asm.valueOf(str)
		if verr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseOperand classifies a single operand word.
func (asm *Assembler) parseOperand(word string) (op Operand, err error) {
	if len(word) == 0 {
		err = ErrOperandMalformed
		return
	}

	upper := strings.ToUpper(word)

	if strings.HasPrefix(word, "#") {
		rest := word[1:]
		op.Kind = OPERAND_IMMEDIATE
		value, verr := asm.valueOf(rest)
		if verr == nil {
			op.Value = value
			return
		}
		if identRe.MatchString(rest) {
			op.Symbol = rest
			return
		}
		err = errors.Join(ErrOperandMalformed, verr)
		return
	}

	if reg, ok := dataRegisterOf(upper); ok {
		op = Operand{Kind: OPERAND_DATA_REG, Reg: reg}
		return
	}
	if reg, ok := addressRegisterOf(upper); ok {
		op = Operand{Kind: OPERAND_ADDR_REG, Reg: reg}
		return
	}

	if strings.HasPrefix(word, "(") && strings.HasSuffix(word, ")") {
		inner := strings.ToUpper(word[1 : len(word)-1])
		reg, ok := addressRegisterOf(inner)
		if !ok {
			err = ErrOperandMalformed
			return
		}
		op = Operand{Kind: OPERAND_INDIRECT, Reg: reg}
		return
	}

	if value, verr := asm.valueOf(word); verr == nil {
		op = Operand{Kind: OPERAND_ABSOLUTE, Value: value}
		return
	}

	if identRe.MatchString(word) {
		op = Operand{Kind: OPERAND_LABEL, Symbol: word}
		return
	}

	err = ErrOperandMalformed
	return
}

func dataRegisterOf(word string) (reg uint16, ok bool) {
	if len(word) == 2 && word[0] == 'D' && word[1] >= '0' && word[1] <= '7' {
		return uint16(word[1] - '0'), true
	}
	return
}

func addressRegisterOf(word string) (reg uint16, ok bool) {
	if len(word) == 2 && word[0] == 'A' && word[1] >= '0' && word[1] <= '7' {
		return uint16(word[1] - '0'), true
	}
	return
}

// splitOperands splits the operand field on commas.
func splitOperands(fields []string) (words []string) {
	if len(fields) == 0 {
		return
	}

	joined := strings.Join(fields, " ")
	for _, word := range strings.Split(joined, ",") {
		word = strings.TrimSpace(word)
		if len(word) > 0 {
			words = append(words, word)
		}
	}

	return
}

// parseMnemonic splits off the size suffix and validates it against the
// mnemonic's allowed sizes.
func parseMnemonic(word string) (name string, size Size, err error) {
	base, suffix, dotted := strings.Cut(strings.ToUpper(word), ".")
	name = base

	var known bool
	size, known = mnemonicSize[name]
	if !known {
		if _, branch := branchMap[name]; branch {
			size = SIZE_WORD
			known = true
		}
	}
	if !known {
		if strings.HasPrefix(word, ".") {
			err = ErrDirectiveUnknown
		} else {
			err = errors.Join(ErrMnemonicUnknown, errors.New(word))
		}
		return
	}

	if !dotted {
		return
	}

	explicit, ok := sizeSuffix[suffix]
	if !ok {
		err = ErrSizeInvalid
		return
	}

	// MOVE takes .W or .L; everything else only its native size.
	if name == "MOVE" && (explicit == SIZE_WORD || explicit == SIZE_LONG) {
		size = explicit
		return
	}
	if explicit != size {
		err = ErrSizeInvalid
		return
	}

	return
}

// operandEA maps an operand shape to its effective-address field. Only the
// shape matters here; values and symbols resolve in pass two.
func operandEA(op Operand) (ea EA, ok bool) {
	ok = true
	switch op.Kind {
	case OPERAND_DATA_REG:
		ea = EA{Mode: EA_MODE_DATA, Reg: op.Reg}
	case OPERAND_ADDR_REG:
		ea = EA{Mode: EA_MODE_ADDR, Reg: op.Reg}
	case OPERAND_INDIRECT:
		ea = EA{Mode: EA_MODE_INDIRECT, Reg: op.Reg}
	case OPERAND_IMMEDIATE:
		ea = EA{Mode: EA_MODE_EXTENDED, Reg: EA_EXT_IMMEDIATE}
	case OPERAND_ABSOLUTE, OPERAND_LABEL:
		ea = EA{Mode: EA_MODE_EXTENDED, Reg: EA_EXT_ABSOLUTE}
	default:
		ok = false
	}

	return
}

// widthOf computes the statically known encoded width of a statement.
func widthOf(stmt *Statement) (width uint32) {
	width = 2

	if _, branch := branchMap[stmt.Mnemonic]; branch {
		return
	}

	switch stmt.Mnemonic {
	case "DBRA", "JMP":
		width = 4
	case "MOVE", "MOVEA", "ADD", "SUB", "CMP", "MULS", "TST":
		for _, op := range stmt.Operands {
			if ea, ok := operandEA(op); ok {
				width += 2 * uint32(ea.ExtWords(stmt.Size))
			}
		}
	}

	return
}

// Assemble translates assembly source into a Program.
// Assembly is all-or-nothing: on error no image is produced.
func (asm *Assembler) Assemble(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Symbols = make(map[string]uint32, 16)
	asm.statements = asm.statements[:0]
	asm.Equate = maps.Clone(asm.predefine)
	if asm.Equate == nil {
		asm.Equate = map[string]string{}
	}
	asm.counter = 0
	asm.haveEntry = false
	asm.ended = false

	// Pass one: statement records, label addresses, width accounting.
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.ended {
			break
		}

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(text)

		err = asm.parseLine(lineno, line)
		if err != nil {
			return
		}
	}
	if serr := scanner.Err(); serr != nil {
		err = serr
		return
	}

	// Pass two: encode against the completed symbol table.
	for n := range asm.statements {
		stmt := &asm.statements[n]
		lineno, line = stmt.LineNo, stmt.Line

		err = asm.encode(stmt)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Statements: slices.Clone(asm.statements),
		Symbols:    maps.Clone(asm.Symbols),
	}
	if start, ok := asm.Symbols["START"]; ok {
		prog.Entry = start
	} else if asm.haveEntry {
		prog.Entry = asm.entry
	}

	return
}

// defineLabel records a label at the current location counter.
func (asm *Assembler) defineLabel(label string) (err error) {
	if _, ok := asm.Symbols[label]; ok {
		err = errors.Join(ErrLabelDuplicate, errors.New(label))
		return
	}

	asm.Symbols[label] = asm.counter
	return
}

// parseLine handles a single pass-one source line: $() evaluation, EQU,
// labels, directives, and instruction statement records.
func (asm *Assembler) parseLine(lineno int, line string) (err error) {
	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	// NAME EQU value
	if len(fields) >= 2 && strings.EqualFold(fields[1], "EQU") {
		if len(fields) != 3 {
			err = ErrOperandCount
			return
		}
		if _, ok := asm.Equate[fields[0]]; ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[fields[0]] = fields[2]
		return
	}

	// Leading labels, with or without a trailing colon.
	for len(fields) > 0 {
		word := fields[0]
		if strings.HasSuffix(word, ":") {
			err = asm.defineLabel(word[:len(word)-1])
			if err != nil {
				return
			}
			fields = fields[1:]
			continue
		}
		if !isKeyword(word) && len(fields) > 1 && isKeyword(fields[1]) {
			err = asm.defineLabel(word)
			if err != nil {
				return
			}
			fields = fields[1:]
			continue
		}
		break
	}
	if len(fields) == 0 {
		return
	}

	base, suffix, _ := strings.Cut(strings.ToUpper(fields[0]), ".")

	switch base {
	case "ORG":
		if len(fields) != 2 {
			err = ErrOperandCount
			return
		}
		var addr uint32
		addr, err = asm.valueOf(fields[1])
		if err != nil {
			return
		}
		asm.counter = addr
		return
	case "END":
		asm.ended = true
		return
	case "DC", "DS":
		return asm.parseData(lineno, line, base, suffix, splitOperands(fields[1:]))
	}

	return asm.parseInstruction(lineno, line, fields)
}

// parseData handles DC (define constant) and DS (define storage).
func (asm *Assembler) parseData(lineno int, line string, base, suffix string, words []string) (err error) {
	size, ok := sizeSuffix[suffix]
	if suffix == "" {
		size, ok = SIZE_WORD, true
	}
	if !ok || (size == SIZE_BYTE && base == "DC") {
		// Byte constants would break the word-granular image.
		err = ErrSizeInvalid
		return
	}

	if len(words) == 0 {
		err = ErrOperandCount
		return
	}

	stmt := Statement{
		LineNo:   lineno,
		Line:     line,
		Addr:     asm.counter,
		Mnemonic: base,
		Size:     size,
	}

	if base == "DS" {
		if len(words) != 1 {
			err = ErrOperandCount
			return
		}
		var count uint32
		count, err = asm.valueOf(words[0])
		if err != nil {
			return
		}
		stmt.width = count * size.Bytes()
	} else {
		for _, word := range words {
			var op Operand
			op, err = asm.parseOperand(word)
			if err != nil {
				return
			}
			if op.Kind != OPERAND_ABSOLUTE && op.Kind != OPERAND_LABEL {
				err = ErrOperandMalformed
				return
			}
			stmt.Operands = append(stmt.Operands, op)
		}
		stmt.width = uint32(len(words)) * size.Bytes()
	}

	asm.statements = append(asm.statements, stmt)
	asm.counter += stmt.width
	return
}

// parseInstruction builds the pass-one record for one instruction.
func (asm *Assembler) parseInstruction(lineno int, line string, fields []string) (err error) {
	name, size, err := parseMnemonic(fields[0])
	if err != nil {
		return
	}

	stmt := Statement{
		LineNo:   lineno,
		Line:     line,
		Addr:     asm.counter,
		Mnemonic: name,
		Size:     size,
	}

	for _, word := range splitOperands(fields[1:]) {
		var op Operand
		op, err = asm.parseOperand(word)
		if err != nil {
			return
		}
		stmt.Operands = append(stmt.Operands, op)
	}

	stmt.width = widthOf(&stmt)

	if !asm.haveEntry {
		asm.entry = asm.counter
		asm.haveEntry = true
	}

	asm.statements = append(asm.statements, stmt)
	asm.counter += stmt.width
	return
}

// resolve produces the operand's numeric value, looking label references up
// in the symbol table.
func (asm *Assembler) resolve(op Operand) (value uint32, err error) {
	if len(op.Symbol) != 0 {
		addr, ok := asm.Symbols[op.Symbol]
		if !ok {
			err = ErrLabelMissing(op.Symbol)
			return
		}
		value = addr
		return
	}

	value = op.Value
	return
}

// eaWords produces the effective-address field and its extension words.
func (asm *Assembler) eaWords(op Operand, size Size) (ea EA, exts []uint16, err error) {
	ea, ok := operandEA(op)
	if !ok {
		err = ErrOperandMalformed
		return
	}
	if ea.Mode != EA_MODE_EXTENDED {
		return
	}

	value, err := asm.resolve(op)
	if err != nil {
		return
	}

	if op.Kind == OPERAND_IMMEDIATE {
		if size == SIZE_LONG {
			exts = []uint16{uint16(value >> 16), uint16(value)}
			return
		}
		// word immediate: signed or unsigned 16-bit
		if value > 0xffff && value < 0xffff8000 {
			err = ErrOperandRange
			return
		}
		exts = []uint16{uint16(value)}
		return
	}

	// absolute short address
	if value > 0xffff {
		err = errors.Join(ErrOperandRange, ErrAddress(value))
		return
	}
	exts = []uint16{uint16(value)}
	return
}

// branchTarget computes a signed displacement from the word after the
// opcode to the operand's target. A bare number is taken as the raw
// displacement itself.
func (asm *Assembler) branchTarget(stmt *Statement, op Operand, bits int) (disp int32, err error) {
	var wide int64
	switch op.Kind {
	case OPERAND_LABEL:
		var target uint32
		target, err = asm.resolve(op)
		if err != nil {
			return
		}
		wide = int64(target) - int64(stmt.Addr+2)
	case OPERAND_ABSOLUTE:
		wide = int64(int32(op.Value))
	default:
		err = ErrOperandMalformed
		return
	}

	limit := int64(1) << (bits - 1)
	if wide < -limit || wide >= limit {
		err = ErrOperandRange
		return
	}

	disp = int32(wide)
	return
}

// dataRegOperand validates a data-register operand.
func dataRegOperand(op Operand) (reg uint16, err error) {
	if op.Kind != OPERAND_DATA_REG {
		err = ErrOperandMalformed
		return
	}
	reg = op.Reg
	return
}

// quickValue validates a quick immediate in 1..8.
func (asm *Assembler) quickValue(op Operand) (data uint16, err error) {
	if op.Kind != OPERAND_IMMEDIATE {
		err = ErrOperandMalformed
		return
	}
	value, err := asm.resolve(op)
	if err != nil {
		return
	}
	if value < 1 || value > 8 {
		err = ErrOperandRange
		return
	}
	data = uint16(value)
	return
}

// encode is pass two for a single statement.
func (asm *Assembler) encode(stmt *Statement) (err error) {
	ops := stmt.Operands

	need := func(count int) bool {
		if len(ops) != count {
			err = ErrOperandCount
			return false
		}
		return true
	}

	if cond, branch := branchMap[stmt.Mnemonic]; branch {
		if !need(1) {
			return
		}
		var disp int32
		disp, err = asm.branchTarget(stmt, ops[0], 8)
		if err != nil {
			return
		}
		stmt.Words = []uint16{MakeBranch(cond, int8(disp))}
		return
	}

	switch stmt.Mnemonic {
	case "DC":
		for _, op := range ops {
			var value uint32
			value, err = asm.resolve(op)
			if err != nil {
				return
			}
			if stmt.Size == SIZE_LONG {
				stmt.Words = append(stmt.Words, uint16(value>>16), uint16(value))
			} else {
				if value > 0xffff && value < 0xffff8000 {
					err = ErrOperandRange
					return
				}
				stmt.Words = append(stmt.Words, uint16(value))
			}
		}
	case "DS":
		// reserves space, emits nothing
	case "MOVE", "MOVEA":
		if !need(2) {
			return
		}
		src, dst := ops[0], ops[1]
		if stmt.Mnemonic == "MOVEA" && dst.Kind != OPERAND_ADDR_REG {
			err = ErrOperandMalformed
			return
		}
		if dst.Kind == OPERAND_IMMEDIATE {
			err = ErrOperandMalformed
			return
		}
		var srcEA, dstEA EA
		var srcExts, dstExts []uint16
		srcEA, srcExts, err = asm.eaWords(src, stmt.Size)
		if err != nil {
			return
		}
		dstEA, dstExts, err = asm.eaWords(dst, stmt.Size)
		if err != nil {
			return
		}
		stmt.Words = append([]uint16{MakeMove(stmt.Size, srcEA, dstEA)}, srcExts...)
		stmt.Words = append(stmt.Words, dstExts...)
	case "MOVEQ":
		if !need(2) {
			return
		}
		if ops[0].Kind != OPERAND_IMMEDIATE {
			err = ErrOperandMalformed
			return
		}
		var reg uint16
		reg, err = dataRegOperand(ops[1])
		if err != nil {
			return
		}
		var value uint32
		value, err = asm.resolve(ops[0])
		if err != nil {
			return
		}
		signed := int32(value)
		if signed < -128 || signed > 127 {
			err = ErrOperandRange
			return
		}
		stmt.Words = []uint16{MakeMoveq(reg, uint8(signed))}
	case "ADD", "SUB", "CMP", "MULS":
		if !need(2) {
			return
		}
		if ops[0].Kind == OPERAND_ADDR_REG {
			err = ErrOperandMalformed
			return
		}
		var reg uint16
		reg, err = dataRegOperand(ops[1])
		if err != nil {
			return
		}
		var srcEA EA
		var exts []uint16
		srcEA, exts, err = asm.eaWords(ops[0], stmt.Size)
		if err != nil {
			return
		}
		var word uint16
		switch stmt.Mnemonic {
		case "ADD":
			word = MakeAdd(reg, srcEA)
		case "SUB":
			word = MakeSub(reg, srcEA)
		case "CMP":
			word = MakeCmp(reg, srcEA)
		case "MULS":
			word = MakeMuls(reg, srcEA)
		}
		stmt.Words = append([]uint16{word}, exts...)
	case "TST":
		if !need(1) {
			return
		}
		if ops[0].Kind == OPERAND_ADDR_REG || ops[0].Kind == OPERAND_IMMEDIATE {
			err = ErrOperandMalformed
			return
		}
		var srcEA EA
		var exts []uint16
		srcEA, exts, err = asm.eaWords(ops[0], stmt.Size)
		if err != nil {
			return
		}
		stmt.Words = append([]uint16{MakeTst(srcEA)}, exts...)
	case "ADDQ", "SUBQ", "ASL":
		if !need(2) {
			return
		}
		var data uint16
		data, err = asm.quickValue(ops[0])
		if err != nil {
			return
		}
		var reg uint16
		reg, err = dataRegOperand(ops[1])
		if err != nil {
			return
		}
		switch stmt.Mnemonic {
		case "ADDQ":
			stmt.Words = []uint16{MakeQuick(false, data, reg)}
		case "SUBQ":
			stmt.Words = []uint16{MakeQuick(true, data, reg)}
		case "ASL":
			stmt.Words = []uint16{MakeAsl(data, reg)}
		}
	case "DBRA":
		if !need(2) {
			return
		}
		var reg uint16
		reg, err = dataRegOperand(ops[0])
		if err != nil {
			return
		}
		var disp int32
		disp, err = asm.branchTarget(stmt, ops[1], 16)
		if err != nil {
			return
		}
		stmt.Words = []uint16{OPCODE_DBRA | reg, uint16(disp)}
	case "JMP":
		if !need(1) {
			return
		}
		if ops[0].Kind != OPERAND_LABEL && ops[0].Kind != OPERAND_ABSOLUTE {
			err = ErrOperandMalformed
			return
		}
		var target uint32
		target, err = asm.resolve(ops[0])
		if err != nil {
			return
		}
		if target > 0xffff {
			err = errors.Join(ErrOperandRange, ErrAddress(target))
			return
		}
		stmt.Words = []uint16{OPCODE_JMP_ABS, uint16(target)}
	case "TRAP":
		if !need(1) {
			return
		}
		if ops[0].Kind != OPERAND_IMMEDIATE {
			err = ErrOperandMalformed
			return
		}
		var vector uint32
		vector, err = asm.resolve(ops[0])
		if err != nil {
			return
		}
		if vector > 15 {
			err = ErrOperandRange
			return
		}
		stmt.Words = []uint16{MakeTrap(uint16(vector))}
	case "NOP":
		if !need(0) {
			return
		}
		stmt.Words = []uint16{OPCODE_NOP}
	case "RTS":
		if !need(0) {
			return
		}
		stmt.Words = []uint16{OPCODE_RTS}
	case "SIMHALT":
		if !need(0) {
			return
		}
		stmt.Words = []uint16{OPCODE_SIMHALT}
	default:
		err = errors.Join(ErrMnemonicUnknown, errors.New(stmt.Mnemonic))
	}

	return
}
