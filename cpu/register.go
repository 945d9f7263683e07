package cpu

// Flags is the condition code register, one boolean per flag.
type Flags struct {
	Zero     bool
	Negative bool
	Carry    bool
	Overflow bool
	Extend   bool
}

// setLogic recomputes the flags for a result with no carry semantics:
// Zero and Negative from the result, Carry and Overflow cleared.
// Extend is untouched.
func (fl *Flags) setLogic(result uint32) {
	fl.Zero = result == 0
	fl.Negative = (result >> 31) != 0
	fl.Carry = false
	fl.Overflow = false
}

// setAdd recomputes all flags for a 32-bit addition a + b = result.
// Overflow follows the operand-sign rule: set when both operands share a
// sign and the result's sign differs from theirs.
func (fl *Flags) setAdd(a, b, result uint32) {
	fl.Zero = result == 0
	fl.Negative = (result >> 31) != 0
	fl.Carry = result < a
	fl.Extend = fl.Carry
	fl.Overflow = ((a^b)>>31) == 0 && ((a^result)>>31) != 0
}

// setSub recomputes all flags for a 32-bit subtraction a - b = result.
func (fl *Flags) setSub(a, b, result uint32) {
	fl.Zero = result == 0
	fl.Negative = (result >> 31) != 0
	fl.Carry = b > a
	fl.Extend = fl.Carry
	fl.Overflow = ((a^b)>>31) != 0 && ((b^result)>>31) == 0
}

// setCmp is setSub without the Extend update; compares never touch X.
func (fl *Flags) setCmp(a, b, result uint32) {
	extend := fl.Extend
	fl.setSub(a, b, result)
	fl.Extend = extend
}

// String renders the flags in XNZVC order, dashes for clear bits.
func (fl Flags) String() string {
	ccr := []byte("-----")
	if fl.Extend {
		ccr[0] = 'X'
	}
	if fl.Negative {
		ccr[1] = 'N'
	}
	if fl.Zero {
		ccr[2] = 'Z'
	}
	if fl.Overflow {
		ccr[3] = 'V'
	}
	if fl.Carry {
		ccr[4] = 'C'
	}

	return string(ccr)
}
