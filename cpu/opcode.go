package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is an operation code, the low two decimal digits of an instruction.
type CodeOp int

const (
	OP_ADD  = CodeOp(1)  // add
	OP_MUL  = CodeOp(2)  // mul
	OP_IN   = CodeOp(3)  // in
	OP_OUT  = CodeOp(4)  // out
	OP_JT   = CodeOp(5)  // jt
	OP_JF   = CodeOp(6)  // jf
	OP_LT   = CodeOp(7)  // lt
	OP_EQ   = CodeOp(8)  // eq
	OP_ARB  = CodeOp(9)  // arb
	OP_HALT = CodeOp(99) // hlt
)

var opName = map[CodeOp]string{
	OP_ADD:  "add",
	OP_MUL:  "mul",
	OP_IN:   "in",
	OP_OUT:  "out",
	OP_JT:   "jt",
	OP_JF:   "jf",
	OP_LT:   "lt",
	OP_EQ:   "eq",
	OP_ARB:  "arb",
	OP_HALT: "hlt",
}

var opParams = map[CodeOp]int{
	OP_ADD:  3,
	OP_MUL:  3,
	OP_IN:   1,
	OP_OUT:  1,
	OP_JT:   2,
	OP_JF:   2,
	OP_LT:   3,
	OP_EQ:   3,
	OP_ARB:  1,
	OP_HALT: 0,
}

// opWrites marks the operand index an opcode stores through, if any.
var opWrites = map[CodeOp]int{
	OP_ADD: 2,
	OP_MUL: 2,
	OP_IN:  0,
	OP_LT:  2,
	OP_EQ:  2,
}

// Valid reports whether op is part of the instruction set.
func (op CodeOp) Valid() bool {
	_, ok := opName[op]
	return ok
}

// Params returns the number of operands op consumes.
func (op CodeOp) Params() int {
	return opParams[op]
}

// Writes returns the index of the destination operand, if op stores a result.
func (op CodeOp) Writes() (index int, ok bool) {
	index, ok = opWrites[op]
	return
}

// Size returns the instruction length in words, opcode included.
func (op CodeOp) Size() int {
	return op.Params() + 1
}

func (op CodeOp) String() string {
	name, ok := opName[op]
	if !ok {
		return fmt.Sprintf("CodeOp(%d)", int(op))
	}
	return name
}

// CodeMode is a parameter addressing mode.
type CodeMode int

const (
	MODE_POSITION  = CodeMode(0) // position
	MODE_IMMEDIATE = CodeMode(1) // immediate
	MODE_RELATIVE  = CodeMode(2) // relative
)

// Prefix returns the assembler operand prefix for the mode.
func (mode CodeMode) Prefix() string {
	switch mode {
	case MODE_IMMEDIATE:
		return "#"
	case MODE_RELATIVE:
		return "@"
	}
	return ""
}

func (mode CodeMode) String() string {
	switch mode {
	case MODE_POSITION:
		return "position"
	case MODE_IMMEDIATE:
		return "immediate"
	case MODE_RELATIVE:
		return "relative"
	}
	return fmt.Sprintf("CodeMode(%d)", int(mode))
}

// Code is a decoded instruction: an operation and one mode per operand.
type Code struct {
	Op    CodeOp
	Modes []CodeMode
}

// Decode splits an instruction word into its operation and operand modes.
//
// The opcode is word mod 100; mode digits follow from word / 100 with the
// first operand least significant, and missing digits mean position mode.
func Decode(word Word) (code Code, ok bool) {
	if word.Negative() {
		return
	}

	modes, op := word.divmod100()
	code.Op = CodeOp(op)
	if !code.Op.Valid() {
		return
	}

	code.Modes = make([]CodeMode, code.Op.Params())
	for n := range code.Modes {
		var digit uint64
		modes, digit = modes.divmod10()
		if digit > uint64(MODE_RELATIVE) {
			return
		}
		code.Modes[n] = CodeMode(digit)
	}

	ok = true
	return
}

// MakeCode creates a decoded instruction, padding modes to the operand count.
func MakeCode(op CodeOp, modes ...CodeMode) (code Code) {
	code.Op = op
	code.Modes = make([]CodeMode, op.Params())
	copy(code.Modes, modes)
	return
}

// Word encodes the instruction back to its numeric form.
func (code Code) Word() Word {
	value := int64(code.Op)
	scale := int64(100)
	for _, mode := range code.Modes {
		value += int64(mode) * scale
		scale *= 10
	}
	return W(value)
}

// String returns the assembly language representation of the instruction.
func (code Code) String() (out string) {
	var modes []string
	for _, mode := range code.Modes {
		modes = append(modes, mode.String())
	}

	out = code.Op.String()
	if len(modes) > 0 {
		out += " (" + strings.Join(modes, ",") + ")"
	}

	return
}
