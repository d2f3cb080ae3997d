package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Machine suspension and state errors
	ErrInputStarvation = errors.New(f("input starvation"))
	ErrFaulted         = errors.New(f("machine faulted"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeImmediate    = errors.New(f("immediate destination"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrAddressing is the fault raised for a negative memory address.
type ErrAddressing struct {
	Address Word
}

func (err ErrAddressing) Error() string {
	return f("addressing fault at %v", err.Address)
}

// ErrOpcode is the fault raised for an instruction word that does not decode.
type ErrOpcode struct {
	Ip   Word
	Word Word
}

func (err ErrOpcode) Error() string {
	return f("bad opcode %v at ip %v", err.Word, err.Ip)
}

// ErrParseProgram is raised for a program image token that is not an integer.
type ErrParseProgram struct {
	Index int
	Token string
}

func (err ErrParseProgram) Error() string {
	return f("malformed program: token %d '%v' is not an integer", err.Index, err.Token)
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("'%v' is not an operand", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}
