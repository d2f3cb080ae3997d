package cpu

import (
	"io"
	"iter"
	"slices"
	"strings"
)

// Program is a flat memory image, optionally with the assembler listing
// that produced it.
type Program struct {
	Image   []Word
	Opcodes []Opcode
}

// Debug locates the listing entry covering an address.
type Debug struct {
	*Opcode
	Index int
}

// Instruction is a disassembled instruction, or a data word when Code.Op is
// not valid.
type Instruction struct {
	Address  int
	Code     Code
	Operands []Word
}

// ParseProgram parses a program image: comma-separated signed integers.
func ParseProgram(input io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	text := strings.TrimSpace(string(data))
	tokens := strings.Split(text, ",")

	image := make([]Word, 0, len(tokens))
	for n, token := range tokens {
		var word Word
		word, err = ParseWord(token)
		if err != nil {
			err = ErrParseProgram{Index: n, Token: strings.TrimSpace(token)}
			return
		}
		image = append(image, word)
	}

	prog = &Program{Image: image}

	return
}

// Clone returns a copy of the program whose image may be patched freely.
func (prog *Program) Clone() *Program {
	return &Program{
		Image:   slices.Clone(prog.Image),
		Opcodes: prog.Opcodes,
	}
}

// String renders the image in the comma-separated program format.
func (prog *Program) String() string {
	words := make([]string, len(prog.Image))
	for n, word := range prog.Image {
		words[n] = word.String()
	}

	return strings.Join(words, ",")
}

// Debug returns the listing entry that produced the word at address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Ip && address < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  address - op.Ip,
			}
			break
		}
	}

	return
}

// Disassemble walks the image linearly, yielding instructions where the
// words decode and single data words where they do not.
func (prog *Program) Disassemble() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for address := 0; address < len(prog.Image); {
			inst := Instruction{Address: address}
			code, ok := Decode(prog.Image[address])
			if ok && address+code.Op.Size() <= len(prog.Image) {
				inst.Code = code
				inst.Operands = prog.Image[address+1 : address+code.Op.Size()]
				address += code.Op.Size()
			} else {
				inst.Operands = prog.Image[address : address+1]
				address++
			}
			if !yield(inst) {
				return
			}
		}
	}
}

// String returns the assembler form of the instruction.
func (inst Instruction) String() string {
	if !inst.Code.Op.Valid() {
		return ".data " + inst.Operands[0].String()
	}

	words := []string{inst.Code.Op.String()}
	for n, operand := range inst.Operands {
		words = append(words, inst.Code.Modes[n].Prefix()+operand.String())
	}

	return strings.Join(words, " ")
}
