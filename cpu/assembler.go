// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/internal"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Opcode represents a line of assembled code with its source location and
// generated memory words.
type Opcode struct {
	LineNo int            // Source line number.
	Ip     int            // Address of the first generated word.
	Words  []string       // Source words, after expansion.
	Codes  []Word         // Generated memory words.
	Links  map[int]string // Index into Codes of words resolved from labels.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"POSITION":  fmt.Sprintf("%d", MODE_POSITION),
	"IMMEDIATE": fmt.Sprintf("%d", MODE_IMMEDIATE),
	"RELATIVE":  fmt.Sprintf("%d", MODE_RELATIVE),
}

// mnemonicMap maps instruction names to operation codes.
var mnemonicMap = map[string]CodeOp{
	"add":  OP_ADD,
	"mul":  OP_MUL,
	"in":   OP_IN,
	"out":  OP_OUT,
	"jt":   OP_JT,
	"jf":   OP_JF,
	"lt":   OP_LT,
	"eq":   OP_EQ,
	"arb":  OP_ARB,
	"hlt":  OP_HALT,
	"halt": OP_HALT,
}

var (
	reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	reChar  = regexp.MustCompile(`'\\?[^']'`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass macro assembler for the machine's instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Defines returns an iterator over the system equates and predefines.
func (asm *Assembler) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(sysEquate), maps.All(asm.predefine))
}

// splitMode separates an operand's addressing prefix from its value.
func splitMode(word string) (mode CodeMode, value string) {
	value = word
	switch {
	case strings.HasPrefix(word, "#"):
		mode = MODE_IMMEDIATE
		value = word[1:]
	case strings.HasPrefix(word, "@"):
		mode = MODE_RELATIVE
		value = word[1:]
	}

	return
}

// valueOf returns the value of a simple word. Words that name a label are
// returned as a link to resolve once all labels are known.
func (asm *Assembler) valueOf(word string) (value Word, label string, err error) {
	if equate, ok := asm.Equate[word]; ok {
		word = equate
	}

	if len(word) == 0 {
		err = ErrParseOperand(word)
		return
	}

	value, err = ParseWord(word)
	if err == nil {
		return
	}

	v64, perr := strconv.ParseInt(word, 0, 64)
	if perr == nil {
		value = W(v64)
		err = nil
		return
	}

	if reLabel.MatchString(word) {
		label = word
		err = nil
		return
	}

	err = ErrParseOperand(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value Word, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		var word Word
		var label string
		word, label, err = asm.valueOf(key)
		if err != nil || len(label) != 0 {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		v64, ok := word.Int64()
		if !ok {
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
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
	value = W(st_int64)
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reChar.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return value.String()
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentIp()
		if asm.Verbose {
			log.Printf("asm: label %v = %v", label, asm.Label[label])
		}
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// %% prefixes labels local to this expansion.
		local := fmt.Sprintf("%v_%v_%v_", name, lineno, asm.currentIp())
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "%%", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the address of the next generated word.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Codes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = make(map[string]string)
	for attr, val := range asm.Defines() {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	var image []Word
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		for index, label := range op.Links {
			ip, ok := asm.Label[label]
			if !ok {
				line = strings.Join(op.Words, " ")
				lineno = op.LineNo
				err = ErrLabelMissing(label)
				return
			}
			op.Codes[index] = W(int64(ip))
		}

		image = append(image, op.Codes...)
	}

	prog = &Program{
		Image:   image,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Word
	links := map[int]string{}

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Codes: codes, Links: links}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	// Alternate syntax substitutions
	switch {
	case len(words) == 2 && words[0] == "jmp":
		// jmp TARGET => jt #1 TARGET
		words = []string{"jt", "#1", words[1]}
	case len(words) == 3 && words[0] == "mov":
		// mov SRC DST => add SRC #0 DST
		words = []string{"add", words[1], "#0", words[2]}
	default:
		// unchanged
	}

	if words[0] == ".data" {
		for _, word := range words[1:] {
			var value Word
			var label string
			value, label, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if len(label) != 0 {
				links[len(codes)] = label
			}
			codes = append(codes, value)
		}
		if len(codes) == 0 {
			err = ErrOpcodeValueMissing
		}
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]
	if len(args) < op.Params() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.Params() {
		err = ErrOpcodeExtraArgs
		return
	}

	dst, writes := op.Writes()
	modes := make([]CodeMode, op.Params())
	operands := make([]Word, op.Params())
	for n, arg := range args {
		mode, text := splitMode(arg)
		if writes && dst == n && mode == MODE_IMMEDIATE {
			err = ErrOpcodeImmediate
			return
		}
		var label string
		operands[n], label, err = asm.valueOf(text)
		if err != nil {
			return
		}
		if len(label) != 0 {
			links[1+n] = label
		}
		modes[n] = mode
	}

	codes = append(codes, MakeCode(op, modes...).Word())
	codes = append(codes, operands...)

	return
}
