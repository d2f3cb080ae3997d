package cpu

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgram(t *testing.T) {
	assert := assert.New(t)

	prog, err := ParseProgram(strings.NewReader("1, 2,-3,\n4\n"))
	assert.NoError(err)
	assert.Equal(Words(1, 2, -3, 4), prog.Image)
	assert.Equal("1,2,-3,4", prog.String())

	prog, err = ParseProgram(strings.NewReader(quine))
	assert.NoError(err)
	assert.Equal(quine, prog.String())

	table := [](struct {
		text  string
		index int
		token string
	}){
		{"1,2,x", 2, "x"},
		{"1,,2", 1, ""},
		{"", 0, ""},
		{"1;2", 0, "1;2"},
	}

	for _, entry := range table {
		_, err = ParseProgram(strings.NewReader(entry.text))
		assert.Equal(ErrParseProgram{Index: entry.index, Token: entry.token}, err, entry.text)
	}
}

func TestProgram_Clone(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Image: Words(1, 0, 0, 0, 99)}
	patched := prog.Clone()
	patched.Image[1] = W(12)

	assert.Equal(W(0), prog.Image[1])
	assert.Equal(W(12), patched.Image[1])
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"in", "5"}, Codes: Words(3, 5)},
			{LineNo: 2, Ip: 2, Words: []string{"out", "5"}, Codes: Words(4, 5)},
			{LineNo: 4, Ip: 4, Words: []string{"hlt"}, Codes: Words(99)},
		},
	}

	dbg := prog.Debug(0)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(1, dbg.LineNo)
		assert.Equal(0, dbg.Index)
	}

	dbg = prog.Debug(3)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(2, dbg.LineNo)
		assert.Equal(1, dbg.Index)
	}

	dbg = prog.Debug(4)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(4, dbg.LineNo)
	}

	dbg = prog.Debug(5)
	assert.Nil(dbg.Opcode)
}

func TestProgram_Disassemble(t *testing.T) {
	assert := assert.New(t)

	prog, err := ParseProgram(strings.NewReader(quine))
	assert.NoError(err)

	var listing []string
	for inst := range prog.Disassemble() {
		listing = append(listing, inst.String())
	}

	assert.Equal([]string{
		"arb #1",
		"out @-1",
		"add 100 #1 100",
		"eq 100 #16 101",
		"jf 101 #0",
		"hlt",
	}, listing)

	prog = &Program{Image: Words(1002, 4, 3, 4, 33, -7, 1101)}
	insts := slices.Collect(prog.Disassemble())
	if assert.Len(insts, 4) {
		assert.Equal("mul 4 #3 4", insts[0].String())
		assert.Equal(".data 33", insts[1].String())
		assert.Equal(".data -7", insts[2].String())
		assert.Equal(6, insts[3].Address)
		assert.Equal(".data 1101", insts[3].String())
	}
}
