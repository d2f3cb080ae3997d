package arcade

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
)

func assemble(t *testing.T, program ...string) *cpu.Program {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	return prog
}

func TestArcade_Draw(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".macro TILE x y tile",
		"        out #x",
		"        out #y",
		"        out #tile",
		".endm",
		"        TILE 1 2 3",
		"        TILE 6 5 4",
		"        TILE 0 0 1",
		"        TILE 2 0 2",
		"        TILE 3 0 2",
		"        TILE 3 0 0",
		"        TILE -1 0 12345",
		"        hlt",
	)

	arc := New(prog, DefaultConfig())
	assert.NoError(arc.Run())

	assert.Equal(1, arc.Count(TILE_BLOCK))
	assert.Equal(1, arc.Count(TILE_WALL))
	assert.Equal(1, arc.Count(TILE_PADDLE))
	assert.Equal(1, arc.Count(TILE_BALL))
	assert.Equal(1, arc.Count(TILE_EMPTY))
	assert.Equal(cpu.W(12345), arc.Score)
	assert.Equal(TILE_BALL, arc.Screen[driver.Point{X: 6, Y: 5}])
	assert.Equal("ball", TILE_BALL.String())

	screen := arc.Render()
	lines := strings.Split(strings.TrimSuffix(screen, "\n"), "\n")
	if assert.Len(lines, 6) {
		assert.Equal("| #    ", lines[0])
		assert.Equal(" -     ", lines[2])
		assert.Equal("      o", lines[5])
	}
}

func TestArcade_AutoPlay(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"        out #1",
		"        out #0",
		"        out #3",
		"        out #3",
		"        out #0",
		"        out #4",
		"        in move",
		"        out #-1",
		"        out #0",
		"        out move",
		"        hlt",
		"move:   .data 0",
	)

	arc := New(prog, DefaultConfig())
	assert.ErrorIs(arc.Run(), driver.ErrStalled)

	arc = New(prog, Config{AutoPlay: true})
	assert.NoError(arc.Run())
	assert.Equal(cpu.W(1), arc.Score)
	assert.Equal(1, arc.Moves)
}

func TestArcade_FreePlay(t *testing.T) {
	assert := assert.New(t)

	// Address 0 selects add or mul, so the score shows whether it was patched.
	prog, err := cpu.ParseProgram(strings.NewReader("1,12,13,14,104,-1,104,0,4,14,99,0,3,5,0"))
	require.NoError(t, err)

	arc := New(prog, DefaultConfig())
	assert.NoError(arc.Run())
	assert.Equal(cpu.W(8), arc.Score)

	arc = New(prog, Config{FreePlay: true, Quarters: 2})
	assert.NoError(arc.Run())
	assert.Equal(cpu.W(15), arc.Score)
	assert.Equal(cpu.W(1), prog.Image[0])

	arc = New(&cpu.Program{}, Config{FreePlay: true})
	assert.ErrorIs(arc.Run(), driver.ErrNoSolution)
}

func TestArcade_Errors(t *testing.T) {
	assert := assert.New(t)

	arc := New(assemble(t, "out #1", "out #1", "out #9", "hlt"), DefaultConfig())
	assert.Equal(driver.ErrBadOutput{What: "tile", Value: cpu.W(9)}, arc.Run())

	arc = New(assemble(t, "out #1", "out #1", "hlt"), DefaultConfig())
	assert.ErrorIs(arc.Run(), driver.ErrUnexpectedHalt)
}

func TestArcade_UnknownHalts(t *testing.T) {
	assert := assert.New(t)

	prog := &cpu.Program{Image: cpu.Words(104, 1, 104, 1, 104, 2, 98)}

	arc := New(prog, DefaultConfig())
	assert.ErrorIs(arc.Run(), cpu.ErrFaulted)

	arc = New(prog, DefaultConfig())
	arc.Machine = driver.Machine{UnknownHalts: true}
	assert.NoError(arc.Run())
	assert.Equal(1, arc.Count(TILE_BLOCK))
}
