package robot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
)

// script assembles a program that reads a colour before each scripted
// (paint, turn) pair and keeps the colours it read from address 1000 on.
func script(t *testing.T, pairs ...[2]int64) *cpu.Program {
	var lines []string
	for n, pair := range pairs {
		lines = append(lines,
			fmt.Sprintf("in %d", 1000+n),
			fmt.Sprintf("out #%d", pair[0]),
			fmt.Sprintf("out #%d", pair[1]),
		)
	}
	lines = append(lines, "hlt")

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return prog
}

func TestRobot(t *testing.T) {
	assert := assert.New(t)

	prog := script(t,
		[2]int64{1, 0}, [2]int64{0, 0}, [2]int64{1, 0}, [2]int64{1, 0},
		[2]int64{0, 1}, [2]int64{1, 0}, [2]int64{1, 0},
	)

	bot := New(prog, DefaultConfig())
	assert.NoError(bot.Run())

	assert.Equal(6, bot.Painted())
	assert.Equal(7, bot.Steps)
	assert.Equal(driver.Point{X: 0, Y: -1}, bot.Position)
	assert.Equal(3, bot.Heading)
	assert.Equal(COLOR_BLACK, bot.Color(driver.Point{}))
	assert.Equal(COLOR_WHITE, bot.Color(driver.Point{X: 1, Y: -1}))
	assert.Equal("..#\n..#\n##.\n", bot.Render())
}

func TestRobot_StartColor(t *testing.T) {
	assert := assert.New(t)

	// Echo the colour under the robot and always turn right.
	prog, err := cpu.ParseProgram(strings.NewReader("3,100,4,100,104,1,1105,1,0"))
	require.NoError(t, err)

	bot := New(prog, Config{StartColor: COLOR_WHITE, MaxSteps: 8})
	err = bot.Run()
	assert.ErrorIs(err, driver.ErrStepLimit)
	assert.Equal(8, bot.Steps)
	assert.Equal(4, bot.Painted())
	assert.Equal("#\n", bot.Render())

	bot.Reset()
	assert.Equal(0, bot.Painted())
	assert.Equal(COLOR_WHITE, bot.Color(driver.Point{}))
}

func TestRobot_Errors(t *testing.T) {
	assert := assert.New(t)

	bot := New(script(t, [2]int64{2, 0}), DefaultConfig())
	assert.Equal(driver.ErrBadOutput{What: "color", Value: cpu.W(2)}, bot.Run())

	bot = New(script(t, [2]int64{1, 7}), DefaultConfig())
	assert.Equal(driver.ErrBadOutput{What: "turn", Value: cpu.W(7)}, bot.Run())

	prog, err := cpu.ParseProgram(strings.NewReader("3,100,104,1,99"))
	require.NoError(t, err)
	bot = New(prog, DefaultConfig())
	assert.ErrorIs(bot.Run(), driver.ErrUnexpectedHalt)

	prog, err = cpu.ParseProgram(strings.NewReader("3,100,3,100,99"))
	require.NoError(t, err)
	bot = New(prog, DefaultConfig())
	assert.ErrorIs(bot.Run(), driver.ErrStalled)
}
