package gravity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
)

func load(t *testing.T, text string) *cpu.Program {
	prog, err := cpu.ParseProgram(strings.NewReader(text))
	require.NoError(t, err)
	return prog
}

func TestEvaluate(t *testing.T) {
	assert := assert.New(t)

	prog := load(t, "1,9,10,3,2,3,11,0,99,30,40,50")

	result, err := Evaluate(driver.Machine{}, prog, 9, 10)
	assert.NoError(err)
	assert.Equal(cpu.W(3500), result)
	assert.Equal(cpu.W(9), prog.Image[1])

	_, err = Evaluate(driver.Machine{}, load(t, "1,0"), 0, 0)
	assert.ErrorIs(err, driver.ErrNoSolution)

	_, err = Evaluate(driver.Machine{}, load(t, "3,0,0,99"), 0, 0)
	assert.ErrorIs(err, driver.ErrStalled)
}

func TestSearch(t *testing.T) {
	assert := assert.New(t)

	// Address 0 ends up as the sum of the cells the noun and verb name.
	prog := load(t, "1,0,0,0,99,10,20,30,40")

	config := Config{Target: 70, NounMax: 8, VerbMax: 8}
	answer, err := Search(driver.Machine{}, prog, config)
	assert.NoError(err)
	assert.Equal(int64(708), answer)

	config.Target = 1000
	_, err = Search(driver.Machine{}, prog, config)
	assert.ErrorIs(err, driver.ErrNoSolution)

	// Address 4 runs the sum as an opcode: only 99 halts cleanly.
	prog = load(t, "1,0,0,4,0,98")
	answer, err = Search(driver.Machine{Verbose: true}, prog, Config{Target: 1, NounMax: 9, VerbMax: 9})
	assert.NoError(err)
	assert.Equal(int64(5), answer)

	_, err = Search(driver.Machine{}, load(t, "1,0"), DefaultConfig())
	assert.ErrorIs(err, driver.ErrNoSolution)
}

func TestEvaluateUnknownHalts(t *testing.T) {
	assert := assert.New(t)

	prog := load(t, "1,0,0,0,98")

	_, err := Evaluate(driver.Machine{}, prog, 0, 0)
	assert.ErrorIs(err, cpu.ErrFaulted)

	result, err := Evaluate(driver.Machine{UnknownHalts: true}, prog, 0, 0)
	assert.NoError(err)
	assert.Equal(cpu.W(2), result)
}
