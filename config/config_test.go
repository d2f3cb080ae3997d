package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver/arcade"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	conf := Default()
	assert.Equal(int64(4), conf.Amplifier.PhaseHigh)
	assert.Equal(int64(2), conf.Arcade.Quarters)
	assert.Equal("#^v<>", conf.Camera.Scaffold)
	assert.Equal(int64(19690720), conf.Gravity.Target)
	assert.False(conf.Machine.UnknownHalts)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	conf, err := Parse(strings.NewReader(`
[machine]
unknown_halts = true

[amplifier]
phase_low = 5
phase_high = 9
feedback = true

[robot]
start_color = 1

[arcade]
free_play = true
auto_play = true
`))
	assert.NoError(err)
	assert.True(conf.Machine.UnknownHalts)
	assert.Equal(int64(5), conf.Amplifier.PhaseLow)
	assert.Equal(int64(9), conf.Amplifier.PhaseHigh)
	assert.True(conf.Amplifier.FeedbackLoop)
	assert.Equal(int64(1), conf.Robot.StartColor)
	assert.True(conf.Arcade.FreePlay)
	assert.True(conf.Arcade.AutoPlay)
	// Untouched keys keep their defaults.
	assert.Equal(int64(2), conf.Arcade.Quarters)
	assert.Equal(int64(99), conf.Gravity.NounMax)

	_, err = Parse(strings.NewReader("[robot]\ncolour = 1\n"))
	assert.Equal(ErrUndecoded{"robot.colour"}, err)

	_, err = Parse(strings.NewReader("[robot\n"))
	assert.Error(err)
}

func TestLoadWrite(t *testing.T) {
	assert := assert.New(t)

	conf := Default()
	conf.Maze.MaxSteps = 1000
	conf.Gravity.Target = 42

	var buf bytes.Buffer
	require.NoError(t, conf.Write(&buf))
	assert.Contains(buf.String(), "[gravity]")

	path := filepath.Join(t.TempDir(), "intcode.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	assert.NoError(err)
	assert.Equal(conf, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(err, os.ErrNotExist)

	assert.Error(conf.Write(nil))
}

func TestMachineSettings(t *testing.T) {
	assert := assert.New(t)

	conf, err := Parse(strings.NewReader("[machine]\nunknown_halts = true\n"))
	require.NoError(t, err)

	prog := &cpu.Program{Image: cpu.Words(104, 1, 104, 1, 104, 2, 98)}

	arc := arcade.New(prog, conf.Arcade)
	arc.Machine = conf.Machine
	assert.NoError(arc.Run())
	assert.Equal(1, arc.Count(arcade.TILE_BLOCK))

	arc = arcade.New(prog, Default().Arcade)
	arc.Machine = Default().Machine
	assert.ErrorIs(arc.Run(), cpu.ErrFaulted)
}
