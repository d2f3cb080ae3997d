// Package robot drives a hull painting robot. The machine sees the colour
// of the panel under the robot and answers with a colour to paint and a
// direction to turn before stepping forward.
package robot

import (
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
)

const (
	COLOR_BLACK = int64(0)
	COLOR_WHITE = int64(1)

	TURN_LEFT  = int64(0)
	TURN_RIGHT = int64(1)
)

// Headings in clockwise order.
var headings = []driver.Point{
	{X: 0, Y: -1}, // up
	{X: 1, Y: 0},  // right
	{X: 0, Y: 1},  // down
	{X: -1, Y: 0}, // left
}

// Config sets the starting conditions of the robot.
type Config struct {
	StartColor int64 `toml:"start_color"` // Colour of the starting panel.
	MaxSteps   int   `toml:"max_steps"`   // If non-zero, limit on moves.
}

// DefaultConfig starts the robot on a black hull.
func DefaultConfig() Config {
	return Config{
		StartColor: COLOR_BLACK,
	}
}

// Robot is the painting robot and the hull it paints.
type Robot struct {
	Verbose bool
	Machine driver.Machine // Settings for the robot machine.
	Program *cpu.Program
	Config

	Position driver.Point // Current position.
	Heading  int          // Index into the clockwise headings, 0 is up.
	Steps    int          // Moves made.

	hull    map[driver.Point]int64
	painted map[driver.Point]bool
}

// New creates a robot for prog at the origin, facing up.
func New(prog *cpu.Program, config Config) (bot *Robot) {
	bot = &Robot{
		Program: prog,
		Config:  config,
	}
	bot.Reset()

	return
}

// Reset clears the hull and returns the robot to the origin.
func (bot *Robot) Reset() {
	bot.Position = driver.Point{}
	bot.Heading = 0
	bot.Steps = 0
	bot.hull = map[driver.Point]int64{
		{}: bot.StartColor,
	}
	bot.painted = map[driver.Point]bool{}
}

// Color returns the colour of a panel.
func (bot *Robot) Color(pt driver.Point) int64 {
	return bot.hull[pt]
}

// Painted returns the number of panels painted at least once.
func (bot *Robot) Painted() int {
	return len(bot.painted)
}

// Run runs the robot program until it halts.
func (bot *Robot) Run() (err error) {
	m := bot.Machine.Boot(bot.Program)

	for {
		m.PushInput(cpu.W(bot.Color(bot.Position)))

		var value cpu.Word
		var ok bool
		value, ok, err = m.Next()
		if err != nil {
			return
		}
		if !ok {
			if m.State() == cpu.STATE_HALTED {
				return
			}
			err = driver.ErrStalled
			return
		}

		var color int64
		color, err = driver.Int("color", value)
		if err != nil {
			return
		}
		if color != COLOR_BLACK && color != COLOR_WHITE {
			err = driver.ErrBadOutput{What: "color", Value: value}
			return
		}

		value, err = driver.Expect(m)
		if err != nil {
			return
		}
		var turn int64
		turn, err = driver.Int("turn", value)
		if err != nil {
			return
		}

		switch turn {
		case TURN_LEFT:
			bot.Heading = (bot.Heading + len(headings) - 1) % len(headings)
		case TURN_RIGHT:
			bot.Heading = (bot.Heading + 1) % len(headings)
		default:
			err = driver.ErrBadOutput{What: "turn", Value: value}
			return
		}

		bot.hull[bot.Position] = color
		bot.painted[bot.Position] = true

		if bot.MaxSteps > 0 && bot.Steps >= bot.MaxSteps {
			err = driver.ErrStepLimit
			return
		}

		bot.Position = bot.Position.Add(headings[bot.Heading])
		bot.Steps++

		if bot.Verbose {
			log.Printf("robot: paint %d turn %d to %v", color, turn, bot.Position)
		}
	}
}

// Render draws the white panels of the hull.
func (bot *Robot) Render() string {
	white := map[driver.Point]bool{}
	for pt, color := range bot.hull {
		if color == COLOR_WHITE {
			white[pt] = true
		}
	}

	lo, hi := driver.Bounds(white)
	return driver.Render(lo, hi, func(pt driver.Point) byte {
		if white[pt] {
			return '#'
		}
		return '.'
	})
}
