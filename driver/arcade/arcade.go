// Package arcade drives an arcade cabinet. The machine draws the screen as
// (x, y, tile) triples and reports the score at x = -1, y = 0; it reads the
// joystick position when it wants to move the paddle.
package arcade

import (
	"fmt"
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
)

// Tile is the kind of a screen cell.
type Tile int64

const (
	TILE_EMPTY  = Tile(0) // empty
	TILE_WALL   = Tile(1) // wall
	TILE_BLOCK  = Tile(2) // block
	TILE_PADDLE = Tile(3) // paddle
	TILE_BALL   = Tile(4) // ball
)

var tileGlyph = []byte{' ', '|', '#', '-', 'o'}

func (tile Tile) String() string {
	switch tile {
	case TILE_EMPTY:
		return "empty"
	case TILE_WALL:
		return "wall"
	case TILE_BLOCK:
		return "block"
	case TILE_PADDLE:
		return "paddle"
	case TILE_BALL:
		return "ball"
	}
	return fmt.Sprintf("Tile(%d)", int64(tile))
}

// Config controls how the cabinet is played.
type Config struct {
	FreePlay bool  `toml:"free_play"` // Patch address 0 with Quarters before booting.
	Quarters int64 `toml:"quarters"`  // Value written for free play.
	AutoPlay bool  `toml:"auto_play"` // Move the joystick to follow the ball.
}

// DefaultConfig draws the screen without playing.
func DefaultConfig() Config {
	return Config{
		Quarters: 2,
	}
}

// Arcade is the cabinet and the state of its screen.
type Arcade struct {
	Verbose bool
	Machine driver.Machine // Settings for the cabinet machine.
	Program *cpu.Program
	Config

	Screen map[driver.Point]Tile
	Score  cpu.Word
	Moves  int // Joystick inputs given.

	ball, paddle driver.Point
}

// New creates a cabinet for prog.
func New(prog *cpu.Program, config Config) *Arcade {
	return &Arcade{
		Program: prog,
		Config:  config,
		Screen:  map[driver.Point]Tile{},
	}
}

// Count returns the number of screen cells showing tile.
func (arc *Arcade) Count(tile Tile) (count int) {
	for _, shown := range arc.Screen {
		if shown == tile {
			count++
		}
	}
	return
}

// joystick returns the move that brings the paddle under the ball.
func (arc *Arcade) joystick() int64 {
	switch {
	case arc.ball.X < arc.paddle.X:
		return -1
	case arc.ball.X > arc.paddle.X:
		return 1
	}
	return 0
}

// draw applies one output triple.
func (arc *Arcade) draw(triple [3]cpu.Word) (err error) {
	x, err := driver.Int("x", triple[0])
	if err != nil {
		return
	}
	y, err := driver.Int("y", triple[1])
	if err != nil {
		return
	}

	if x == -1 && y == 0 {
		arc.Score = triple[2]
		if arc.Verbose {
			log.Printf("arcade: score %v", arc.Score)
		}
		return
	}

	value, err := driver.Int("tile", triple[2])
	if err != nil {
		return
	}
	tile := Tile(value)
	if tile < TILE_EMPTY || tile > TILE_BALL {
		err = driver.ErrBadOutput{What: "tile", Value: triple[2]}
		return
	}

	pt := driver.Point{X: x, Y: y}
	arc.Screen[pt] = tile
	switch tile {
	case TILE_BALL:
		arc.ball = pt
	case TILE_PADDLE:
		arc.paddle = pt
	}

	return
}

// Run boots the cabinet and runs it until the program halts.
func (arc *Arcade) Run() (err error) {
	prog := arc.Program
	if arc.FreePlay {
		if len(prog.Image) == 0 {
			err = driver.ErrNoSolution
			return
		}
		prog = prog.Clone()
		prog.Image[0] = cpu.W(arc.Quarters)
	}

	m := arc.Machine.Boot(prog)

	var triple [3]cpu.Word
	filled := 0
	for {
		var value cpu.Word
		var ok bool
		value, ok, err = m.Next()
		if err != nil {
			return
		}

		if ok {
			triple[filled] = value
			filled++
			if filled == len(triple) {
				filled = 0
				err = arc.draw(triple)
				if err != nil {
					return
				}
			}
			continue
		}

		if m.State() == cpu.STATE_HALTED {
			if filled != 0 {
				err = driver.ErrUnexpectedHalt
			}
			return
		}

		if !arc.AutoPlay {
			err = driver.ErrStalled
			return
		}

		arc.Moves++
		m.PushInput(cpu.W(arc.joystick()))
	}
}

// Render draws the screen.
func (arc *Arcade) Render() string {
	lo, hi := driver.Bounds(arc.Screen)
	return driver.Render(lo, hi, func(pt driver.Point) byte {
		return tileGlyph[arc.Screen[pt]]
	})
}
