// Package maze drives a repair droid through an unknown maze to find the
// oxygen system, then measures the maze by breadth-first search.
package maze

import (
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
	"github.com/ezrec/intcode/internal"
)

// Direction is a droid movement command.
type Direction int64

const (
	NORTH = Direction(1)
	SOUTH = Direction(2)
	WEST  = Direction(3)
	EAST  = Direction(4)
)

// Directions lists the movement commands in the order they are tried.
var Directions = []Direction{NORTH, SOUTH, WEST, EAST}

// Delta returns the grid step for the direction.
func (dir Direction) Delta() driver.Point {
	switch dir {
	case NORTH:
		return driver.Point{X: 0, Y: -1}
	case SOUTH:
		return driver.Point{X: 0, Y: 1}
	case WEST:
		return driver.Point{X: -1, Y: 0}
	case EAST:
		return driver.Point{X: 1, Y: 0}
	}
	return driver.Point{}
}

// Reverse returns the opposite direction.
func (dir Direction) Reverse() Direction {
	switch dir {
	case NORTH:
		return SOUTH
	case SOUTH:
		return NORTH
	case WEST:
		return EAST
	case EAST:
		return WEST
	}
	return dir
}

// Status is the droid's reply to a movement command.
type Status int64

const (
	STATUS_WALL   = Status(0) // hit a wall, did not move
	STATUS_MOVED  = Status(1) // moved
	STATUS_OXYGEN = Status(2) // moved onto the oxygen system
)

// Droid moves one cell at a time.
type Droid interface {
	Move(dir Direction) (status Status, err error)
}

// MachineDroid is a droid controlled by a running program.
type MachineDroid struct {
	Machine *cpu.Machine
}

var _ Droid = (*MachineDroid)(nil)

// NewDroid boots a droid program with the given machine settings.
func NewDroid(prog *cpu.Program, machine driver.Machine) *MachineDroid {
	return &MachineDroid{Machine: machine.Boot(prog)}
}

func (droid *MachineDroid) Move(dir Direction) (status Status, err error) {
	droid.Machine.PushInput(cpu.W(int64(dir)))

	value, err := driver.Expect(droid.Machine)
	if err != nil {
		return
	}

	n, err := driver.Int("status", value)
	if err != nil {
		return
	}

	status = Status(n)
	if status < STATUS_WALL || status > STATUS_OXYGEN {
		err = driver.ErrBadOutput{What: "status", Value: value}
	}

	return
}

// Config limits the exploration.
type Config struct {
	MaxSteps int `toml:"max_steps"` // If non-zero, limit on droid commands.
}

func DefaultConfig() Config {
	return Config{}
}

// Maze is the map built by exploring with a droid. The droid starts at
// the origin.
type Maze struct {
	Verbose bool
	Config

	Open   map[driver.Point]bool
	Walls  map[driver.Point]bool
	Oxygen driver.Point
	Found  bool // Set once the oxygen system is located.
	Steps  int  // Droid commands issued.
}

// New creates an empty maze.
func New(config Config) *Maze {
	return &Maze{
		Config: config,
		Open:   map[driver.Point]bool{{}: true},
		Walls:  map[driver.Point]bool{},
	}
}

func (mz *Maze) move(droid Droid, dir Direction) (status Status, err error) {
	if mz.MaxSteps > 0 && mz.Steps >= mz.MaxSteps {
		err = driver.ErrStepLimit
		return
	}
	mz.Steps++

	return droid.Move(dir)
}

// Explore walks the droid through every reachable cell, depth first,
// keeping the path back to the origin on an explicit stack. The droid ends
// at the origin.
func (mz *Maze) Explore(droid Droid) (err error) {
	var pos driver.Point
	path := &internal.Stack[Direction]{}

	for {
		moved := false
		for _, dir := range Directions {
			next := pos.Add(dir.Delta())
			if mz.Open[next] || mz.Walls[next] {
				continue
			}

			var status Status
			status, err = mz.move(droid, dir)
			if err != nil {
				return
			}

			if status == STATUS_WALL {
				mz.Walls[next] = true
				continue
			}

			mz.Open[next] = true
			if status == STATUS_OXYGEN {
				mz.Oxygen = next
				mz.Found = true
				if mz.Verbose {
					log.Printf("maze: oxygen at %v", next)
				}
			}
			path.Push(dir)
			pos = next
			moved = true
			break
		}
		if moved {
			continue
		}

		// Dead end: retrace one step.
		dir, ok := path.Pop()
		if !ok {
			return
		}
		back := dir.Reverse()
		var status Status
		status, err = mz.move(droid, back)
		if err != nil {
			return
		}
		if status == STATUS_WALL {
			err = driver.ErrBadOutput{What: "status", Value: cpu.W(int64(status))}
			return
		}
		pos = pos.Add(back.Delta())
	}
}

// distances returns the breadth-first distance to every open cell
// reachable from start.
func (mz *Maze) distances(start driver.Point) (dist map[driver.Point]int) {
	dist = map[driver.Point]int{start: 0}
	queue := []driver.Point{start}

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		for _, dir := range Directions {
			next := pos.Add(dir.Delta())
			if !mz.Open[next] {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[pos] + 1
			queue = append(queue, next)
		}
	}

	return
}

// ShortestPath returns the fewest moves from the origin to the oxygen system.
func (mz *Maze) ShortestPath() (moves int, err error) {
	if !mz.Found {
		err = driver.ErrNoSolution
		return
	}

	moves, ok := mz.distances(driver.Point{})[mz.Oxygen]
	if !ok {
		err = driver.ErrNoSolution
	}

	return
}

// FillTime returns the minutes oxygen takes to fill the maze, spreading
// one cell per minute from the oxygen system.
func (mz *Maze) FillTime() (minutes int, err error) {
	if !mz.Found {
		err = driver.ErrNoSolution
		return
	}

	for _, dist := range mz.distances(mz.Oxygen) {
		minutes = max(minutes, dist)
	}

	return
}

// Render draws the explored maze: walls '#', open '.', the origin 'D' and
// the oxygen system 'O'. Unexplored cells are blank.
func (mz *Maze) Render() string {
	cells := map[driver.Point]bool{}
	for pt := range mz.Open {
		cells[pt] = true
	}
	for pt := range mz.Walls {
		cells[pt] = true
	}

	lo, hi := driver.Bounds(cells)
	return driver.Render(lo, hi, func(pt driver.Point) byte {
		switch {
		case mz.Walls[pt]:
			return '#'
		case mz.Found && pt == mz.Oxygen:
			return 'O'
		case pt == (driver.Point{}):
			return 'D'
		case mz.Open[pt]:
			return '.'
		}
		return ' '
	})
}
