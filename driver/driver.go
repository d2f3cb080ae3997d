// Package driver holds what the machine drivers share: errors, grid points
// and helpers to pull values out of a running machine.
package driver

import (
	"strings"

	"github.com/ezrec/intcode/cpu"
)

// Point is a cell on a driver's grid. Y grows downward.
type Point struct {
	X, Y int64
}

// Machine holds the settings applied to every machine a driver boots.
type Machine struct {
	UnknownHalts bool `toml:"unknown_halts"` // Treat undecodable instructions as halt.
	Verbose      bool `toml:"verbose"`       // Trace execution.
}

// Boot creates a machine for prog with the settings applied.
func (mc Machine) Boot(prog *cpu.Program) (m *cpu.Machine) {
	m = cpu.NewMachine(prog)
	m.UnknownHalts = mc.UnknownHalts
	m.Verbose = mc.Verbose

	return
}

// Add returns the sum of two points.
func (pt Point) Add(delta Point) Point {
	return Point{X: pt.X + delta.X, Y: pt.Y + delta.Y}
}

// Bounds returns the smallest rectangle holding every point, as its
// top-left and bottom-right corners.
func Bounds[T any](cells map[Point]T) (lo, hi Point) {
	first := true
	for pt := range cells {
		if first {
			lo, hi = pt, pt
			first = false
			continue
		}
		lo.X = min(lo.X, pt.X)
		lo.Y = min(lo.Y, pt.Y)
		hi.X = max(hi.X, pt.X)
		hi.Y = max(hi.Y, pt.Y)
	}

	return
}

// Render draws the rectangle from lo to hi, one line per row.
func Render(lo, hi Point, glyph func(pt Point) byte) string {
	var text strings.Builder
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			text.WriteByte(glyph(Point{X: x, Y: y}))
		}
		text.WriteByte('\n')
	}

	return text.String()
}

// Int converts a machine output to an int64.
func Int(what string, value cpu.Word) (n int64, err error) {
	n, ok := value.Int64()
	if !ok {
		err = ErrBadOutput{What: what, Value: value}
	}
	return
}

// Expect runs m to its next output. A halt or stall before the output is
// an error.
func Expect(m *cpu.Machine) (value cpu.Word, err error) {
	value, ok, err := m.Next()
	if err != nil {
		return
	}
	if !ok {
		err = Stopped(m)
	}
	return
}

// Stopped returns the error describing why m stopped without output.
func Stopped(m *cpu.Machine) error {
	if m.State() == cpu.STATE_HALTED {
		return ErrUnexpectedHalt
	}
	return ErrStalled
}
