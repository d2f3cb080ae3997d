// Package camera captures the ASCII picture a machine draws and finds the
// scaffold intersections in it.
package camera

import (
	"strings"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
)

// Config names the characters that make up the scaffold.
type Config struct {
	Scaffold string `toml:"scaffold"` // Characters that are scaffold, robot included.
}

// DefaultConfig treats '#' and the robot headings as scaffold.
func DefaultConfig() Config {
	return Config{
		Scaffold: "#^v<>",
	}
}

// Camera holds the captured picture.
type Camera struct {
	Machine driver.Machine // Settings for the camera machine.
	Program *cpu.Program
	Config

	Rows []string
}

// New creates a camera for prog.
func New(prog *cpu.Program, config Config) *Camera {
	return &Camera{
		Program: prog,
		Config:  config,
	}
}

// Capture runs the program to completion and splits its output into rows.
func (cam *Camera) Capture() (err error) {
	m := cam.Machine.Boot(cam.Program)

	var picture strings.Builder
	err = m.RunFunc(func(value cpu.Word) (err error) {
		char, err := driver.Int("pixel", value)
		if err != nil {
			return
		}
		if char < 0 || char > 127 {
			err = driver.ErrBadOutput{What: "pixel", Value: value}
			return
		}
		picture.WriteByte(byte(char))
		return
	})
	if err != nil {
		return
	}
	if m.State() != cpu.STATE_HALTED {
		err = driver.ErrStalled
		return
	}

	cam.Rows = nil
	for _, row := range strings.Split(picture.String(), "\n") {
		if len(row) > 0 {
			cam.Rows = append(cam.Rows, row)
		}
	}

	return
}

// At returns the character at a point, or 0 outside the picture.
func (cam *Camera) At(pt driver.Point) byte {
	if pt.Y < 0 || pt.Y >= int64(len(cam.Rows)) {
		return 0
	}
	row := cam.Rows[pt.Y]
	if pt.X < 0 || pt.X >= int64(len(row)) {
		return 0
	}
	return row[pt.X]
}

func (cam *Camera) scaffold(pt driver.Point) bool {
	char := cam.At(pt)
	return char != 0 && strings.IndexByte(cam.Scaffold, char) >= 0
}

// Intersections returns the scaffold cells whose four neighbours are all
// scaffold, in reading order.
func (cam *Camera) Intersections() (points []driver.Point) {
	neighbours := []driver.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

	for y, row := range cam.Rows {
		for x := range row {
			pt := driver.Point{X: int64(x), Y: int64(y)}
			if !cam.scaffold(pt) {
				continue
			}
			crossing := true
			for _, delta := range neighbours {
				if !cam.scaffold(pt.Add(delta)) {
					crossing = false
					break
				}
			}
			if crossing {
				points = append(points, pt)
			}
		}
	}

	return
}

// Alignment returns the sum of X * Y over the intersections.
func (cam *Camera) Alignment() (sum int64) {
	for _, pt := range cam.Intersections() {
		sum += pt.X * pt.Y
	}
	return
}

// Render returns the picture with intersections marked 'O'.
func (cam *Camera) Render() string {
	rows := make([][]byte, len(cam.Rows))
	for n, row := range cam.Rows {
		rows[n] = []byte(row)
	}
	for _, pt := range cam.Intersections() {
		rows[pt.Y][pt.X] = 'O'
	}

	var text strings.Builder
	for _, row := range rows {
		text.Write(row)
		text.WriteByte('\n')
	}
	return text.String()
}
