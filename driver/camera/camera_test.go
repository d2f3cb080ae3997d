package camera

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
)

var picture = []string{
	"..#..........",
	"..#..........",
	"#######...###",
	"#.#...#...#.#",
	"#############",
	"..#...#...#..",
	"..#####...^..",
}

// printer returns a program that prints text.
func printer(text string) *cpu.Program {
	var image []cpu.Word
	for _, char := range []byte(text) {
		image = append(image, cpu.W(104), cpu.W(int64(char)))
	}
	image = append(image, cpu.W(99))
	return &cpu.Program{Image: image}
}

func TestCamera(t *testing.T) {
	assert := assert.New(t)

	cam := New(printer(strings.Join(picture, "\n")+"\n\n"), DefaultConfig())
	assert.NoError(cam.Capture())
	assert.Equal(picture, cam.Rows)

	assert.Equal([]driver.Point{
		{X: 2, Y: 2},
		{X: 2, Y: 4},
		{X: 6, Y: 4},
		{X: 10, Y: 4},
	}, cam.Intersections())
	assert.Equal(int64(76), cam.Alignment())

	assert.Equal(byte('^'), cam.At(driver.Point{X: 10, Y: 6}))
	assert.Equal(byte(0), cam.At(driver.Point{X: -1, Y: 0}))
	assert.Equal(byte(0), cam.At(driver.Point{X: 0, Y: 7}))

	rendered := strings.Split(cam.Render(), "\n")
	assert.Equal("##O####...###", rendered[2])
	assert.Equal("##O###O###O##", rendered[4])
}

func TestCamera_Errors(t *testing.T) {
	assert := assert.New(t)

	cam := New(&cpu.Program{Image: cpu.Words(104, 200, 99)}, DefaultConfig())
	assert.Equal(driver.ErrBadOutput{What: "pixel", Value: cpu.W(200)}, cam.Capture())

	cam = New(&cpu.Program{Image: cpu.Words(104, 35, 3, 0, 99)}, DefaultConfig())
	assert.ErrorIs(cam.Capture(), driver.ErrStalled)
}
