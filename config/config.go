// Package config loads machine and driver settings from TOML.
package config

import (
	"errors"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/driver"
	"github.com/ezrec/intcode/driver/amplifier"
	"github.com/ezrec/intcode/driver/arcade"
	"github.com/ezrec/intcode/driver/camera"
	"github.com/ezrec/intcode/driver/gravity"
	"github.com/ezrec/intcode/driver/maze"
	"github.com/ezrec/intcode/driver/robot"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

// ErrUndecoded is returned for keys the configuration does not know.
type ErrUndecoded []string

func (err ErrUndecoded) Error() string {
	return f("unknown configuration keys: %v", strings.Join(err, ", "))
}

// Config is the complete configuration file.
type Config struct {
	Machine   driver.Machine   `toml:"machine"` // Applied to every machine started.
	Amplifier amplifier.Config `toml:"amplifier"`
	Robot     robot.Config     `toml:"robot"`
	Arcade    arcade.Config    `toml:"arcade"`
	Camera    camera.Config    `toml:"camera"`
	Maze      maze.Config      `toml:"maze"`
	Gravity   gravity.Config   `toml:"gravity"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Amplifier: amplifier.DefaultConfig(),
		Robot:     robot.DefaultConfig(),
		Arcade:    arcade.DefaultConfig(),
		Camera:    camera.DefaultConfig(),
		Maze:      maze.DefaultConfig(),
		Gravity:   gravity.DefaultConfig(),
	}
}

// Parse reads a configuration over the defaults. Keys missing from the
// input keep their default values.
func Parse(input io.Reader) (conf Config, err error) {
	conf = Default()

	meta, err := toml.NewDecoder(input).Decode(&conf)
	if err != nil {
		return
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make(ErrUndecoded, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = keys
	}

	return
}

// Load reads a configuration file over the defaults.
func Load(path string) (conf Config, err error) {
	conf = Default()

	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make(ErrUndecoded, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = keys
	}

	return
}

// Write writes the configuration as TOML.
func (conf Config) Write(output io.Writer) (err error) {
	if output == nil {
		err = errors.New(f("no output"))
		return
	}

	err = toml.NewEncoder(output).Encode(conf)
	return
}
