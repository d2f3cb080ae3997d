// Package gravity searches for the noun and verb that make a program
// compute a target value.
//
// The noun is written to address 1 and the verb to address 2 before the
// program runs; the result is read from address 0 once it halts.
package gravity

import (
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
)

const (
	ADDRESS_RESULT = 0
	ADDRESS_NOUN   = 1
	ADDRESS_VERB   = 2
)

// Config sets the target and the search range.
type Config struct {
	Target  int64 `toml:"target"`   // Value wanted at address 0.
	NounMax int64 `toml:"noun_max"` // Highest noun tried.
	VerbMax int64 `toml:"verb_max"` // Highest verb tried.
}

func DefaultConfig() Config {
	return Config{
		Target:  19690720,
		NounMax: 99,
		VerbMax: 99,
	}
}

// Evaluate runs a copy of prog with the noun and verb patched in and
// returns the value left at address 0.
func Evaluate(machine driver.Machine, prog *cpu.Program, noun, verb int64) (result cpu.Word, err error) {
	if len(prog.Image) <= ADDRESS_VERB {
		err = driver.ErrNoSolution
		return
	}

	patched := prog.Clone()
	patched.Image[ADDRESS_NOUN] = cpu.W(noun)
	patched.Image[ADDRESS_VERB] = cpu.W(verb)

	m := machine.Boot(patched)
	_, err = m.Run()
	if err != nil {
		return
	}
	if m.State() != cpu.STATE_HALTED {
		err = driver.ErrStalled
		return
	}

	result = m.Peek(cpu.W(ADDRESS_RESULT))
	return
}

// Search tries every noun and verb in range, nouns outer, and returns
// 100 * noun + verb for the first pair that hits the target. Pairs whose
// run faults or stalls are skipped, and logged when machine.Verbose is set.
func Search(machine driver.Machine, prog *cpu.Program, config Config) (answer int64, err error) {
	if len(prog.Image) <= ADDRESS_VERB {
		err = driver.ErrNoSolution
		return
	}

	target := cpu.W(config.Target)

	for noun := int64(0); noun <= config.NounMax; noun++ {
		for verb := int64(0); verb <= config.VerbMax; verb++ {
			result, err := Evaluate(machine, prog, noun, verb)
			if err != nil {
				if machine.Verbose {
					log.Printf("gravity: noun %d verb %d: %v", noun, verb, err)
				}
				continue
			}
			if result == target {
				answer = 100*noun + verb
				return answer, nil
			}
		}
	}

	err = driver.ErrNoSolution
	return
}
