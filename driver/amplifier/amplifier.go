// Package amplifier drives a series of amplifier machines, each running a
// copy of the same program configured by a phase setting.
package amplifier

import (
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver"
	"github.com/ezrec/intcode/internal"
)

// Config selects the phase range searched and how the chain is wired.
type Config struct {
	PhaseLow     int64 `toml:"phase_low"`  // Lowest phase setting.
	PhaseHigh    int64 `toml:"phase_high"` // Highest phase setting.
	FeedbackLoop bool  `toml:"feedback"`   // Loop the last amplifier back to the first.
	Signal       int64 `toml:"signal"`     // Signal fed to the first amplifier.
}

// DefaultConfig returns the serial chain over phases 0 through 4.
func DefaultConfig() Config {
	return Config{
		PhaseLow:  0,
		PhaseHigh: 4,
	}
}

// Amplifier runs amplifier chains for a program.
type Amplifier struct {
	Verbose bool
	Machine driver.Machine // Settings for every amplifier machine.
	Program *cpu.Program
	Config
}

// New creates an amplifier driver for prog.
func New(prog *cpu.Program, config Config) *Amplifier {
	return &Amplifier{
		Program: prog,
		Config:  config,
	}
}

// boot starts one machine per phase, each with its phase queued.
func (amp *Amplifier) boot(phases []int64) (machines []*cpu.Machine) {
	origin := amp.Machine.Boot(amp.Program)
	machines = make([]*cpu.Machine, len(phases))
	for n, phase := range phases {
		machines[n] = origin.Clone()
		machines[n].PushInput(cpu.W(phase))
	}

	return
}

// Chain runs the amplifiers in series, each once, and returns the signal
// produced by the last.
func (amp *Amplifier) Chain(phases []int64) (signal cpu.Word, err error) {
	signal = cpu.W(amp.Signal)
	for n, m := range amp.boot(phases) {
		m.PushInput(signal)
		signal, err = driver.Expect(m)
		if err != nil {
			return
		}
		if amp.Verbose {
			log.Printf("amplifier: %d: phase %d signal %v", n, phases[n], signal)
		}
	}

	return
}

// Feedback runs the amplifiers in a loop, feeding the output of the last
// back into the first, until the amplifiers halt. It returns the last signal
// sent by the final amplifier.
func (amp *Amplifier) Feedback(phases []int64) (signal cpu.Word, err error) {
	machines := amp.boot(phases)
	if len(machines) == 0 {
		err = driver.ErrNoSolution
		return
	}

	last := len(machines) - 1
	value := cpu.W(amp.Signal)
	produced := false
	for round := 0; ; round++ {
		for n, m := range machines {
			m.PushInput(value)
			var ok bool
			value, ok, err = m.Next()
			if err != nil {
				return
			}
			if !ok {
				if m.State() == cpu.STATE_HALTED && produced {
					return
				}
				err = driver.Stopped(m)
				return
			}
			if n == last {
				signal = value
				produced = true
			}
		}
		if amp.Verbose {
			log.Printf("amplifier: round %d signal %v", round, signal)
		}
	}
}

// Run runs the chain, serial or feedback per the configuration.
func (amp *Amplifier) Run(phases []int64) (signal cpu.Word, err error) {
	if amp.FeedbackLoop {
		return amp.Feedback(phases)
	}
	return amp.Chain(phases)
}

// Best tries every ordering of the configured phase range and returns the
// phases giving the highest signal.
func (amp *Amplifier) Best() (phases []int64, signal cpu.Word, err error) {
	var settings []int64
	for phase := amp.PhaseLow; phase <= amp.PhaseHigh; phase++ {
		settings = append(settings, phase)
	}
	if len(settings) == 0 {
		err = driver.ErrNoSolution
		return
	}

	for perm := range internal.Permutations(settings) {
		var value cpu.Word
		value, err = amp.Run(perm)
		if err != nil {
			return
		}
		if phases == nil || signal.Less(value) {
			phases = perm
			signal = value
		}
	}

	return
}
