// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

// Emulator state. Machine + IO channels.
type Emulator struct {
	Verbose      bool         // If set, enables verbose logging.
	*cpu.Machine              // Reference to the machine simulation.
	Program      *cpu.Program // Reference to the currently running program listing.

	Input  io.Channel // Source of input words.
	Output io.Channel // Sink for output words.
}

// NewEmulator creates a new emulator for a program, reading from an empty
// Rom and collecting output in an unbounded Temporary buffer.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	emu = &Emulator{
		Machine: cpu.NewMachine(prog),
		Program: prog,
		Input:   &io.Rom{},
		Output:  &io.Temporary{},
	}

	return
}

// Reset reloads the program and rewinds the channels.
func (emu *Emulator) Reset() {
	unknownHalts := emu.Machine.UnknownHalts
	emu.Machine = cpu.NewMachine(emu.Program)
	emu.Machine.UnknownHalts = unknownHalts

	emu.Input.Rewind()
	emu.Output.Rewind()
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	ip, ok := emu.Machine.Ip().Int64()
	if !ok {
		return 0
	}

	dbg := emu.Program.Debug(int(ip))
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
//
// Input is pulled from the Input channel when the machine waits for it, and
// every output is sent to the Output channel. done is set once the machine
// has halted, or when it waits for input the channel cannot provide.
func (emu *Emulator) Tick() (done bool, err error) {
	m := emu.Machine

	m.Verbose = emu.Verbose

	if m.State() == cpu.STATE_HALTED {
		done = true
		return
	}

	ip := m.Ip()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, LineNo: lineno, Err: err}
		}
	}()

	out, emitted, err := m.Tick()
	if errors.Is(err, cpu.ErrInputStarvation) {
		value, ok := emu.Input.Receive()
		if !ok {
			done = true
			err = ErrInputExhausted
			return
		}
		if emu.Verbose {
			log.Printf("emulator: input %v", value)
		}
		m.PushInput(value)
		err = nil
		return
	}
	if err != nil {
		return
	}

	if emitted {
		if emu.Verbose {
			log.Printf("emulator: output %v", out)
		}
		err = emu.Output.Send(out)
		if err != nil {
			return
		}
	}

	done = m.State() == cpu.STATE_HALTED

	return
}

// Run ticks the emulator until it is done, fails, or ctx is cancelled.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
