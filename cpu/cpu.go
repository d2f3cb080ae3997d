// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"slices"
)

// State is the run state of a Machine.
type State int

const (
	STATE_RUNNING        = State(0) // running
	STATE_AWAITING_INPUT = State(1) // awaiting input
	STATE_HALTED         = State(2) // halted
	STATE_FAULTED        = State(3) // faulted
)

func (state State) String() string {
	switch state {
	case STATE_RUNNING:
		return "running"
	case STATE_AWAITING_INPUT:
		return "awaiting input"
	case STATE_HALTED:
		return "halted"
	case STATE_FAULTED:
		return "faulted"
	}
	return fmt.Sprintf("State(%d)", int(state))
}

// Machine is the simulation context for the stored-program computer.
//
// A Machine owns its memory and input queue. Drivers push input, run the
// machine and consume its output; memory only changes through executed
// instructions.
type Machine struct {
	Verbose      bool // Set to enable verbose logging.
	UnknownHalts bool // Treat undecodable instructions as Halt instead of faulting.

	Ticks int // Instructions executed.

	memory *Memory
	ip     Word
	base   Word
	input  []Word
	state  State
	fault  error
}

// NewMachine creates a machine with memory initialized from the program image.
func NewMachine(prog *Program) (m *Machine) {
	m = &Machine{
		memory: NewMemory(prog.Image),
	}

	return
}

// Clone returns an independent deep copy of the machine.
func (m *Machine) Clone() (clone *Machine) {
	clone = &Machine{}
	*clone = *m
	clone.memory = m.memory.Clone()
	clone.input = slices.Clone(m.input)

	return
}

// State returns the current run state.
func (m *Machine) State() State {
	return m.state
}

// Ip returns the instruction pointer.
func (m *Machine) Ip() Word {
	return m.ip
}

// RelativeBase returns the relative base register.
func (m *Machine) RelativeBase() Word {
	return m.base
}

// Fault returns the error that killed the machine, if any.
func (m *Machine) Fault() error {
	return m.fault
}

// Peek inspects memory without materializing the address.
func (m *Machine) Peek(address Word) (value Word) {
	value, _ = m.memory.Peek(address)
	return
}

// Footprint returns the number of materialized memory cells.
func (m *Machine) Footprint() int {
	return m.memory.Len()
}

// Pending returns the number of queued input values.
func (m *Machine) Pending() int {
	return len(m.input)
}

// PushInput appends values to the input queue, waking a machine that is
// awaiting input.
func (m *Machine) PushInput(values ...Word) {
	m.input = append(m.input, values...)

	if len(values) > 0 && m.state == STATE_AWAITING_INPUT {
		m.state = STATE_RUNNING
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "ip", m.ip)
	text += fmt.Sprintf("% 6s: %v\n", "base", m.base)
	text += fmt.Sprintf("% 6s: %v\n", "state", m.state)
	text += fmt.Sprintf("% 6s: %v\n", "input", m.input)
	text += fmt.Sprintf("% 6s: %v\n", "ticks", m.Ticks)

	return
}

// operand returns the address of the n-th operand of the current instruction.
func (m *Machine) operand(n int) Word {
	return m.ip.Add(W(int64(n + 1)))
}

// address resolves the n-th operand to the memory address it refers to.
// An immediate operand refers to its own cell.
func (m *Machine) address(code Code, n int) (address Word, err error) {
	address = m.operand(n)

	switch code.Modes[n] {
	case MODE_IMMEDIATE:
		return
	case MODE_POSITION:
		address, err = m.memory.Read(address)
	case MODE_RELATIVE:
		address, err = m.memory.Read(address)
		address = address.Add(m.base)
	}

	return
}

// load reads the value of the n-th operand.
func (m *Machine) load(code Code, n int) (value Word, err error) {
	address, err := m.address(code, n)
	if err != nil {
		return
	}

	value, err = m.memory.Read(address)
	return
}

// store writes value through the n-th operand.
func (m *Machine) store(code Code, n int, value Word) (err error) {
	address, err := m.address(code, n)
	if err != nil {
		return
	}

	err = m.memory.Write(address, value)
	return
}

// Tick executes a single instruction.
//
// If the instruction was WriteOutput, the value is returned with emitted set.
// ReadInput with an empty queue returns ErrInputStarvation and leaves the
// instruction pointer in place; push input and tick again to resume. Any
// other error is fatal and is returned again by every later call.
func (m *Machine) Tick() (out Word, emitted bool, err error) {
	switch m.state {
	case STATE_HALTED:
		return
	case STATE_FAULTED:
		err = m.fault
		return
	}

	defer func() {
		if err != nil && !errors.Is(err, ErrInputStarvation) {
			m.state = STATE_FAULTED
			m.fault = errors.Join(ErrFaulted, err)
			err = m.fault
		}
	}()

	word, err := m.memory.Read(m.ip)
	if err != nil {
		return
	}

	code, ok := Decode(word)
	if !ok {
		if m.UnknownHalts {
			if m.Verbose {
				log.Printf("cpu: %v: %v treated as halt", m.ip, word)
			}
			m.state = STATE_HALTED
			return
		}
		err = ErrOpcode{Ip: m.ip, Word: word}
		return
	}

	if m.Verbose {
		log.Printf("cpu: %v: %v", m.ip, code)
	}

	next_ip := m.ip.Add(W(int64(code.Op.Size())))

	switch code.Op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b Word
		a, err = m.load(code, 0)
		if err != nil {
			return
		}
		b, err = m.load(code, 1)
		if err != nil {
			return
		}
		var result Word
		switch code.Op {
		case OP_ADD:
			result = a.Add(b)
		case OP_MUL:
			result = a.Mul(b)
		case OP_LT:
			if a.Less(b) {
				result = W(1)
			}
		case OP_EQ:
			if a == b {
				result = W(1)
			}
		}
		err = m.store(code, 2, result)
		if err != nil {
			return
		}
	case OP_IN:
		if len(m.input) == 0 {
			// Don't advance to next IP.
			m.state = STATE_AWAITING_INPUT
			err = ErrInputStarvation
			return
		}
		err = m.store(code, 0, m.input[0])
		if err != nil {
			return
		}
		m.input = m.input[1:]
	case OP_OUT:
		out, err = m.load(code, 0)
		if err != nil {
			return
		}
		emitted = true
	case OP_JT, OP_JF:
		var cond Word
		cond, err = m.load(code, 0)
		if err != nil {
			return
		}
		if cond.IsZero() == (code.Op == OP_JF) {
			next_ip, err = m.load(code, 1)
			if err != nil {
				return
			}
		}
	case OP_ARB:
		var offset Word
		offset, err = m.load(code, 0)
		if err != nil {
			return
		}
		m.base = m.base.Add(offset)
	case OP_HALT:
		m.state = STATE_HALTED
		m.Ticks++
		if m.Verbose {
			log.Printf("cpu: halt after %d ticks", m.Ticks)
		}
		return
	}

	m.ip = next_ip
	m.state = STATE_RUNNING
	m.Ticks++

	return
}

// Next runs until the next output value, returning it with ok set.
//
// When the machine halts or suspends for input first, ok is false and
// State reports which.
func (m *Machine) Next() (out Word, ok bool, err error) {
	for m.state == STATE_RUNNING {
		out, ok, err = m.Tick()
		if errors.Is(err, ErrInputStarvation) {
			err = nil
			return
		}
		if err != nil || ok {
			return
		}
	}

	if m.state == STATE_FAULTED {
		err = m.fault
	}

	return
}

// RunFunc runs to halt or suspension, handing every output to sink.
// An error from sink stops the run with the machine resumable.
func (m *Machine) RunFunc(sink func(value Word) error) (err error) {
	for {
		var out Word
		var ok bool
		out, ok, err = m.Next()
		if err != nil || !ok {
			return
		}
		err = sink(out)
		if err != nil {
			return
		}
	}
}

// Run runs to halt or suspension and returns the outputs produced.
func (m *Machine) Run() (outputs []Word, err error) {
	err = m.RunFunc(func(value Word) error {
		outputs = append(outputs, value)
		return nil
	})

	return
}

// Outputs returns an iterator that runs the machine lazily, one output at a
// time. Iteration ends at halt or suspension; a fault is yielded once.
func (m *Machine) Outputs() iter.Seq2[Word, error] {
	return func(yield func(value Word, err error) bool) {
		for {
			out, ok, err := m.Next()
			if err != nil {
				yield(out, err)
				return
			}
			if !ok {
				return
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}
