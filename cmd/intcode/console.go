package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ezrec/intcode/cpu"
	icio "github.com/ezrec/intcode/io"
)

// Console is an interactive channel: input words are read a line at a time
// with line editing and history, output is printed as it arrives.
type Console struct {
	Ascii bool // Send each line as characters, newline included.

	rl      *readline.Instance
	pending []cpu.Word
	done    bool
}

var _ icio.Channel = (*Console)(nil)

// NewConsole opens the terminal.
func NewConsole(ascii bool, history string) (con *Console, err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "? ",
		HistoryFile: history,
	})
	if err != nil {
		return
	}

	con = &Console{
		Ascii: ascii,
		rl:    rl,
	}
	return
}

// Close releases the terminal.
func (con *Console) Close() error {
	return con.rl.Close()
}

// Rewind is not possible on a console.
func (con *Console) Rewind() {
}

// fill reads lines until at least one word is pending.
func (con *Console) fill() {
	for len(con.pending) == 0 && !con.done {
		line, err := con.rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			con.done = true
			return
		}
		if err != nil {
			fmt.Fprintln(con.rl.Stderr(), err)
			con.done = true
			return
		}

		if con.Ascii {
			for _, char := range []byte(line + "\n") {
				con.pending = append(con.pending, cpu.W(int64(char)))
			}
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		var words []cpu.Word
		for _, field := range fields {
			word, err := cpu.ParseWord(field)
			if err != nil {
				fmt.Fprintln(con.rl.Stderr(), err)
				words = nil
				break
			}
			words = append(words, word)
		}
		con.pending = append(con.pending, words...)
	}
}

func (con *Console) Receive() (value cpu.Word, ok bool) {
	con.fill()
	if len(con.pending) == 0 {
		return
	}

	value = con.pending[0]
	con.pending = con.pending[1:]
	ok = true

	return
}

func (con *Console) Send(value cpu.Word) (err error) {
	if con.Ascii {
		char, ok := value.Int64()
		if ok && char >= 0 && char < 128 {
			_, err = con.rl.Stdout().Write([]byte{byte(char)})
			return
		}
	}

	_, err = fmt.Fprintln(con.rl.Stdout(), value.String())
	return
}
