package io

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/ezrec/intcode/cpu"
)

// Tape provides sequential I/O operations over text streams.
//
// In decimal mode the input is whitespace or comma separated integers and
// each output word is written on its own line. In ASCII mode every input
// byte is a word; output words below 128 are written as characters and any
// other value as a decimal line.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Ascii  bool // Set for ASCII mode.

	scanner *bufio.Scanner
	err     error
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Err returns the first input error seen by Receive.
func (tc *Tape) Err() error {
	return tc.err
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// splitWords is a bufio.SplitFunc for whitespace or comma separated tokens.
func splitWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}
		start += width
	}

	for n := start; n < len(data); {
		r, width := utf8.DecodeRune(data[n:])
		if isSeparator(r) {
			return n + width, data[start:n], nil
		}
		n += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// Receive returns the next word from the input stream.
func (tc *Tape) Receive() (value cpu.Word, ok bool) {
	if tc.Input == nil || tc.err != nil {
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
		if tc.Ascii {
			tc.scanner.Split(bufio.ScanBytes)
		} else {
			tc.scanner.Split(splitWords)
		}
	}

	if !tc.scanner.Scan() {
		tc.err = tc.scanner.Err()
		return
	}

	token := tc.scanner.Bytes()
	if tc.Ascii {
		value = cpu.W(int64(token[0]))
		ok = true
		return
	}

	var err error
	value, err = cpu.ParseWord(string(token))
	if err != nil {
		tc.err = ErrTapeWord(token)
		return
	}
	ok = true

	return
}

// Send writes a word to the output stream.
func (tc *Tape) Send(value cpu.Word) (err error) {
	if tc.Output == nil {
		return
	}

	if tc.Ascii {
		char, ok := value.Int64()
		if ok && char >= 0 && char < 128 {
			_, err = tc.Output.Write([]byte{byte(char)})
			return
		}
	}

	_, err = fmt.Fprintln(tc.Output, value.String())

	return
}
