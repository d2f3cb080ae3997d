// Package cpu implements the stored-program machine and its assembler.
//
// A Machine holds a sparse memory of signed 256-bit words, an instruction
// pointer, a relative base register and a queue of pending input. Every
// instruction word encodes its operation in the low two decimal digits and
// one addressing mode digit per operand above them: position, immediate or
// relative. A machine that reads with an empty input queue suspends and can
// be resumed once input is pushed.
//
// The assembler provides a small assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
