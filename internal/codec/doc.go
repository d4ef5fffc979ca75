// Package codec converts between ir.Instruction and the line-oriented text
// form used to author and round-trip CL1 programs.
//
// One line holds one instruction, one label, or nothing:
//
//	line   := "" | "#" rest | ":" label-text | opcode (" " token)*
//	opcode := "if" | "init" | "copy" | "add" | "cell" | "pixel" | "device" | "math"
//	token  := "n" | "c" | number-literal | bare-text
//
// Opcodes match case-insensitively. Tokens become arguments positionally:
// "n" and "c" are the literal and cell flags, anything that parses as a
// number is a Number, and everything else is Text.
//
// Decode reproduces the legacy lazy behavior (no shape checks). A Decoder in
// ModeStrict additionally raises each instruction into its typed variant and
// fails on the first arity or role mismatch.
package codec
