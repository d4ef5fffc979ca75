// Package ir provides the instruction representation shared by every CL1
// compiler phase and consumed by the machine-word encoder.
//
// Two forms coexist:
//   - Op (with Label via Statement): strongly typed variants with named
//     fields, the in-memory model.
//   - Instruction: the positional wire form (opcode plus a fixed-length
//     vector of Number, Boolean and Text values) read and written by the
//     line codec and handed to the encoder.
//
// Lower and Raise convert between them; Raise is where arity and role
// checks happen. Normalize holds the canonical rewrites ("+" becomes Add,
// all-literal color caches fold into a packed raw color).
//
// All values are immutable after construction and safe for concurrent use.
// This package imports nothing internal.
package ir
