// Package compile is the boundary between the instruction model and a
// backend that turns instructions into machine words.
//
// The backend is supplied by the caller as an Encoder. This package only
// guards the boundary: label definitions never reach the encoder, and the
// label table is passed through untouched so that Jump, Call and If targets
// can be resolved by the backend.
package compile
