// Package store provides SQLite-backed storage for CL1 program listings.
//
// A program is a named, append-only series of revisions:
//   - programs: one row per program name
//   - revisions: one row per saved version, numbered per program
//   - lines: the instructions of a revision in source order
//
// Each line keeps both the encoded text (for humans and ad-hoc queries) and
// the JSON form of the instruction. Loading reads the JSON form, which
// round-trips every argument exactly.
//
// Revision IDs are UUIDv7. Every revision carries the program content hash
// from ir.ProgramHash, and saving content identical to the latest revision
// returns that revision instead of writing a new one.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// All ordering uses seq columns, never timestamps.
package store
