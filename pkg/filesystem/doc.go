// Package filesystem provides filesystem implementations for konsave.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem used in production and an afero-backed
// filesystem used for in-memory tests.
package filesystem
