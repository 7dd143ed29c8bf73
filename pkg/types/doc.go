// Package types defines the core types and interfaces shared across konsave.
// This includes the FS abstraction used by every component that touches
// the filesystem, and the result structures returned by the profile
// commands to the CLI layer.
package types
