// Package core carries the state every konsave command works against.
//
// Runtime bundles the filesystem, the resolved locations and the effective
// settings. Commands receive it instead of reaching for globals, so tests
// can point a whole command at an in-memory tree or a temp directory.
package core
