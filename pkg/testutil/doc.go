// Package testutil provides utilities for testing konsave components.
//
// Key components:
//   - TestEnvironment: a ready core.Runtime over a fake home directory
//   - FileTree / WriteTree / ReadTree: declarative directory fixtures
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly (afero in-memory filesystem)
//   - Use EnvIsolated when the code under test needs real file
//     descriptors or symlinks (locking, the working directory, cycles)
//   - All test data should be defined inline, not in external files
package testutil
