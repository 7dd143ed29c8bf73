// Package store manages the profile store: one directory per saved
// profile under a single root, each holding a folder per save section and
// the manifest the profile was saved with. It hides the physical layout
// from the commands.
package store
