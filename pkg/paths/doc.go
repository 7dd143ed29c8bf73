// Package paths provides centralized path handling for konsave.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for every location konsave reads or writes:
//
//   - The keyword bindings for manifest tokens ($HOME, $CONFIG_DIR,
//     $SHARE_DIR, $BIN_DIR)
//   - The application directory holding the global manifest and settings
//   - The profile store (one directory per profile)
//   - The log file under the XDG state directory
//
// # Environment Variables
//
//   - KONSAVE_DIR: Override the application directory (default: $XDG_CONFIG_HOME/konsave)
//   - KONSAVE_PROFILES_DIR: Override the profile store (default: <app dir>/profiles)
//   - XDG_CONFIG_HOME, XDG_DATA_HOME, XDG_BIN_HOME, XDG_STATE_HOME: the usual XDG overrides
//
// # Usage
//
//	p, err := paths.New(paths.Options{})
//	if err != nil {
//	    return err
//	}
//
//	p.ProfilePath("work")   // ~/.config/konsave/profiles/work
//	p.Keywords()["HOME"]    // /home/user
package paths
