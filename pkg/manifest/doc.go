// Package manifest parses konsave manifests (conf.yaml) into a resolved
// copy plan.
//
// A manifest has two groups, save and export. Each maps a section name to
// a location and a list of entries relative to it:
//
//	save:
//	  kwin:
//	    location: "$CONFIG_DIR"
//	    entries:
//	      - kwinrc
//	export:
//	  firefox:
//	    location: "$HOME/.mozilla/firefox/${ENDS_WITH='.default-release'}"
//	    entries: null
//
// Locations may contain keyword tokens ($HOME, $CONFIG_DIR, $SHARE_DIR,
// $BIN_DIR) and function tokens (${ENDS_WITH='x'}, ${BEGINS_WITH='x'}).
// Keywords are replaced by fixed values. Functions list the directory
// preceding the token and substitute the first entry whose name matches,
// so resolution depends on the filesystem at parse time.
package manifest
