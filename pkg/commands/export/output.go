package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/konsave/pkg/types"
)

// StdoutTargets stream the archive to standard output.
var StdoutTargets = map[string]bool{"-": true, "/dev/stdout": true}

// zipExtension is always checked for collisions, whatever the configured
// extension is.
const zipExtension = ".zip"

// timestampLayout is appended to colliding export names.
const timestampLayout = "2006-01-02T15-04-05.000000"

// StripSuffixes drops every extension from the last element of p: the
// part from the first dot that is not a leading dot.
// "out/work.tar.knsv" becomes "out/work"; ".work.knsv" becomes ".work".
func StripSuffixes(p string) string {
	dir, file := filepath.Split(p)
	trimmed := strings.TrimLeft(file, ".")
	lead := len(file) - len(trimmed)
	if i := strings.Index(trimmed, "."); i > 0 {
		file = file[:lead+i]
	}
	return dir + file
}

// OutputPath computes the archive path without extension. output is the
// user-supplied path (may be empty); the default is cwd/name. Unless
// force is set, a path is rejected while it or its .zip / ext variants
// exist, and a timestamp suffix is appended until a free one is found.
func OutputPath(fs types.FS, cwd, name, output, ext string, force bool, now func() time.Time) string {
	base := filepath.Join(cwd, name)
	if output != "" {
		base = StripSuffixes(output)
		if !filepath.IsAbs(base) {
			base = filepath.Join(cwd, base)
		}
	}
	if force {
		return base
	}

	candidate := base
	for i := 0; taken(fs, candidate, ext); i++ {
		candidate = base + "_" + now().Format(timestampLayout)
		if i > 0 {
			candidate += fmt.Sprintf("_%d", i)
		}
	}
	return candidate
}

func taken(fs types.FS, p, ext string) bool {
	for _, c := range []string{p, p + ext, p + zipExtension} {
		if _, err := fs.Stat(c); err == nil {
			return true
		}
	}
	return false
}
