// Package internal holds the copy plumbing shared by the profile commands.
package internal

import (
	"path/filepath"

	"github.com/arthur-debert/konsave/pkg/manifest"
	"github.com/arthur-debert/konsave/pkg/mergecopy"
	"github.com/arthur-debert/konsave/pkg/types"
	"github.com/rs/zerolog"
)

// Usable filters out sections whose location could not be resolved,
// logging each one.
func Usable(logger zerolog.Logger, sections []manifest.Section) []manifest.Section {
	out := make([]manifest.Section, 0, len(sections))
	for _, s := range sections {
		if s.Unresolved {
			logger.Warn().
				Str("section", s.Name).
				Str("location", s.RawLocation).
				Msg("Skipping section with unresolved location")
			continue
		}
		out = append(out, s)
	}
	return out
}

// CopyEntries copies every entry of a section from srcDir to dstDir,
// skipping entries missing from srcDir. It counts into stats.
func CopyEntries(logger zerolog.Logger, c *mergecopy.Copier, s manifest.Section, srcDir, dstDir string, stats *types.CopyStats) error {
	for _, entry := range s.Entries {
		src := filepath.Join(srcDir, entry)
		dst := filepath.Join(dstDir, entry)

		copied, err := c.CopyIfExists(src, dst)
		if err != nil {
			return err
		}
		if !copied {
			logger.Debug().Str("section", s.Name).Str("source", src).Msg("Entry not present, skipped")
			stats.Skipped++
			continue
		}
		logger.Debug().Str("section", s.Name).Str("source", src).Str("dest", dst).Msg("Entry copied")
		stats.Entries++
	}
	stats.Sections++
	return nil
}

// CountFiles returns a copy callback that counts files into stats before
// passing them on to next, which may be nil.
func CountFiles(stats *types.CopyStats, next func(src, dst string)) func(src, dst string) {
	return func(src, dst string) {
		stats.Files++
		if next != nil {
			next(src, dst)
		}
	}
}
