package types

import "time"

// ProfileInfo contains summary information about a single saved profile.
type ProfileInfo struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	SavedAt time.Time `json:"savedAt"`
	Digest  string    `json:"digest,omitempty"`
}

// ListProfilesResult holds the result of the 'list' command.
type ListProfilesResult struct {
	Profiles []ProfileInfo `json:"profiles"`
}

// CopyStats counts what a profile operation did to the filesystem.
type CopyStats struct {
	Sections int `json:"sections"`
	Entries  int `json:"entries"`
	Files    int `json:"files"`
	Skipped  int `json:"skipped"`
}

// SaveResult holds the result of the 'save' command.
type SaveResult struct {
	Name        string    `json:"name"`
	ProfilePath string    `json:"profilePath"`
	Overwrote   bool      `json:"overwrote"`
	Stats       CopyStats `json:"stats"`
}

// ApplyResult holds the result of the 'apply' command.
type ApplyResult struct {
	Name     string    `json:"name"`
	Stats    CopyStats `json:"stats"`
	Reloaded bool      `json:"reloaded"`
}

// ExportResult holds the result of the 'export' command.
type ExportResult struct {
	Name        string    `json:"name"`
	ArchivePath string    `json:"archivePath"`
	Stats       CopyStats `json:"stats"`
}

// ImportResult holds the result of the 'import' command.
type ImportResult struct {
	Name        string    `json:"name"`
	ProfilePath string    `json:"profilePath"`
	Stats       CopyStats `json:"stats"`
}

// RemoveResult holds the result of the 'remove' and 'wipe' commands.
type RemoveResult struct {
	Removed []string `json:"removed"`
	Aborted bool     `json:"aborted"`
}

// ConfigCheckSection is the comparison table for one manifest section.
type ConfigCheckSection struct {
	Name    string             `json:"name"`
	Entries []ConfigCheckEntry `json:"entries"`
}

// ConfigCheckEntry is one row of a config-check table.
type ConfigCheckEntry struct {
	Name        string `json:"name"`
	BackedUp    bool   `json:"backedUp"`
	InConfigDir bool   `json:"inConfigDir"`
}

// ConfigCheckResult holds the result of the 'config-check' command.
type ConfigCheckResult struct {
	ConfigDir string               `json:"configDir"`
	Sections  []ConfigCheckSection `json:"sections"`
}

// GenConfigResult holds the result of the 'genconfig' command.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}

// ResetConfigResult holds the result of installing the default manifest.
type ResetConfigResult struct {
	ManifestPath string `json:"manifestPath"`
	Variant      string `json:"variant"`
	Installed    bool   `json:"installed"`
}
