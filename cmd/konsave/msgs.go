package konsave

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort        = "Save and apply desktop configuration profiles"
	MsgListShort        = "List saved profiles"
	MsgSaveShort        = "Save the current configuration as a profile"
	MsgApplyShort       = "Apply a saved profile"
	MsgRemoveShort      = "Remove a saved profile"
	MsgWipeShort        = "Remove every saved profile"
	MsgExportShort      = "Export a profile to a portable archive"
	MsgImportShort      = "Import a profile from an archive"
	MsgConfigCheckShort = "Compare the manifest with the config directory"
	MsgResetConfigShort = "Reinstall the default manifest"
	MsgGenConfigShort   = "Print or write the konsave settings"
	MsgVersionShort     = "Print version information"
	MsgTopicsShort      = "Display available documentation topics"
	MsgTopicsLong       = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort  = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDebug      = "Debug output, same as -vv"
	MsgFlagFormat     = "Output format: auto, term, text or json"
	MsgFlagNoProgress = "Do not show a progress indicator"
	MsgFlagForce      = "Overwrite an existing profile"
	MsgFlagForceExp   = "Overwrite an existing archive instead of picking a new name"
	MsgFlagOutput     = "Archive path; extensions are stripped, - writes to stdout"
	MsgFlagImportName = "Name of the imported profile (default: archive name)"
	MsgFlagReload     = "Reload the desktop after applying"
	MsgFlagDigest     = "Show a content digest of each profile"
	MsgFlagWrite      = "Write a commented settings template to the settings file"
	MsgFlagResetForce = "Replace the existing manifest"

	// Progress descriptions
	MsgProgressSave   = "saving"
	MsgProgressApply  = "applying"
	MsgProgressExport = "exporting"
	MsgProgressImport = "importing"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrRuntime   = "failed to initialize konsave: %w"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/save-long.txt
	msgSaveLongRaw string
	MsgSaveLong    = strings.TrimSpace(msgSaveLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimSpace(msgExportExampleRaw)

	//go:embed msgs/import-long.txt
	msgImportLongRaw string
	MsgImportLong    = strings.TrimSpace(msgImportLongRaw)

	//go:embed msgs/wipe-long.txt
	msgWipeLongRaw string
	MsgWipeLong    = strings.TrimSpace(msgWipeLongRaw)

	//go:embed msgs/config-check-long.txt
	msgConfigCheckLongRaw string
	MsgConfigCheckLong    = strings.TrimSpace(msgConfigCheckLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
