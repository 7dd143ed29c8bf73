// Package commands holds the konsave operations, one package per command.
//
// Each command is implemented in its own subdirectory:
//   - list/          - ListProfiles
//   - save/          - SaveProfile
//   - apply/         - ApplyProfile
//   - remove/        - RemoveProfile
//   - wipe/          - Wipe
//   - export/        - ExportProfile
//   - importprofile/ - ImportProfile
//   - configcheck/   - ConfigCheck
//   - resetconfig/   - ResetConfig
//   - genconfig/     - GenConfig
//   - internal/      - Section copying shared by save, apply, export and import
//
// Commands take an Options struct carrying a *core.Runtime and return a
// result from pkg/types, which the CLI hands to a pkg/ui renderer.
package commands
