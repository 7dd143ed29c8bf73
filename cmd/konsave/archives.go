package konsave

import (
	"github.com/arthur-debert/konsave/pkg/commands/export"
	"github.com/arthur-debert/konsave/pkg/commands/importprofile"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		force  bool
		output string
	)

	cmd := &cobra.Command{
		Use:     "export <name>",
		Short:   MsgExportShort,
		Long:    MsgExportLong,
		Example: MsgExportExample,
		GroupID: "archives",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Status goes to stderr when the archive itself is the output
			status := cmd.OutOrStdout()
			if export.StdoutTargets[output] {
				a.rt.Stdout = cmd.OutOrStdout()
				status = cmd.ErrOrStderr()
			}

			bar := a.progress(cmd, MsgProgressExport)
			result, err := export.ExportProfile(export.ExportProfileOptions{
				Runtime: a.rt,
				Name:    args[0],
				Force:   force,
				Output:  output,
				OnFile:  bar.OnFile,
			})
			bar.Finish()
			if err != nil {
				return err
			}
			return a.renderTo(status, result)
		},
		ValidArgsFunction: profileNamesCompletion,
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForceExp)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)

	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "import <archive>",
		Short:   MsgImportShort,
		Long:    MsgImportLong,
		GroupID: "archives",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bar := a.progress(cmd, MsgProgressImport)
			result, err := importprofile.ImportProfile(importprofile.ImportProfileOptions{
				Runtime:     a.rt,
				ArchivePath: args[0],
				Name:        name,
				OnFile:      bar.OnFile,
			})
			bar.Finish()
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			ext := ".knsv"
			if rt, err := newRuntime(nil); err == nil {
				ext = rt.Config.Export.Extension
			}
			return []string{ext[1:]}, cobra.ShellCompDirectiveFilterFileExt
		},
	}

	cmd.Flags().StringVarP(&name, "import-name", "n", "", MsgFlagImportName)

	return cmd
}
