package konsave

import (
	"os"

	"github.com/arthur-debert/konsave/pkg/commands/apply"
	"github.com/arthur-debert/konsave/pkg/commands/list"
	"github.com/arthur-debert/konsave/pkg/commands/remove"
	"github.com/arthur-debert/konsave/pkg/commands/save"
	"github.com/arthur-debert/konsave/pkg/commands/wipe"
	"github.com/arthur-debert/konsave/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var digest bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := list.ListProfiles(list.ListProfilesOptions{
				Runtime: a.rt,
				Digest:  digest,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&digest, "digest", false, MsgFlagDigest)

	return cmd
}

func newSaveCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "save <name>",
		Short:   MsgSaveShort,
		Long:    MsgSaveLong,
		GroupID: "profiles",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bar := a.progress(cmd, MsgProgressSave)
			result, err := save.SaveProfile(save.SaveProfileOptions{
				Runtime: a.rt,
				Name:    args[0],
				Force:   force,
				OnFile:  bar.OnFile,
			})
			bar.Finish()
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
		ValidArgsFunction: profileNamesCompletion,
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)

	return cmd
}

func newApplyCmd(a *app) *cobra.Command {
	var reload bool

	cmd := &cobra.Command{
		Use:     "apply <name>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		GroupID: "profiles",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bar := a.progress(cmd, MsgProgressApply)
			result, err := apply.ApplyProfile(apply.ApplyProfileOptions{
				Runtime: a.rt,
				Name:    args[0],
				Reload:  reload,
				OnFile:  bar.OnFile,
			})
			bar.Finish()
			// A failed reload still reports what was applied
			if result != nil {
				if renderErr := a.render(cmd, result); renderErr != nil && err == nil {
					err = renderErr
				}
			}
			return err
		},
		ValidArgsFunction: profileNamesCompletion,
	}

	cmd.Flags().BoolVarP(&reload, "reload", "r", false, MsgFlagReload)

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   MsgRemoveShort,
		GroupID: "profiles",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := remove.RemoveProfile(remove.RemoveProfileOptions{
				Runtime: a.rt,
				Name:    args[0],
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
		ValidArgsFunction: profileNamesCompletion,
	}
}

func newWipeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "wipe",
		Short:   MsgWipeShort,
		Long:    MsgWipeLong,
		GroupID: "profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ask := confirmations.Console()
			if in := cmd.InOrStdin(); in != os.Stdin {
				ask = confirmations.FromReader(in, cmd.ErrOrStderr())
			}

			result, err := wipe.Wipe(wipe.WipeOptions{
				Runtime: a.rt,
				Ask:     ask,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}
