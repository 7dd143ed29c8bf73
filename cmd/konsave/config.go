package konsave

import (
	"github.com/arthur-debert/konsave/pkg/commands/configcheck"
	"github.com/arthur-debert/konsave/pkg/commands/genconfig"
	"github.com/arthur-debert/konsave/pkg/commands/resetconfig"
	"github.com/spf13/cobra"
)

func newConfigCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "config-check",
		Short:   MsgConfigCheckShort,
		Long:    MsgConfigCheckLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := configcheck.ConfigCheck(configcheck.ConfigCheckOptions{Runtime: a.rt})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func newResetConfigCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "reset-config",
		Short:   MsgResetConfigShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := resetconfig.ResetConfig(resetconfig.ResetConfigOptions{
				Runtime: a.rt,
				Force:   force,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagResetForce)

	return cmd
}

func newGenConfigCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := genconfig.GenConfig(genconfig.GenConfigOptions{
				Runtime: a.rt,
				Write:   write,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}
