package konsave

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/konsave/internal/version"
	"github.com/arthur-debert/konsave/pkg/cobrax/topics"
	"github.com/arthur-debert/konsave/pkg/commands/resetconfig"
	"github.com/arthur-debert/konsave/pkg/core"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/logging"
	"github.com/arthur-debert/konsave/pkg/ui"
	"github.com/arthur-debert/konsave/pkg/ui/progress"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newRuntime builds the runtime for a command. Tests replace it to run
// against a fake home.
var newRuntime = core.NewRuntime

// app carries the state shared by every subcommand of one invocation.
type app struct {
	verbosity  int
	debug      bool
	format     string
	noProgress bool

	rt *core.Runtime
}

// commands that never touch the store
var noRuntime = map[string]bool{
	"version":                       true,
	"completion":                    true,
	"help":                          true,
	"topics":                        true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

// commands that must work without installing the default manifest
var noFirstRun = map[string]bool{
	"genconfig":    true,
	"reset-config": true,
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "konsave",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity := a.verbosity
			if a.debug && verbosity < 2 {
				verbosity = 2
			}
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.Name(), args)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			if _, err := ui.ParseFormat(a.format); err != nil {
				return err
			}

			if noRuntime[cmd.Name()] || !cmd.HasParent() {
				return nil
			}
			rt, err := newRuntime(a.overrides())
			if err != nil {
				return fmt.Errorf(MsgErrRuntime, err)
			}
			a.rt = rt

			if noFirstRun[cmd.Name()] {
				return nil
			}
			_, err = resetconfig.ResetConfig(resetconfig.ResetConfigOptions{Runtime: rt})
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, MsgFlagDebug)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().BoolVar(&a.noProgress, "no-progress", false, MsgFlagNoProgress)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames, cobra.ShellCompDirectiveNoFileComp
	})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "profiles",
		Title: "PROFILES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "archives",
		Title: "ARCHIVES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "config",
		Title: "CONFIGURATION:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newSaveCmd(a))
	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newWipeCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newImportCmd(a))
	rootCmd.AddCommand(newConfigCheckCmd(a))
	rootCmd.AddCommand(newResetConfigCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help system from the embedded topics
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// overrides turns global flags into settings keys.
func (a *app) overrides() map[string]interface{} {
	overrides := map[string]interface{}{}
	if a.noProgress {
		overrides["ui.progress"] = false
	}
	return overrides
}

// renderer builds the renderer for the --format flag writing to w.
func (a *app) renderer(w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

// render writes result to the command's standard output.
func (a *app) render(cmd *cobra.Command, result interface{}) error {
	return a.renderTo(cmd.OutOrStdout(), result)
}

func (a *app) renderTo(w io.Writer, result interface{}) error {
	r, err := a.renderer(w)
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

// progress returns a spinner on stderr when ui.progress is enabled and
// stderr is a terminal. Machine-readable output never gets one.
func (a *app) progress(cmd *cobra.Command, description string) *progress.Reporter {
	enabled := a.rt.Config.UI.Progress && a.format != "json"
	if f, ok := cmd.ErrOrStderr().(*os.File); !ok || ui.DetectFormat(f) != ui.FormatTerminal {
		enabled = false
	}
	return progress.New(cmd.ErrOrStderr(), description, enabled)
}

// profileNamesCompletion provides shell completion for saved profile names
func profileNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	rt, err := newRuntime(nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	profiles, err := rt.Store().List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Delegate to the help command's topic listing
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil {
				return err
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
