package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

// globalOptions holds persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	runBase    string
	srcBase    string
	engine     string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", messages.FlagConfig)
	flags.StringVar(&opts.logLevel, "log-level", "", messages.FlagLogLevel)
	flags.StringVar(&opts.runBase, "run-base", "", messages.FlagRunBase)
	flags.StringVar(&opts.srcBase, "src-base", "", messages.FlagSrcBase)
	flags.StringVar(&opts.engine, "engine", "", messages.FlagEngine)

	cmd.AddCommand(
		newInstallCmd(opts),
		newRunCmd(opts),
		newPlayCmd(opts),
		newStopCmd(opts),
		newCleanCmd(opts),
		newValidateCmd(opts),
		newNamesCmd(opts),
		newConfigCmd(opts),
		newEnvCmd(opts),
		newDoctorCmd(opts),
	)
	return cmd
}
