package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "cl"
	// RootShort is the short description for the root command.
	RootShort = "Install and drive Cylc workflows with run-name management"
	RootLong  = `cl links a workflow definition into the Cylc source tree, decides whether
to resume, overwrite or freshly install its run, and then drives the engine
(play, stop, clean, validate) against the resulting <workflow>/<run> id.

Configuration is read from $CYLC_LAYER_CONFIG or <user config dir>/cylc-layer/config.toml.
CYLC_RUN_DIR, CYLC_SRC_DIR and CYLC_CONDA override the file; flags override both.`

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	FlagConfig    = "config file path (must exist when given)"
	FlagLogLevel  = "log level: debug, info, warn or error"
	FlagRunBase   = "engine run tree root (overrides paths.run_base)"
	FlagSrcBase   = "engine source tree root (overrides paths.src_base)"
	FlagEngine    = "engine command, split with shell word rules (overrides engine.command)"
	FlagRunName   = "base run name (defaults to run.default_name)"
	FlagResume    = "reuse the existing run and clear its contact file"
	FlagOverwrite = "stop and clean the existing run, then install again"
	FlagExtend    = "install under the next free run name (exp, exp1, exp2, ...)"
	FlagYes       = "overwrite without asking for confirmation"
	FlagDiffLines = "maximum diff lines shown for a source link conflict"
	FlagCleanStop = "stop the run before cleaning it"

	// CLIFlagsSource names command-line flags as a config source in errors.
	CLIFlagsSource           = "command-line flags"
	CLIFlowArgCountFmt       = "%s expects exactly one workflow file before \"--\", got %d"
	CLILockDirUnavailableLog = "no cache directory; installing without a lock"

	// InstallUse is the install command name.
	InstallUse   = "install <flow>"
	InstallShort = "Resume, overwrite or install a workflow run"
	InstallLong  = `Install resolves <flow> to the id <workflow>/<run>, where <workflow> is the file
name without its extension, and takes one of three paths:

  --resume     keep the run and remove its contact file so it can be played again
  --overwrite  stop and clean the run, drop the source link, then install
  (default)    install, failing if the run already exists or the source link
               points at a different file

With --extend the run name gets the next numeric suffix among existing runs
when the base run does not exist. Conflicts exit with status 2.`
	InstallResultFmt               = "%s %s\n"
	InstallConflictRunExistsHint   = "Use --resume to reuse the run, --overwrite to replace it, or --run-name to pick a run name that is not taken."
	InstallConflictSourceHeaderFmt = "Source link conflict:\n  installed: %s\n  requested: %s\n"
	InstallConflictSourceLinkHint  = "Rename the workflow file or use --overwrite to relink it."

	RunUse   = "run <flow> [-- engine play options]"
	RunShort = "Install a workflow run, then play it"
	RunLong  = `Run performs the install decision described by "cl install" and then plays the
installed run. Arguments after "--" are passed to the engine's play command.`

	PlayUse        = "play <flow> [-- engine options]"
	PlayShort      = "Play an installed run"
	StopUse        = "stop <flow>"
	StopShort      = "Stop a run and wait for it to release its contact file"
	StopResultFmt  = "stopped %s\n"
	CleanUse       = "clean <flow>"
	CleanShort     = "Remove a run through the engine"
	CleanResultFmt = "cleaned %s\n"
	ValidateUse    = "validate <flow> [-- engine options]"
	ValidateShort  = "Link a workflow into the source tree and validate it"

	NamesUse         = "names <flow>"
	NamesShort       = "List existing runs for a workflow and the next extended name"
	NamesExistingFmt = "%s/%s\n"
	NamesNextFmt     = "next: %s/%s\n"

	ConfigUse              = "config"
	ConfigShort            = "Print the effective configuration as TOML"
	ConfigSourceCommentFmt = "# source: %s\n"
	ConfigDefaultsSource   = "defaults"

	EnvUse   = "env"
	EnvShort = "Print the environment exported to the engine as shell exports"
)
