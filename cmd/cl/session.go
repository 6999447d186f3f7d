package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/engine"
	"github.com/conn-castle/cylc-layer/internal/install"
	"github.com/conn-castle/cylc-layer/internal/logging"
	"github.com/conn-castle/cylc-layer/internal/messages"
	"github.com/conn-castle/cylc-layer/internal/prompt"
	"github.com/conn-castle/cylc-layer/internal/terminal"
)

var (
	loadConfigFunc    = config.Load
	userCacheDirFunc  = os.UserCacheDir
	isInteractiveFunc = terminal.IsInteractive
	newPromptUIFunc   = defaultPromptUI
)

// session is the runtime assembled from config, flags and environment.
type session struct {
	cfgPath string
	cfg     *config.Config
	log     logging.Logger
	engine  *engine.CLI
}

// configSource resolves the config path. An explicit --config must exist.
func (g *globalOptions) configSource() (string, bool, error) {
	if strings.TrimSpace(g.configPath) != "" {
		return g.configPath, true, nil
	}
	path, err := config.DefaultPath(os.LookupEnv)
	if err != nil {
		return "", false, err
	}
	return path, false, nil
}

// applyOverrides layers global flags over a loaded config and revalidates it.
func (g *globalOptions) applyOverrides(cfg *config.Config, source string) error {
	if g.runBase != "" {
		cfg.Paths.RunBase = g.runBase
	}
	if g.srcBase != "" {
		cfg.Paths.SrcBase = g.srcBase
	}
	if g.engine != "" {
		cfg.Engine.Command = g.engine
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.ExpandPaths(); err != nil {
		return err
	}
	if err := cfg.Validate(source); err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigValidation, err)
	}
	return nil
}

// load builds the session: config with flag overrides, logger and engine.
func (g *globalOptions) load(cmd *cobra.Command) (*session, error) {
	path, required, err := g.configSource()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfigFunc(path, required)
	if err != nil {
		return nil, err
	}
	if err := g.applyOverrides(cfg, path); err != nil {
		return nil, err
	}
	return sessionFromConfig(cmd, path, cfg)
}

// sessionFromConfig builds the logger and engine for an already resolved config.
func sessionFromConfig(cmd *cobra.Command, path string, cfg *config.Config) (*session, error) {
	log, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	cli, err := newEngineCLI(cmd, cfg, log)
	if err != nil {
		return nil, err
	}
	return &session{cfgPath: path, cfg: cfg, log: log, engine: cli}, nil
}

func newEngineCLI(cmd *cobra.Command, cfg *config.Config, log logging.Logger) (*engine.CLI, error) {
	argv, err := engine.CommandFromConfig(cfg.Engine)
	if err != nil {
		return nil, err
	}
	exports, err := engine.Exports(cfg)
	if err != nil {
		return nil, err
	}
	return &engine.CLI{
		Command: argv,
		Env:     engine.BuildEnv(os.Environ(), exports),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Logger:  log,
	}, nil
}

// runOptions are the per-invocation install flags.
type runOptions struct {
	runName   string
	resume    bool
	overwrite bool
	extend    bool
	yes       bool
	diffLines int
}

func addRunNameFlag(cmd *cobra.Command, ro *runOptions) {
	cmd.Flags().StringVar(&ro.runName, "run-name", "", messages.FlagRunName)
}

func addInstallFlags(cmd *cobra.Command, ro *runOptions) {
	addRunNameFlag(cmd, ro)
	cmd.Flags().BoolVar(&ro.resume, "resume", false, messages.FlagResume)
	cmd.Flags().BoolVar(&ro.overwrite, "overwrite", false, messages.FlagOverwrite)
	cmd.Flags().BoolVar(&ro.extend, "extend", false, messages.FlagExtend)
	cmd.Flags().BoolVarP(&ro.yes, "yes", "y", false, messages.FlagYes)
	cmd.Flags().IntVar(&ro.diffLines, "diff-lines", install.DefaultDiffMaxLines, messages.FlagDiffLines)
	cmd.MarkFlagsMutuallyExclusive("resume", "overwrite")
}

// applyRunFlags copies explicitly set decision flags into the run config.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, ro *runOptions) {
	if cmd.Flags().Changed("resume") {
		cfg.Run.Resume = ro.resume
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Run.Overwrite = ro.overwrite
	}
	if cmd.Flags().Changed("extend") {
		cfg.Run.Extend = ro.extend
	}
}

// newManager builds the install manager for flow.
func (s *session) newManager(cmd *cobra.Command, flow string, ro *runOptions) (*install.Manager, error) {
	opts := install.Options{
		Flow:    flow,
		RunName: ro.runName,
		Config:  *s.cfg,
		Engine:  s.engine,
		Logger:  s.log,
		Settle:  engine.SettlerFromConfig(s.cfg.Engine.StopTimeoutSeconds, s.cfg.Engine.StopPollIntervalMS),
		LockDir: s.lockDir(),
	}
	opts.DiffMaxLines = ro.diffLines
	if s.cfg.Run.Overwrite && !ro.yes && isInteractiveFunc() {
		opts.Prompter = overwritePrompter(newPromptUIFunc(cmd))
	}
	return install.New(opts)
}

// lockDir returns the per-user lock directory, or "" to install unlocked.
func (s *session) lockDir() string {
	dir, err := userCacheDirFunc()
	if err != nil {
		s.log.Warn(messages.CLILockDirUnavailableLog, "err", err)
		return ""
	}
	return filepath.Join(dir, "cylc-layer", "locks")
}

func defaultPromptUI(cmd *cobra.Command) prompt.UI {
	if strings.TrimSpace(os.Getenv("ACCESSIBLE")) != "" {
		return prompt.LineUI{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
	}
	return prompt.NewHuhUI()
}

func overwritePrompter(ui prompt.UI) install.Prompter {
	return install.PromptFuncs{ConfirmOverwriteFunc: func(id string, runExists bool) (bool, error) {
		description := messages.PromptOverwriteFreshDescription
		if runExists {
			description = messages.PromptOverwriteExistingDescription
		}
		confirmed := false
		if err := ui.Confirm(fmt.Sprintf(messages.PromptOverwriteTitleFmt, id), description, &confirmed); err != nil {
			return false, err
		}
		return confirmed, nil
	}}
}
