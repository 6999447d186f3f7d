// Package install decides how a workflow reaches the engine's run tree:
// resume, overwrite or fresh install, with identity conflict detection.
package install

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/engine"
	"github.com/conn-castle/cylc-layer/internal/lock"
	"github.com/conn-castle/cylc-layer/internal/logging"
	"github.com/conn-castle/cylc-layer/internal/messages"
	"github.com/conn-castle/cylc-layer/internal/runname"
)

// Engine runs an engine action against a target and blocks until it exits.
type Engine interface {
	Invoke(action string, target string, opts ...string) error
}

// Settler waits for the engine to release a run after a stop.
type Settler interface {
	Settle(ctx context.Context, contactPath string) error
}

// Options configures a Manager.
type Options struct {
	// Flow is the workflow definition file. Relative paths are made absolute.
	Flow string
	// RunName is the base run name; empty uses Config.Run.DefaultName.
	RunName string
	Config  config.Config
	Engine  Engine
	// System defaults to RealSystem.
	System System
	Logger logging.Logger
	// Settle is the post-stop wait; nil skips waiting.
	Settle Settler
	// Prompter confirms overwrites; nil proceeds without asking.
	Prompter Prompter
	// LockDir holds per-workflow install locks; empty disables locking.
	LockDir      string
	DiffMaxLines int
}

// Manager owns one workflow identity and its install lifecycle.
// A Manager is single-use for installation: create a new one per attempt.
type Manager struct {
	flow             string
	workflowName     string
	runName          string
	installedRunName string

	cfg          config.Config
	engine       Engine
	sys          System
	log          logging.Logger
	settler      Settler
	prompter     Prompter
	lockDir      string
	diffMaxLines int
}

var absFunc = filepath.Abs

// New validates opts and builds a Manager.
func New(opts Options) (*Manager, error) {
	if strings.TrimSpace(opts.Flow) == "" {
		return nil, errors.New(messages.InstallFlowRequired)
	}
	if opts.Engine == nil {
		return nil, errors.New(messages.InstallEngineRequired)
	}
	flow, err := absFunc(opts.Flow)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallResolveFlowFmt, opts.Flow, err)
	}
	workflowName := workflowNameFor(flow)
	if err := config.ValidateRunName(workflowName); err != nil {
		return nil, fmt.Errorf(messages.InstallWorkflowNameInvalidFmt, flow, err)
	}
	runName := opts.RunName
	if runName == "" {
		runName = opts.Config.Run.DefaultName
	}
	if err := config.ValidateRunName(runName); err != nil {
		return nil, fmt.Errorf(messages.InstallRunNameInvalidFmt, err)
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}
	return &Manager{
		flow:         flow,
		workflowName: workflowName,
		runName:      runName,
		cfg:          opts.Config,
		engine:       opts.Engine,
		sys:          sys,
		log:          logging.OrNop(opts.Logger),
		settler:      opts.Settle,
		prompter:     opts.Prompter,
		lockDir:      opts.LockDir,
		diffMaxLines: opts.DiffMaxLines,
	}, nil
}

// workflowNameFor returns the file stem: the base name without its final extension.
func workflowNameFor(flow string) string {
	base := filepath.Base(flow)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Flow returns the absolute workflow definition path.
func (m *Manager) Flow() string { return m.flow }

// WorkflowName returns the workflow name derived from the definition file.
func (m *Manager) WorkflowName() string { return m.workflowName }

// RunName returns the base run name.
func (m *Manager) RunName() string { return m.runName }

// InstalledRunName returns the run name chosen by a successful install, or "".
func (m *Manager) InstalledRunName() string { return m.installedRunName }

func (m *Manager) activeRunName() string {
	if m.installedRunName != "" {
		return m.installedRunName
	}
	return m.runName
}

// ID returns the engine addressing key "<workflow>/<run>". After a successful
// install the installed run name is used.
func (m *Manager) ID() string {
	return m.workflowName + "/" + m.activeRunName()
}

// RunPath returns the engine-managed run directory for ID.
func (m *Manager) RunPath() string {
	return filepath.Join(m.workflowRunDir(), m.activeRunName())
}

func (m *Manager) workflowRunDir() string {
	return filepath.Join(m.cfg.Paths.RunBase, m.workflowName)
}

// ContactPath returns the engine's contact marker for the run.
func (m *Manager) ContactPath() string {
	return filepath.Join(m.RunPath(), ".service", "contact")
}

// SrcWorkflowDir returns the workflow's directory in the source cache.
func (m *Manager) SrcWorkflowDir() string {
	return filepath.Join(m.cfg.Paths.SrcBase, m.workflowName)
}

// SrcWorkflowPath returns the source cache link to the workflow definition.
func (m *Manager) SrcWorkflowPath() string {
	return filepath.Join(m.SrcWorkflowDir(), m.cfg.Run.WorkflowFile)
}

// InstallWorkflow takes the configured transition: resume, or optional
// overwrite followed by conflict check, link and engine install.
// Conflicts are returned as *ConflictError; engine failures as *engine.InvocationError.
func (m *Manager) InstallWorkflow(ctx context.Context) (Decision, error) {
	if m.installedRunName != "" {
		return DecisionNone, ErrAlreadyInstalled
	}
	if m.lockDir == "" {
		return m.installWorkflow(ctx)
	}
	var decision Decision
	err := lock.With(lock.PathFor(m.lockDir, m.workflowName), func() error {
		var err error
		decision, err = m.installWorkflow(ctx)
		return err
	})
	return decision, err
}

func (m *Manager) installWorkflow(ctx context.Context) (Decision, error) {
	if m.cfg.Run.Resume {
		return DecisionResumed, m.resume()
	}

	decision := DecisionInstalled
	if m.cfg.Run.Overwrite {
		if err := m.confirmOverwrite(); err != nil {
			return DecisionNone, err
		}
		m.overwrite(ctx)
		decision = DecisionOverwritten
	}

	exists, err := m.exists(m.RunPath())
	if err != nil {
		return DecisionNone, err
	}
	if exists {
		return DecisionNone, &ConflictError{
			Kind:    ConflictRunExists,
			ID:      m.ID(),
			RunPath: m.RunPath(),
		}
	}

	if err := m.LinkFlowToSrc(); err != nil {
		return DecisionNone, err
	}
	name, err := m.RunNameToInstall()
	if err != nil {
		return DecisionNone, err
	}
	if err := m.install(name); err != nil {
		return DecisionNone, err
	}
	return decision, nil
}

func (m *Manager) resume() error {
	contact := m.ContactPath()
	if err := m.sys.Remove(contact); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(messages.InstallRemoveContactFmt, contact, err)
	}
	m.log.Info(messages.InstallResumedLog, "id", m.ID(), "contact", contact)
	return nil
}

func (m *Manager) confirmOverwrite() error {
	if m.prompter == nil {
		return nil
	}
	exists, err := m.exists(m.RunPath())
	if err != nil {
		return err
	}
	ok, err := m.prompter.ConfirmOverwrite(m.ID(), exists)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOverwriteDeclined
	}
	return nil
}

// overwrite stops and cleans the run and drops the source cache. Every step
// is attempted regardless of whether the run exists and failures are logged.
func (m *Manager) overwrite(ctx context.Context) {
	m.Stop(ctx)
	if err := m.engine.Invoke(engine.ActionClean, m.ID()); err != nil {
		m.log.Warn(messages.InstallBestEffortFailedLog, "action", engine.ActionClean, "id", m.ID(), "err", err)
	}
	if err := m.sys.RemoveAll(m.SrcWorkflowDir()); err != nil {
		m.log.Warn(messages.InstallBestEffortFailedLog, "action", "remove source cache", "path", m.SrcWorkflowDir(), "err", err)
	}
}

func (m *Manager) install(name string) error {
	if err := m.engine.Invoke(engine.ActionInstall, m.ID(), "--run-name", name); err != nil {
		return err
	}
	m.installedRunName = name
	m.log.Info(messages.InstallInstalledLog, "id", m.ID())
	return nil
}

// RunNameToInstall returns the run name an install would use: the extended
// name when run.extend is set, else the base run name.
func (m *Manager) RunNameToInstall() (string, error) {
	if m.cfg.Run.Extend {
		return m.ExtendRunName()
	}
	return m.runName, nil
}

// ExtendRunName lists the workflow's run directory and returns the next
// numerically suffixed sibling of the base run name.
func (m *Manager) ExtendRunName() (string, error) {
	existing, err := m.ExistingRunNames()
	if err != nil {
		return "", err
	}
	return runname.Extend(m.runName, existing), nil
}

// ExistingRunNames returns the sorted run names under the workflow's run
// directory that start with the base run name. A missing directory yields none.
func (m *Manager) ExistingRunNames() ([]string, error) {
	dir := m.workflowRunDir()
	entries, err := m.sys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf(messages.InstallListRunsFmt, dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return runname.Matching(m.runName, names), nil
}

// Play starts the run at ID. Failure is fatal.
func (m *Manager) Play(opts ...string) error {
	return m.engine.Invoke(engine.ActionPlay, m.ID(), opts...)
}

// Stop asks the engine to stop the run, ignoring failure, then waits for the
// contact marker to clear.
func (m *Manager) Stop(ctx context.Context) {
	if err := m.engine.Invoke(engine.ActionStop, m.ID()); err != nil {
		m.log.Warn(messages.InstallBestEffortFailedLog, "action", engine.ActionStop, "id", m.ID(), "err", err)
	}
	if m.settler == nil {
		return
	}
	if err := m.settler.Settle(ctx, m.ContactPath()); err != nil {
		m.log.Warn(messages.InstallSettleFailedLog, "id", m.ID(), "err", err)
	}
}

// Clean removes the run through the engine. A missing run directory is a no-op.
func (m *Manager) Clean() error {
	exists, err := m.exists(m.RunPath())
	if err != nil {
		return err
	}
	if !exists {
		m.log.Debug(messages.InstallCleanSkippedLog, "id", m.ID())
		return nil
	}
	return m.engine.Invoke(engine.ActionClean, m.ID())
}

// StopAndClean stops the run, then cleans it.
func (m *Manager) StopAndClean(ctx context.Context) error {
	m.Stop(ctx)
	return m.Clean()
}

// Validate links the workflow into the source cache and runs the engine's validator on it.
func (m *Manager) Validate(opts ...string) error {
	if err := m.LinkFlowToSrc(); err != nil {
		return err
	}
	return m.engine.Invoke(engine.ActionValidate, m.ID(), opts...)
}

func (m *Manager) exists(path string) (bool, error) {
	_, err := m.sys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf(messages.InstallStatFmt, path, err)
}
