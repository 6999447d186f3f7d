package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

// LinkFlowToSrc symlinks the workflow definition into the source cache.
// An existing link to the same file is left alone; a link to any other file
// is a *ConflictError carrying both paths and a diff preview.
func (m *Manager) LinkFlowToSrc() error {
	flowInfo, err := m.sys.Stat(m.flow)
	if err != nil {
		return fmt.Errorf(messages.InstallFlowMissingFmt, m.flow, err)
	}
	target := m.SrcWorkflowPath()
	if err := m.sys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf(messages.InstallCreateSrcDirFmt, filepath.Dir(target), err)
	}

	err = m.sys.Symlink(m.flow, target)
	if err == nil {
		m.log.Info(messages.InstallLinkedLog, "flow", m.flow, "link", target)
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf(messages.InstallLinkFmt, m.flow, target, err)
	}

	if existing, statErr := m.sys.Stat(target); statErr == nil && os.SameFile(existing, flowInfo) {
		m.log.Debug(messages.InstallLinkUnchangedLog, "link", target)
		return nil
	}
	return &ConflictError{
		Kind:      ConflictSourceLink,
		ID:        m.ID(),
		Installed: m.installedFlow(target),
		Requested: m.flow,
		Diff:      m.conflictDiff(target, m.flow),
	}
}

// installedFlow resolves what the source cache entry at target points to,
// falling back to target itself when it is not a readable symlink.
func (m *Manager) installedFlow(target string) string {
	dest, err := m.sys.Readlink(target)
	if err != nil {
		return target
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(target), dest)
	}
	return dest
}
