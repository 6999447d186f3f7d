package install

import (
	"errors"
	"fmt"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

var (
	// ErrConflict matches every *ConflictError via errors.Is.
	ErrConflict = errors.New("workflow identity conflict")
	// ErrAlreadyInstalled is returned when InstallWorkflow runs twice on one Manager.
	ErrAlreadyInstalled = errors.New("workflow already installed by this manager")
	// ErrOverwriteDeclined is returned when the overwrite prompt is answered no.
	ErrOverwriteDeclined = errors.New("overwrite declined")
)

// ConflictKind identifies which identity check failed.
type ConflictKind int

const (
	// ConflictRunExists means a run directory already exists at the target id.
	ConflictRunExists ConflictKind = iota + 1
	// ConflictSourceLink means the source cache links to a different workflow file.
	ConflictSourceLink
)

// ConflictError reports a recoverable identity conflict. Callers may retry
// with different settings (another run name, --extend or --overwrite).
type ConflictError struct {
	Kind ConflictKind
	ID   string
	// RunPath is set for ConflictRunExists.
	RunPath string
	// Installed, Requested and Diff are set for ConflictSourceLink.
	Installed string
	Requested string
	Diff      string
}

func (e *ConflictError) Error() string {
	if e.Kind == ConflictSourceLink {
		return fmt.Sprintf(messages.InstallConflictSourceLinkFmt, e.ID, e.Installed, e.Requested)
	}
	return fmt.Sprintf(messages.InstallConflictRunExistsFmt, e.ID, e.RunPath)
}

// Is reports whether target is ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Decision is the transition InstallWorkflow took.
type Decision int

const (
	// DecisionNone is returned alongside errors.
	DecisionNone Decision = iota
	// DecisionResumed means the contact marker was cleared and nothing was installed.
	DecisionResumed
	// DecisionInstalled means the workflow was linked and installed by the engine.
	DecisionInstalled
	// DecisionOverwritten means an existing run was stopped, cleaned and reinstalled.
	DecisionOverwritten
)

func (d Decision) String() string {
	switch d {
	case DecisionResumed:
		return "resumed"
	case DecisionInstalled:
		return "installed"
	case DecisionOverwritten:
		return "overwritten"
	default:
		return "none"
	}
}
