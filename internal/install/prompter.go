package install

import (
	"fmt"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

// Prompter confirms destructive install decisions.
type Prompter interface {
	// ConfirmOverwrite asks whether the run at id may be stopped, cleaned and
	// reinstalled. runExists reports whether its run directory is present.
	ConfirmOverwrite(id string, runExists bool) (bool, error)
}

// PromptOverwriteFunc asks whether to overwrite the run at id.
type PromptOverwriteFunc func(id string, runExists bool) (bool, error)

// PromptFuncs adapts optional prompt callbacks into a Prompter.
type PromptFuncs struct {
	ConfirmOverwriteFunc PromptOverwriteFunc
}

// ConfirmOverwrite calls ConfirmOverwriteFunc.
// Returns an error if no ConfirmOverwriteFunc is configured.
func (p PromptFuncs) ConfirmOverwrite(id string, runExists bool) (bool, error) {
	if p.ConfirmOverwriteFunc == nil {
		return false, fmt.Errorf(messages.InstallOverwritePromptRequired)
	}
	return p.ConfirmOverwriteFunc(id, runExists)
}
