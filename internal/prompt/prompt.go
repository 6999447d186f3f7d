// Package prompt asks the user to confirm destructive actions.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/cylc-layer/internal/messages"
	"github.com/conn-castle/cylc-layer/internal/terminal"
)

// ErrAborted is returned when the user cancels a prompt with esc or ctrl+c.
var ErrAborted = errors.New(messages.PromptAborted)

// UI asks yes/no questions.
type UI interface {
	Confirm(title string, description string, value *bool) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
	output     io.Writer
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI that renders on stderr and requires an interactive terminal.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive, output: os.Stderr}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return errors.New(messages.PromptRequiresTerminal)
}

// confirmKeyMap lets esc cancel in addition to ctrl+c.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	return km
}

// Confirm renders a yes/no prompt. value holds the default and receives the answer.
func (ui *HuhUI) Confirm(title string, description string, value *bool) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}
	output := ui.output
	if output == nil {
		output = os.Stderr
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(messages.PromptAffirmative).
				Negative(messages.PromptNegative).
				Value(value),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	form.WithShowHelp(true)
	form.WithProgramOptions(tea.WithOutput(output))

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	if err != nil {
		return fmt.Errorf(messages.PromptFailedFmt, err)
	}
	return nil
}
