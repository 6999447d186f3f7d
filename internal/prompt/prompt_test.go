package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRunForm(t *testing.T, fn func(*huh.Form) error) {
	t.Helper()
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })
	runFormFunc = fn
}

func TestHuhConfirmRequiresTerminal(t *testing.T) {
	stubRunForm(t, func(*huh.Form) error {
		t.Fatal("form must not run without a terminal")
		return nil
	})
	ui := &HuhUI{isTerminal: func() bool { return false }}
	value := false
	err := ui.Confirm("Overwrite?", "", &value)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestHuhConfirmRunsForm(t *testing.T) {
	ran := false
	stubRunForm(t, func(form *huh.Form) error {
		ran = true
		require.NotNil(t, form)
		return nil
	})
	ui := &HuhUI{isTerminal: func() bool { return true }, output: &bytes.Buffer{}}
	value := true
	require.NoError(t, ui.Confirm("Overwrite?", "details", &value))
	assert.True(t, ran)
	assert.True(t, value)
}

func TestHuhConfirmAbort(t *testing.T) {
	stubRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })
	ui := &HuhUI{isTerminal: func() bool { return true }}
	value := false
	assert.ErrorIs(t, ui.Confirm("Overwrite?", "", &value), ErrAborted)
}

func TestHuhConfirmFailure(t *testing.T) {
	boom := errors.New("tty gone")
	stubRunForm(t, func(*huh.Form) error { return boom })
	ui := &HuhUI{isTerminal: func() bool { return true }}
	value := false
	assert.ErrorIs(t, ui.Confirm("Overwrite?", "", &value), boom)
}

func TestConfirmKeyMapCancelsOnEsc(t *testing.T) {
	km := confirmKeyMap()
	assert.Contains(t, km.Quit.Keys(), "esc")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
}

func TestLineConfirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		def     bool
		want    bool
		wantErr bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "no", input: "no\n", def: true, want: false},
		{name: "empty takes default yes", input: "\n", def: true, want: true},
		{name: "empty takes default no", input: "\n", def: false, want: false},
		{name: "eof means no", input: "", def: true, want: false},
		{name: "retry then yes", input: "maybe\nyes\n", want: true},
		{name: "invalid at eof", input: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			value := tt.def
			err := LineUI{In: strings.NewReader(tt.input), Out: &out}.Confirm("Overwrite my_wf/exp?", "The run will be cleaned.", &value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, value)
			assert.Contains(t, out.String(), "The run will be cleaned.")
			assert.Contains(t, out.String(), "Overwrite my_wf/exp?")
		})
	}
}
