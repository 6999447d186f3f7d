package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/cylc-layer/internal/install"
	"github.com/conn-castle/cylc-layer/internal/prompt"
)

func TestInstallFreshInvokesEngine(t *testing.T) {
	env := newCLIEnv(t, 0)

	stdout, stderr, code := env.run("install", env.flow)
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, [][]string{{"install", "demo/exp", "--run-name", "exp"}}, env.invocations())
	assert.Contains(t, stdout, "installed")
	assert.Contains(t, stdout, "demo/exp")

	target, err := os.Readlink(filepath.Join(env.srcDir(), "flow.cylc"))
	require.NoError(t, err)
	assert.Equal(t, env.flow, target)
}

func TestInstallRunExistsExitsWithConflict(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp")

	_, stderr, code := env.run("install", env.flow)
	assert.Equal(t, exitConflict, code)
	assert.Contains(t, stderr, "demo/exp")
	assert.Empty(t, env.invocations())
}

func TestInstallSourceLinkConflictShowsDiff(t *testing.T) {
	env := newCLIEnv(t, 0)
	other := filepath.Join(filepath.Dir(env.flow), "other", "demo.cylc")
	require.NoError(t, os.MkdirAll(filepath.Dir(other), 0o755))
	require.NoError(t, os.WriteFile(other, []byte("[runtime]\n"), 0o644))
	require.NoError(t, os.MkdirAll(env.srcDir(), 0o755))
	require.NoError(t, os.Symlink(other, filepath.Join(env.srcDir(), "flow.cylc")))

	_, stderr, code := env.run("install", env.flow)
	assert.Equal(t, exitConflict, code)
	assert.Contains(t, stderr, other)
	assert.Contains(t, stderr, "-[runtime]")
	assert.Contains(t, stderr, "+[scheduling]")
	assert.Empty(t, env.invocations())
}

func TestInstallExtendPicksNextName(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp1", "exp2")

	stdout, stderr, code := env.run("install", env.flow, "--extend")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{{"install", "demo/exp", "--run-name", "exp3"}}, env.invocations())
	assert.Contains(t, stdout, "demo/exp3")
}

func TestInstallExtendConflictsWhenBaseRunExists(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp", "exp1")

	_, stderr, code := env.run("install", env.flow, "--extend")
	assert.Equal(t, exitConflict, code)
	assert.Contains(t, stderr, "demo/exp")
	assert.NotContains(t, stderr, "demo/exp2")
	assert.Contains(t, stderr, "--run-name")
	assert.Empty(t, env.invocations())
	assert.NoFileExists(t, filepath.Join(env.srcDir(), "flow.cylc"))
}

func TestInstallCustomRunName(t *testing.T) {
	env := newCLIEnv(t, 0)

	_, stderr, code := env.run("install", env.flow, "--run-name", "trial")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{{"install", "demo/trial", "--run-name", "trial"}}, env.invocations())
}

func TestInstallResumeRemovesContact(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp")
	contact := filepath.Join(env.runBase, "demo", "exp", ".service", "contact")
	require.NoError(t, os.MkdirAll(filepath.Dir(contact), 0o755))
	require.NoError(t, os.WriteFile(contact, []byte("host=x\n"), 0o644))

	stdout, stderr, code := env.run("install", env.flow, "--resume")
	require.Equal(t, 0, code, stderr)
	assert.NoFileExists(t, contact)
	assert.Empty(t, env.invocations())
	assert.Contains(t, stdout, "resumed")
}

func TestInstallResumeAndOverwriteRejected(t *testing.T) {
	env := newCLIEnv(t, 0)

	_, stderr, code := env.run("install", env.flow, "--resume", "--overwrite")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "resume")
	assert.Empty(t, env.invocations())
}

func TestInstallOverwriteNonInteractive(t *testing.T) {
	env := newCLIEnv(t, 0)
	stale := filepath.Join(env.srcDir(), "stale.txt")
	require.NoError(t, os.MkdirAll(env.srcDir(), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))

	stdout, stderr, code := env.run("install", env.flow, "--overwrite")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{
		{"stop", "demo/exp"},
		{"clean", "demo/exp"},
		{"install", "demo/exp", "--run-name", "exp"},
	}, env.invocations())
	assert.NoFileExists(t, stale)
	assert.Contains(t, stdout, "overwritten")
}

type fakeUI struct {
	answer bool
	err    error
	titles []string
}

func (f *fakeUI) Confirm(title string, _ string, value *bool) error {
	f.titles = append(f.titles, title)
	if f.err != nil {
		return f.err
	}
	*value = f.answer
	return nil
}

func withPromptUI(t *testing.T, ui prompt.UI) {
	t.Helper()
	origUI, origInteractive := newPromptUIFunc, isInteractiveFunc
	t.Cleanup(func() {
		newPromptUIFunc = origUI
		isInteractiveFunc = origInteractive
	})
	newPromptUIFunc = func(*cobra.Command) prompt.UI { return ui }
	isInteractiveFunc = func() bool { return true }
}

func TestInstallOverwriteDeclined(t *testing.T) {
	env := newCLIEnv(t, 0)
	ui := &fakeUI{answer: false}
	withPromptUI(t, ui)

	_, stderr, code := env.run("install", env.flow, "--overwrite")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, install.ErrOverwriteDeclined.Error())
	assert.Empty(t, env.invocations())
	require.Len(t, ui.titles, 1)
	assert.Contains(t, ui.titles[0], "demo/exp")
}

func TestInstallOverwriteConfirmed(t *testing.T) {
	env := newCLIEnv(t, 0)
	withPromptUI(t, &fakeUI{answer: true})

	_, stderr, code := env.run("install", env.flow, "--overwrite")
	require.Equal(t, 0, code, stderr)
	assert.Len(t, env.invocations(), 3)
}

func TestInstallOverwriteYesSkipsPrompt(t *testing.T) {
	env := newCLIEnv(t, 0)
	ui := &fakeUI{answer: false}
	withPromptUI(t, ui)

	_, stderr, code := env.run("install", env.flow, "--overwrite", "--yes")
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, ui.titles)
}

func TestInstallEngineExitStatusPassesThrough(t *testing.T) {
	env := newCLIEnv(t, 7)

	_, stderr, code := env.run("install", env.flow)
	assert.Equal(t, 7, code)
	assert.Contains(t, stderr, "install")
}

func TestInstallRequiresOneFlow(t *testing.T) {
	env := newCLIEnv(t, 0)

	_, _, code := env.run("install")
	assert.Equal(t, 1, code)
}

func TestRunInstallsThenPlaysWithEngineArgs(t *testing.T) {
	env := newCLIEnv(t, 0)

	stdout, stderr, code := env.run("run", env.flow, "--extend", "--", "--no-detach", "--hold")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{
		{"install", "demo/exp", "--run-name", "exp"},
		{"play", "demo/exp", "--no-detach", "--hold"},
	}, env.invocations())
	assert.Contains(t, stdout, "stub play")
}

func TestRunStopsAfterInstallConflict(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp")

	_, _, code := env.run("run", env.flow)
	assert.Equal(t, exitConflict, code)
	assert.Empty(t, env.invocations())
}

func TestRunResumePlaysExistingRun(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp")

	_, stderr, code := env.run("run", env.flow, "--resume")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{{"play", "demo/exp"}}, env.invocations())
}

func TestPrintDiffKeepsEveryLine(t *testing.T) {
	var b strings.Builder
	printDiff(&b, "--- a\n+++ b\n@@ -1 +1 @@\n-old\n+new\n ctx\n")
	out := b.String()
	for _, want := range []string{"--- a", "+++ b", "@@ -1 +1 @@", "-old", "+new", " ctx"} {
		assert.Contains(t, out, want)
	}
}
