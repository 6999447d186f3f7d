package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayUsesRunNameAndEngineArgs(t *testing.T) {
	env := newCLIEnv(t, 0)

	_, stderr, code := env.run("play", env.flow, "--run-name", "exp3", "--", "--pause")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{{"play", "demo/exp3", "--pause"}}, env.invocations())
}

func TestPlayEngineFailure(t *testing.T) {
	env := newCLIEnv(t, 3)

	_, _, code := env.run("play", env.flow)
	assert.Equal(t, 3, code)
}

func TestStopIgnoresEngineFailure(t *testing.T) {
	env := newCLIEnv(t, 1)

	stdout, _, code := env.run("stop", env.flow)
	assert.Equal(t, 0, code)
	assert.Equal(t, [][]string{{"stop", "demo/exp"}}, env.invocations())
	assert.Contains(t, stdout, "demo/exp")
}

func TestCleanSkipsMissingRun(t *testing.T) {
	env := newCLIEnv(t, 0)

	_, stderr, code := env.run("clean", env.flow)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, env.invocations())
}

func TestCleanExistingRun(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp")

	_, stderr, code := env.run("clean", env.flow)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{{"clean", "demo/exp"}}, env.invocations())
}

func TestCleanWithStopStopsFirst(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp")

	_, stderr, code := env.run("clean", env.flow, "--stop")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{{"stop", "demo/exp"}, {"clean", "demo/exp"}}, env.invocations())
}

func TestValidateLinksAndPassesArgs(t *testing.T) {
	env := newCLIEnv(t, 0)

	_, stderr, code := env.run("validate", env.flow, "--", "--check-circular")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, [][]string{{"validate", "demo/exp", "--check-circular"}}, env.invocations())
}

func TestValidateRejectsExtraPositional(t *testing.T) {
	env := newCLIEnv(t, 0)

	_, stderr, code := env.run("validate", env.flow, "extra")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "validate")
	assert.Empty(t, env.invocations())
}

func TestNamesListsRunsAndNext(t *testing.T) {
	env := newCLIEnv(t, 0)
	env.mkRun("exp", "exp1", "other")

	stdout, stderr, code := env.run("names", env.flow)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "demo/exp\n")
	assert.Contains(t, stdout, "demo/exp1\n")
	assert.NotContains(t, stdout, "other")
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Contains(t, lines[len(lines)-1], "demo/exp2")
	assert.Empty(t, env.invocations())
}

func TestNamesWithoutRuns(t *testing.T) {
	env := newCLIEnv(t, 0)

	stdout, stderr, code := env.run("names", env.flow, "--run-name", "trial")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "demo/trial")
}
