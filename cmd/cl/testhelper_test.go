package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/testutil"
)

// cliEnv is an isolated runtime: temp run and source trees, a recording
// engine stub and a config path that does not exist.
type cliEnv struct {
	t       *testing.T
	runBase string
	srcBase string
	flow    string
	stub    string
	stubLog string
}

func newCLIEnv(t *testing.T, engineExit int) *cliEnv {
	t.Helper()
	root := t.TempDir()
	env := &cliEnv{
		t:       t,
		runBase: filepath.Join(root, "run"),
		srcBase: filepath.Join(root, "src"),
		flow:    filepath.Join(root, "flows", "demo.cylc"),
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(env.flow), 0o755))
	require.NoError(t, os.WriteFile(env.flow, []byte("[scheduling]\n"), 0o644))
	binDir := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	env.stub, env.stubLog = testutil.WriteRecordingStub(t, binDir, "cylc", engineExit)

	t.Setenv(config.EnvConfigPath, filepath.Join(root, "missing.toml"))
	t.Setenv(config.EnvRunDir, "")
	t.Setenv(config.EnvSrcDir, "")
	t.Setenv(config.EnvConda, "")
	t.Setenv("ACCESSIBLE", "")

	cacheDir := filepath.Join(root, "cache")
	origCache, origInteractive := userCacheDirFunc, isInteractiveFunc
	t.Cleanup(func() {
		userCacheDirFunc = origCache
		isInteractiveFunc = origInteractive
	})
	userCacheDirFunc = func() (string, error) { return cacheDir, nil }
	isInteractiveFunc = func() bool { return false }
	return env
}

// run executes the CLI with the env's engine and roots appended and returns
// stdout, stderr and the exit code (0 when exit was not called).
func (e *cliEnv) run(args ...string) (string, string, int) {
	e.t.Helper()
	argv := append([]string{"cl"}, args...)
	argv = insertGlobalFlags(argv, "--engine", e.stub, "--run-base", e.runBase, "--src-base", e.srcBase)
	var stdout, stderr bytes.Buffer
	code := 0
	runMain(argv, &stdout, &stderr, func(c int) { code = c })
	return stdout.String(), stderr.String(), code
}

// insertGlobalFlags places flags right after the program name so they never
// land behind a "--" separator.
func insertGlobalFlags(argv []string, flags ...string) []string {
	out := append([]string{argv[0]}, flags...)
	return append(out, argv[1:]...)
}

func (e *cliEnv) invocations() [][]string {
	e.t.Helper()
	return testutil.ReadInvocations(e.t, e.stubLog)
}

func (e *cliEnv) mkRun(names ...string) {
	e.t.Helper()
	for _, name := range names {
		require.NoError(e.t, os.MkdirAll(filepath.Join(e.runBase, "demo", name), 0o755))
	}
}

func (e *cliEnv) srcDir() string {
	return filepath.Join(e.srcBase, "demo")
}
