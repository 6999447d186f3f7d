package doctor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/install"
	"github.com/conn-castle/cylc-layer/internal/testutil"
)

type nopEngine struct{}

func (nopEngine) Invoke(string, string, ...string) error { return nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Defaults()
	cfg.Paths.RunBase = filepath.Join(root, "cylc-run")
	cfg.Paths.SrcBase = filepath.Join(root, "cylc-src")
	return &cfg
}

func TestCheckConfigDefaults(t *testing.T) {
	t.Setenv(config.EnvRunDir, "")
	t.Setenv(config.EnvSrcDir, "")
	results, cfg := CheckConfig(filepath.Join(t.TempDir(), "missing.toml"), false)
	require.Len(t, results, 1)
	assert.Equal(t, StatusOK, results[0].Status)
	require.NotNil(t, cfg)
	assert.Equal(t, config.DefaultRunName, cfg.Run.DefaultName)
}

func TestCheckConfigReportsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[run]\ndefault-name = \"exp\"\n\n[extra]\nx = 1\n"), 0o644))

	results, cfg := CheckConfig(path, true)
	assert.Nil(t, cfg)
	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Contains(t, results[0].Message, "extra")
	assert.Contains(t, results[0].Message, "run.default-name")
	assert.Contains(t, results[0].Recommendation, "did you mean run.default_name?")
	assert.Contains(t, results[0].Recommendation, "allowed keys: engine, log, paths, run")
}

func TestCheckConfigLoadFailure(t *testing.T) {
	orig := loadConfigFunc
	t.Cleanup(func() { loadConfigFunc = orig })
	loadConfigFunc = func(string, bool) (*config.Config, error) { return nil, errors.New("boom") }

	results, cfg := CheckConfig("/x/config.toml", true)
	assert.Nil(t, cfg)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Contains(t, results[0].Message, "boom")
	assert.True(t, HasFailure(results))
}

func TestCheckDirectories(t *testing.T) {
	cfg := testConfig(t)
	results := CheckDirectories(cfg)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, StatusWarn, r.Status)
	}

	require.NoError(t, os.MkdirAll(cfg.Paths.RunBase, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Paths.SrcBase), 0o755))
	require.NoError(t, os.WriteFile(cfg.Paths.SrcBase, []byte("file"), 0o644))

	results = CheckDirectories(cfg)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, StatusFail, results[1].Status)
	assert.Contains(t, results[1].Message, "not a directory")
}

func TestCheckEngine(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "cylc")
	t.Setenv("PATH", dir)

	cfg := testConfig(t)
	result := CheckEngine(cfg)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, result.Message, filepath.Join(dir, "cylc"))

	cfg.Engine.Command = "not-installed-engine"
	result = CheckEngine(cfg)
	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "not-installed-engine")

	cfg.Engine.Command = `"broken`
	result = CheckEngine(cfg)
	assert.Equal(t, StatusFail, result.Status)
}

func TestCheckEngineCondaRecommendation(t *testing.T) {
	orig := lookPathFunc
	t.Cleanup(func() { lookPathFunc = orig })
	var looked string
	lookPathFunc = func(file string) (string, error) {
		looked = file
		return "", errors.New("not found")
	}
	cfg := testConfig(t)
	cfg.Engine.CondaEnv = "cylcenv"

	result := CheckEngine(cfg)
	assert.Equal(t, "conda", looked)
	assert.Equal(t, StatusFail, result.Status)
	assert.True(t, strings.Contains(strings.ToLower(result.Recommendation), "conda"))
}

func TestCheckEnvFile(t *testing.T) {
	cfg := testConfig(t)
	assert.Empty(t, CheckEnvFile(cfg))

	cfg.Engine.EnvFile = filepath.Join(t.TempDir(), "engine.env")
	results := CheckEnvFile(cfg)
	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)

	require.NoError(t, os.WriteFile(cfg.Engine.EnvFile, []byte("A=1\nB=2\n"), 0o600))
	results = CheckEnvFile(cfg)
	require.Len(t, results, 1)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Contains(t, results[0].Message, "2")
}

func TestCheckWorkflow(t *testing.T) {
	cfg := testConfig(t)
	flow := filepath.Join(t.TempDir(), "my_wf.cylc")
	require.NoError(t, os.WriteFile(flow, []byte("[scheduling]\n"), 0o644))
	m, err := install.New(install.Options{Flow: flow, Config: *cfg, Engine: nopEngine{}})
	require.NoError(t, err)

	results := CheckWorkflow(m)
	require.Len(t, results, 2)
	assert.False(t, HasFailure(results))
	assert.Contains(t, results[0].Message, "not linked")

	require.NoError(t, m.LinkFlowToSrc())
	require.NoError(t, os.MkdirAll(filepath.Dir(m.ContactPath()), 0o755))
	require.NoError(t, os.WriteFile(m.ContactPath(), nil, 0o644))

	results = CheckWorkflow(m)
	require.Len(t, results, 2)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, StatusWarn, results[1].Status)

	require.NoError(t, os.Remove(m.ContactPath()))
	results = CheckWorkflow(m)
	assert.Equal(t, StatusOK, results[1].Status)
}

func TestCheckWorkflowSourceConflict(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	flow := filepath.Join(dir, "my_wf.cylc")
	other := filepath.Join(dir, "other.cylc")
	require.NoError(t, os.WriteFile(flow, []byte("a\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("b\n"), 0o644))
	m, err := install.New(install.Options{Flow: flow, Config: *cfg, Engine: nopEngine{}})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(m.SrcWorkflowDir(), 0o755))
	require.NoError(t, os.Symlink(other, m.SrcWorkflowPath()))

	results := CheckWorkflow(m)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.True(t, HasFailure(results))
}

func TestCheckWorkflowMissingFlow(t *testing.T) {
	cfg := testConfig(t)
	m, err := install.New(install.Options{Flow: filepath.Join(t.TempDir(), "gone.cylc"), Config: *cfg, Engine: nopEngine{}})
	require.NoError(t, err)

	results := CheckWorkflow(m)
	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)
}
