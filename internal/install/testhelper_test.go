package install

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/engine"
)

type engineCall struct {
	action string
	target string
	opts   []string
}

// fakeEngine records invocations. fail maps an action to the error it returns;
// onInvoke runs before the result is returned.
type fakeEngine struct {
	calls    []engineCall
	fail     map[string]error
	onInvoke func(action string, target string)
}

func (f *fakeEngine) Invoke(action string, target string, opts ...string) error {
	f.calls = append(f.calls, engineCall{action: action, target: target, opts: append([]string{}, opts...)})
	if f.onInvoke != nil {
		f.onInvoke(action, target)
	}
	if f.fail != nil {
		return f.fail[action]
	}
	return nil
}

func (f *fakeEngine) actions() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.action)
	}
	return out
}

type fakeSettler struct {
	paths []string
	err   error
}

func (s *fakeSettler) Settle(_ context.Context, contactPath string) error {
	s.paths = append(s.paths, contactPath)
	return s.err
}

// faultSystem delegates to RealSystem unless an override is set.
type faultSystem struct {
	RealSystem
	removeErr  error
	readDirErr error
	statErr    map[string]error
}

func (f faultSystem) Remove(name string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.RealSystem.Remove(name)
}

func (f faultSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if f.readDirErr != nil {
		return nil, f.readDirErr
	}
	return f.RealSystem.ReadDir(name)
}

func (f faultSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := f.statErr[name]; ok {
		return nil, err
	}
	return f.RealSystem.Stat(name)
}

type testEnv struct {
	root string
	flow string
	cfg  config.Config
	eng  *fakeEngine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	cfg := config.Defaults()
	cfg.Paths.RunBase = filepath.Join(root, "cylc-run")
	cfg.Paths.SrcBase = filepath.Join(root, "cylc-src")
	flow := writeFlow(t, filepath.Join(root, "work"), "my_wf.cylc", "[scheduling]\n    cycling mode = integer\n")
	return &testEnv{root: root, flow: flow, cfg: cfg, eng: &fakeEngine{}}
}

func (e *testEnv) manager(t *testing.T, mutate func(*Options)) *Manager {
	t.Helper()
	opts := Options{Flow: e.flow, Config: e.cfg, Engine: e.eng}
	if mutate != nil {
		mutate(&opts)
	}
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func (e *testEnv) mkRunDirs(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(e.cfg.Paths.RunBase, "my_wf", name), 0o755); err != nil {
			t.Fatalf("mkdir run: %v", err)
		}
	}
}

func writeFlow(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write flow: %v", err)
	}
	return path
}

func invocationErr(action string, code int) error {
	return &engine.InvocationError{Action: action, Target: "my_wf/exp", ExitCode: code}
}
