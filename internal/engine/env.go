package engine

import (
	"strings"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/envfile"
)

// Exports returns the variables cylc-layer exports to the engine: the run and
// source roots, then any entries from engine.env_file.
func Exports(cfg *config.Config) ([]envfile.Entry, error) {
	exports := []envfile.Entry{
		{Key: config.EnvRunDir, Value: cfg.Paths.RunBase},
		{Key: config.EnvSrcDir, Value: cfg.Paths.SrcBase},
	}
	if strings.TrimSpace(cfg.Engine.EnvFile) == "" {
		return exports, nil
	}
	fromFile, err := envfile.Read(cfg.Engine.EnvFile)
	if err != nil {
		return nil, err
	}
	return append(exports, fromFile...), nil
}

// BuildEnv overlays exports onto base. Later exports win.
func BuildEnv(base []string, exports []envfile.Entry) []string {
	env := append([]string{}, base...)
	for _, e := range exports {
		env = SetEnv(env, e.Key, e.Value)
	}
	return env
}

// GetEnv returns the value for the key from an env slice.
func GetEnv(env []string, key string) (string, bool) {
	for _, entry := range env {
		k, v, ok := strings.Cut(entry, "=")
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

// SetEnv sets or appends a key=value entry in an env slice.
func SetEnv(env []string, key string, value string) []string {
	entry := key + "=" + value
	for i, existing := range env {
		if strings.HasPrefix(existing, key+"=") {
			env[i] = entry
			return env
		}
	}
	return append(env, entry)
}
