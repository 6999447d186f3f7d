package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

var userConfigDirFunc = os.UserConfigDir

// DefaultPath returns the config file location: $CYLC_LAYER_CONFIG when set,
// otherwise <user config dir>/cylc-layer/config.toml.
func DefaultPath(lookupEnv LookupEnvFunc) (string, error) {
	if lookupEnv != nil {
		if v, ok := lookupEnv(EnvConfigPath); ok && strings.TrimSpace(v) != "" {
			return homedir.Expand(strings.TrimSpace(v))
		}
	}
	dir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigUserDirFailedFmt, err)
	}
	return filepath.Join(dir, "cylc-layer", "config.toml"), nil
}

// ExpandPaths resolves a leading ~ in every path-valued field and cleans them.
func (c *Config) ExpandPaths() error {
	fields := []*string{&c.Paths.RunBase, &c.Paths.SrcBase, &c.Engine.EnvFile}
	for _, field := range fields {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := homedir.Expand(strings.TrimSpace(*field))
		if err != nil {
			return fmt.Errorf(messages.ConfigExpandPathFmt, *field, err)
		}
		*field = filepath.Clean(expanded)
	}
	return nil
}
