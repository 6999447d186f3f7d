package engine

import (
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/messages"
)

// CommandFromConfig splits engine.command with shell-word rules and, when
// engine.conda_env is set, wraps it in `conda run`.
func CommandFromConfig(cfg config.EngineConfig) ([]string, error) {
	parts, err := shlex.Split(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf(messages.EngineCommandParseFmt, cfg.Command, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf(messages.EngineCommandRequired)
	}
	env := strings.TrimSpace(cfg.CondaEnv)
	if env == "" {
		return parts, nil
	}
	wrapped := []string{"conda", "run", "--no-capture-output", "-n", env}
	return append(wrapped, parts...), nil
}
