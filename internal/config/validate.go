package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/cylc-layer/internal/logging"
	"github.com/conn-castle/cylc-layer/internal/messages"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if strings.TrimSpace(c.Paths.RunBase) == "" {
		return fmt.Errorf(messages.ConfigRunBaseRequiredFmt, path)
	}
	if strings.TrimSpace(c.Paths.SrcBase) == "" {
		return fmt.Errorf(messages.ConfigSrcBaseRequiredFmt, path)
	}
	if err := ValidateRunName(c.Run.DefaultName); err != nil {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, "run.default_name", err)
	}
	if err := validateSegment(c.Run.WorkflowFile); err != nil {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, "run.workflow_file", err)
	}
	if c.Run.Resume && c.Run.Overwrite {
		return fmt.Errorf(messages.ConfigResumeOverwriteExclusiveFmt, path)
	}
	if strings.TrimSpace(c.Engine.Command) == "" {
		return fmt.Errorf(messages.ConfigEngineCommandRequiredFmt, path)
	}
	if c.Engine.StopTimeoutSeconds < 0 {
		return fmt.Errorf(messages.ConfigNegativeFmt, path, "engine.stop_timeout_seconds")
	}
	if c.Engine.StopPollIntervalMS < 0 {
		return fmt.Errorf(messages.ConfigNegativeFmt, path, "engine.stop_poll_interval_ms")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, path, "log.level", err)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf(messages.ConfigLogFormatInvalidFmt, path)
	}
	return nil
}

// ValidateRunName checks that name can be used as a single run directory name.
func ValidateRunName(name string) error {
	return validateSegment(name)
}

func validateSegment(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(messages.ConfigSegmentEmpty)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf(messages.ConfigSegmentSeparatorFmt, name)
	}
	return nil
}
