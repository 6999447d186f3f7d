package messages

// Config messages for configuration loading and validation.
// Validation messages take the config source as their first argument.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s contains unrecognized keys: %w"
	ConfigUnknownKeyListFmt   = "%s (%w)"
	ConfigPathRequired        = "config path is required"
	ConfigUserDirFailedFmt    = "resolve user config directory: %w"
	ConfigExpandPathFmt       = "expand path %s: %w"
	ConfigMarshalFailedFmt    = "render config: %w"

	ConfigRunBaseRequiredFmt          = "%s: paths.run_base is required"
	ConfigSrcBaseRequiredFmt          = "%s: paths.src_base is required"
	ConfigFieldInvalidFmt             = "%s: %s is invalid: %w"
	ConfigResumeOverwriteExclusiveFmt = "%s: run.resume and run.overwrite cannot both be set"
	ConfigEngineCommandRequiredFmt    = "%s: engine.command is required"
	ConfigNegativeFmt                 = "%s: %s must not be negative"
	ConfigLogFormatInvalidFmt         = "%s: log.format must be one of text, json, logfmt"

	ConfigSegmentEmpty        = "name is empty"
	ConfigSegmentSeparatorFmt = "name %q must be a single path segment"
)
