package config

// Environment variables that override file values.
const (
	EnvRunDir = "CYLC_RUN_DIR"
	EnvSrcDir = "CYLC_SRC_DIR"
	EnvConda  = "CYLC_CONDA"
	// EnvConfigPath points at an alternate config file.
	EnvConfigPath = "CYLC_LAYER_CONFIG"
)

// Default values for a fresh configuration.
const (
	DefaultRunBase            = "~/cylc-run"
	DefaultSrcBase            = "~/cylc-src"
	DefaultRunName            = "exp"
	DefaultWorkflowFile       = "flow.cylc"
	DefaultEngineCommand      = "cylc"
	DefaultStopTimeoutSeconds = 3
	DefaultStopPollIntervalMS = 250
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
)

// Config is the full cylc-layer configuration record.
type Config struct {
	Paths  PathsConfig  `toml:"paths"`
	Run    RunConfig    `toml:"run"`
	Engine EngineConfig `toml:"engine"`
	Log    LogConfig    `toml:"log"`
}

// PathsConfig locates the engine-managed directory trees.
type PathsConfig struct {
	RunBase string `toml:"run_base"`
	SrcBase string `toml:"src_base"`
}

// RunConfig holds the install decision flags and run naming defaults.
type RunConfig struct {
	DefaultName  string `toml:"default_name"`
	WorkflowFile string `toml:"workflow_file"`
	Resume       bool   `toml:"resume"`
	Overwrite    bool   `toml:"overwrite"`
	Extend       bool   `toml:"extend"`
}

// EngineConfig describes how the engine binary is invoked.
type EngineConfig struct {
	Command            string `toml:"command"`
	CondaEnv           string `toml:"conda_env"`
	EnvFile            string `toml:"env_file"`
	StopTimeoutSeconds int    `toml:"stop_timeout_seconds"`
	StopPollIntervalMS int    `toml:"stop_poll_interval_ms"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Paths: PathsConfig{
			RunBase: DefaultRunBase,
			SrcBase: DefaultSrcBase,
		},
		Run: RunConfig{
			DefaultName:  DefaultRunName,
			WorkflowFile: DefaultWorkflowFile,
		},
		Engine: EngineConfig{
			Command:            DefaultEngineCommand,
			StopTimeoutSeconds: DefaultStopTimeoutSeconds,
			StopPollIntervalMS: DefaultStopPollIntervalMS,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
