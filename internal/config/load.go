package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax or filesystem errors).
var ErrConfigValidation = errors.New("config validation failed")

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

var readFileFunc = os.ReadFile

// Load reads the config file at path, applies environment overrides from the
// process environment, expands paths, and validates the result.
// A missing file yields defaults unless required is set.
func Load(path string, required bool) (*Config, error) {
	return LoadWithEnv(path, required, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, required bool, lookupEnv LookupEnvFunc) (*Config, error) {
	cfg, err := readConfig(path, required)
	if err != nil {
		return nil, err
	}
	source := path
	if source == "" {
		source = "defaults"
	}
	cfg.ApplyEnv(lookupEnv)
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}

func readConfig(path string, required bool) (*Config, error) {
	if path == "" {
		if required {
			return nil, fmt.Errorf(messages.ConfigPathRequired)
		}
		cfg := Defaults()
		return &cfg, nil
	}
	data, err := readFileFunc(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			cfg := Defaults()
			return &cfg, nil
		}
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig decodes TOML data over the defaults. Unknown keys are rejected.
// source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with unknown-field rejection.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&cfg)
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		keys := make([]string, 0, len(strict.Errors))
		for _, e := range strict.Errors {
			keys = append(keys, strings.Join(e.Key(), "."))
		}
		return fmt.Errorf(messages.ConfigUnknownKeyListFmt, strings.Join(keys, ", "), err)
	}
	return err
}

// ApplyEnv overrides file values with CYLC_RUN_DIR, CYLC_SRC_DIR and CYLC_CONDA.
// Empty values are ignored.
func (c *Config) ApplyEnv(lookupEnv LookupEnvFunc) {
	if lookupEnv == nil {
		return
	}
	if v, ok := lookupEnv(EnvRunDir); ok && strings.TrimSpace(v) != "" {
		c.Paths.RunBase = v
	}
	if v, ok := lookupEnv(EnvSrcDir); ok && strings.TrimSpace(v) != "" {
		c.Paths.SrcBase = v
	}
	if v, ok := lookupEnv(EnvConda); ok && strings.TrimSpace(v) != "" {
		c.Engine.CondaEnv = strings.TrimSpace(v)
	}
}

// Marshal renders the configuration as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMarshalFailedFmt, err)
	}
	return data, nil
}
