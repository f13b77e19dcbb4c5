package opython

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth bounds nesting of marshalled containers
const DefaultMaxDepth = 256

// Config controls how a fresh interpreter is prepared
type Config struct {
	// Home is exported as PYTHONHOME before the interpreter starts
	Home string `yaml:"home" json:"home,omitempty" validate:"omitempty,dir" jsonschema:"description=Python home directory (PYTHONHOME)"`
	// Path entries are appended to sys.path
	Path []string `yaml:"path" json:"path,omitempty" validate:"dive,dir" jsonschema:"description=Directories appended to sys.path"`
	// Preload modules are imported right after start
	Preload []string `yaml:"preload" json:"preload,omitempty" validate:"dive,required" jsonschema:"description=Modules imported right after start"`
	// Signals installs Python signal handlers (Py_InitializeEx(1))
	Signals bool `yaml:"signals" json:"signals,omitempty" jsonschema:"description=Install Python signal handlers"`
	// MaxDepth bounds nesting of marshalled lists, tuples and dicts
	MaxDepth int `yaml:"max_depth" json:"max_depth,omitempty" validate:"omitempty,min=1,max=4096" jsonschema:"minimum=1,maximum=4096,default=256"`
	// LogLevel is used by the command line tool
	LogLevel string `yaml:"log_level" json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

var validate = validator.New()

// DefaultConfig returns configuration used when none is given
func DefaultConfig() *Config {
	return &Config{MaxDepth: DefaultMaxDepth, LogLevel: "info"}
}

// ParseConfig decodes and validates YAML configuration
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads YAML configuration from file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Level returns slog level for LogLevel
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) maxDepth() int {
	if c == nil || c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// ConfigSchema returns JSON schema of the configuration file
func ConfigSchema() ([]byte, error) {
	r := jsonschema.Reflector{ExpandedStruct: true}
	return json.MarshalIndent(r.Reflect(&Config{}), "", "  ")
}
