package internal

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/xiaobogaga/sol25/util"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = "sol25.yaml"

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings of a compilation. The zero value is not usable, start from DefaultConfig
// or LoadConfig.
type Config struct {
	// EntryClass must exist and directly declare EntryMethod as an instance method.
	EntryClass  string `yaml:"entry_class"`
	EntryMethod string `yaml:"entry_method"`
	// Language is written to the language attribute of the program.
	Language string `yaml:"language"`
	// Indent used by the xml writer.
	Indent string `yaml:"indent"`
	// Color of diagnostics: auto (only on terminals), always or never.
	Color string `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		EntryClass:  "Main",
		EntryMethod: "run",
		Language:    LanguageName,
		Indent:      "\t",
		Color:       ColorAuto,
	}
}

// LoadConfig reads and parses a sol25.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, newError(InputError, 0, "reading config %s: %v", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses sol25.yaml content. Omitted keys keep their default value. The path argument
// is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, newError(InputError, 0, "parsing %s: %v", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig searches for sol25.yaml starting from dir and walking up to parent directories.
// Returns an empty path and nil error if there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (cfg *Config) validate(path string) error {
	if !isClassName(cfg.EntryClass) {
		return newError(InputError, 0, "%s: entry_class %q is not a class name", path, cfg.EntryClass)
	}
	if cfg.EntryMethod == "" {
		return newError(InputError, 0, "%s: entry_method is required", path)
	}
	if cfg.Language == "" {
		return newError(InputError, 0, "%s: language is required", path)
	}
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return newError(InputError, 0, "%s: color must be auto, always or never, not %q", path, cfg.Color)
	}
	return nil
}

func isClassName(name string) bool {
	if name == "" || !util.IsUpperLetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !util.IsLetterOrNumber(name[i]) {
			return false
		}
	}
	return true
}
