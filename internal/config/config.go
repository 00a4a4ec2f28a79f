package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for one clearcare run.
type Config struct {
	CampusID     string
	RegistryPath string
	ConfigPath   string
	BaseDir      string
	LogFormat    string // "text" or "json"
	WriteParquet bool
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.CampusID == "" {
		return fmt.Errorf("--campus-id is required")
	}
	if _, err := os.Stat(c.RegistryPath); err != nil {
		return fmt.Errorf("registry not accessible: %w", err)
	}
	if _, err := os.Stat(c.ConfigPath); err != nil {
		return fmt.Errorf("config file not accessible: %w", err)
	}
	return nil
}

// Extract is the extraction configuration loaded from the project YAML:
// which canonical code types are admitted to the output, how raw code-type
// tokens map onto canonical ones, and the modifier description map.
// Immutable for the duration of a run.
type Extract struct {
	AllowedCodeTypes map[string]bool
	CodeTypeMap      map[string]string
	ModifierMap      map[string]string
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Extract struct {
		AllowedCodeTypes      []string          `yaml:"allowed_code_types"`
		CodeTypeNormalization map[string]string `yaml:"code_type_normalization"`
	} `yaml:"extract"`
	Modifiers map[string]string `yaml:"modifiers"`
}

// LoadExtract reads the extraction config from a YAML file. Normalization
// map keys are upper-cased at load so every later lookup is case-insensitive.
func LoadExtract(path string) (*Extract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	ex := &Extract{
		AllowedCodeTypes: make(map[string]bool, len(yc.Extract.AllowedCodeTypes)),
		CodeTypeMap:      make(map[string]string, len(yc.Extract.CodeTypeNormalization)),
		ModifierMap:      yc.Modifiers,
	}
	for _, ct := range yc.Extract.AllowedCodeTypes {
		ex.AllowedCodeTypes[ct] = true
	}
	for raw, canon := range yc.Extract.CodeTypeNormalization {
		ex.CodeTypeMap[strings.ToUpper(strings.TrimSpace(raw))] = canon
	}

	if len(ex.AllowedCodeTypes) == 0 {
		return nil, fmt.Errorf("config %s: extract.allowed_code_types is empty", path)
	}
	return ex, nil
}

// Allowed returns the allowed canonical code types as a sorted-input-free
// slice; callers that need determinism sort it themselves.
func (e *Extract) Allowed() []string {
	out := make([]string, 0, len(e.AllowedCodeTypes))
	for ct := range e.AllowedCodeTypes {
		out = append(out, ct)
	}
	return out
}
