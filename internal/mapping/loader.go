package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads, parses and validates a YAML mapping file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("mapping file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML mapping document, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse mapping YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Fields == nil {
		cfg.Fields = map[string]FieldMapping{}
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]LabelMapping{}
	}
	for id, field := range cfg.Fields {
		if field.Type == "" {
			field.Type = FieldTypeRaw
			cfg.Fields[id] = field
		}
	}
}
