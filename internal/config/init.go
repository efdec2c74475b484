package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pibary/internal/errors"
)

var sectionComments = map[string]string{
	"engine":  "Digit engine: spigot (sequential) or bellard (digit extraction).",
	"search":  "Upper bound on packed bytes scanned per search; 0 scans forever.",
	"logging": "Log level (debug, info, warn, error) and format (text, json).",
	"history": "Search history kept in SQLite. retry applies while another process holds the database lock.",
	"server":  "HTTP service used by `pibary serve`.",
}

// Init writes an annotated default configuration file to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := MarshalAnnotated(Default())
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// MarshalAnnotated encodes cfg as YAML with a comment above each section.
func MarshalAnnotated(cfg *Config) ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to encode config").Build()
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i]
		if c, ok := sectionComments[key.Value]; ok {
			key.HeadComment = c
		}
	}
	doc.HeadComment = "pibary configuration"

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	return buf.Bytes(), nil
}
