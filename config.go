package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Path         string   `yaml:"path"`
	Tables       []string `yaml:"tables"`
	SkipInternal bool     `yaml:"skip_internal"`
}

func (c DBConfig) String() string {
	return fmt.Sprintf("{path: %s, tables: %v, skip_internal: %v}", c.Path, c.Tables, c.SkipInternal)
}

type OutputConfig struct {
	Path         string `yaml:"path"`
	Pretty       bool   `yaml:"pretty"`
	BlobEncoding string `yaml:"blob_encoding"`
	Summary      bool   `yaml:"summary"`
	Progress     bool   `yaml:"progress"`
}

func (c OutputConfig) String() string {
	return fmt.Sprintf("{path: %s, pretty: %v, blob_encoding: %s, summary: %v, progress: %v}",
		c.Path, c.Pretty, c.BlobEncoding, c.Summary, c.Progress)
}

type Config struct {
	DB     DBConfig     `yaml:"db"`
	Output OutputConfig `yaml:"output"`
}

func (c Config) String() string {
	return fmt.Sprintf("db: %s, output: %s", c.DB, c.Output)
}

func NewConfig(configPath string) (*Config, error) {
	// Create config structure
	config := &Config{}

	// Open config file
	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Init new YAML decode
	d := yaml.NewDecoder(file)
	d.KnownFields(true)

	// Start YAML decoding from file, an empty file is an empty config
	if err := d.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s, %w", configPath, err)
	}

	return config, nil
}

// merge overrides the config with every flag set on the command line
func (c *Config) merge(a *Args) {
	if a.Database != "" {
		c.DB.Path = a.Database
	}
	if len(a.Tables) > 0 {
		c.DB.Tables = a.Tables
	}
	if a.SkipInternal {
		c.DB.SkipInternal = true
	}
	if a.Output != "" {
		c.Output.Path = a.Output
	}
	if a.Pretty {
		c.Output.Pretty = true
	}
	if a.BlobEncoding != "" {
		c.Output.BlobEncoding = a.BlobEncoding
	}
	if a.Summary {
		c.Output.Summary = true
	}
	if a.Progress {
		c.Output.Progress = true
	}
}
