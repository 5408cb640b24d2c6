// Copyright (c) 2026 Kyradjis
// released under the MIT license

package chathost

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/kyradjis/bluelib/logger"
	"github.com/kyradjis/bluelib/markdown"
)

var (
	ErrLoggerFilenameMissing = errors.New("logging configuration specifies 'file' method but 'filename' is empty")
	ErrLoggerExcludeEmpty    = errors.New("logging configuration specifies empty exclude")
	ErrLoggerHasNoTypes      = errors.New("logger has no types to log")
)

// DelimiterConfig overrides one feature's prefix/suffix pair.
type DelimiterConfig struct {
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// MarkdownConfig configures the formatting pipeline.
type MarkdownConfig struct {
	// nil means enabled; the field exists so `enabled: false` can turn
	// the whole pipeline off
	Enabled          *bool                      `yaml:"enabled"`
	DisabledFeatures []string                   `yaml:"disabled-features"`
	Delimiters       map[string]DelimiterConfig `yaml:"delimiters"`
}

// VariantsConfig configures the entity variant loader.
type VariantsConfig struct {
	Sources []string `yaml:"sources"`
	Watch   bool     `yaml:"watch"`
}

// TLSConfig points at a certificate/key pair for the listener.
type TLSConfig struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

// OperatorConfig identifies the host operator; the password is a bcrypt
// hash produced by `bluelibd genpasswd`.
type OperatorConfig struct {
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password-hash"`
}

// Config is the whole configuration of the demo chat host.
type Config struct {
	Host struct {
		Name     string          `yaml:"name"`
		Listen   string          `yaml:"listen"`
		TLS      TLSConfig       `yaml:"tls"`
		Operator *OperatorConfig `yaml:"operator"`
	} `yaml:"host"`

	Markdown MarkdownConfig `yaml:"markdown"`

	Variants VariantsConfig `yaml:"variants"`

	Datastore struct {
		Path string `yaml:"path"`
	} `yaml:"datastore"`

	Logging []logger.LoggingConfig `yaml:"logging"`

	Filename string // not yaml
}

// LoadConfig loads the given YAML configuration file, checking and
// normalizing it.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	config.Filename = filename

	if config.Host.Name == "" {
		config.Host.Name = "bluelib"
	}
	if config.Host.Listen == "" {
		return nil, errors.New("host.listen is required")
	}
	if (config.Host.TLS.Cert == "") != (config.Host.TLS.Key == "") {
		return nil, errors.New("host.tls requires both cert and key")
	}

	for name := range config.Markdown.Delimiters {
		if !knownFeature(name) {
			return nil, fmt.Errorf("markdown.delimiters names unknown feature [%s]", name)
		}
	}
	for _, name := range config.Markdown.DisabledFeatures {
		if !knownFeature(name) {
			return nil, fmt.Errorf("markdown.disabled-features names unknown feature [%s]", name)
		}
	}

	// logging
	var newLogConfigs []logger.LoggingConfig
	for _, logConfig := range config.Logging {
		// methods
		methods := make(map[string]bool)
		for _, method := range strings.Split(logConfig.Method, " ") {
			if len(method) > 0 {
				methods[strings.ToLower(method)] = true
			}
		}
		if methods["file"] && logConfig.Filename == "" {
			return nil, ErrLoggerFilenameMissing
		}
		logConfig.MethodFile = methods["file"]
		logConfig.MethodStdout = methods["stdout"]
		logConfig.MethodStderr = methods["stderr"]

		// levels
		level, exists := logger.LogLevelNames[strings.ToLower(logConfig.LevelString)]
		if !exists {
			return nil, fmt.Errorf("Could not translate log level [%s]", logConfig.LevelString)
		}
		logConfig.Level = level

		// types
		for _, typeStr := range strings.Split(logConfig.TypeString, " ") {
			if len(typeStr) == 0 {
				continue
			}
			if typeStr == "-" {
				return nil, ErrLoggerExcludeEmpty
			}
			if typeStr[0] == '-' {
				typeStr = typeStr[1:]
				logConfig.ExcludedTypes = append(logConfig.ExcludedTypes, typeStr)
			} else {
				logConfig.Types = append(logConfig.Types, typeStr)
			}
		}
		if len(logConfig.Types) < 1 {
			return nil, ErrLoggerHasNoTypes
		}

		newLogConfigs = append(newLogConfigs, logConfig)
	}
	config.Logging = newLogConfigs

	return config, nil
}

func knownFeature(name string) bool {
	switch name {
	case markdown.FeatureBold, markdown.FeatureItalic, markdown.FeatureUnderline,
		markdown.FeatureStrikethrough, markdown.FeatureSpoiler, markdown.FeatureHyperlink,
		markdown.FeatureColor, markdown.FeatureCopyToClipboard:
		return true
	}
	return false
}

// ApplyMarkdown configures a pipeline from the markdown section: the
// global flag, per-feature disables, and delimiter overrides.
func (config *Config) ApplyMarkdown(pipeline *markdown.Pipeline) {
	pipeline.SetEnabled(config.Markdown.Enabled == nil || *config.Markdown.Enabled)
	pipeline.EnableAll()
	for _, name := range config.Markdown.DisabledFeatures {
		pipeline.Disable(name)
	}
	for name, delimiters := range config.Markdown.Delimiters {
		pipeline.SetDelimiters(name, delimiters.Prefix, delimiters.Suffix)
	}
}
