// Package config — .shipi18n.yaml configuration file support.
//
// The config file declares the source locale file, the target languages,
// and the translation options. Command-line flags override any field.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".shipi18n.yaml"

// Config is the top-level .shipi18n.yaml structure.
type Config struct {
	// Source is the path to the source locale JSON file, relative to the
	// project root.
	Source string `yaml:"source"`
	// SourceLanguage is the source language code (default "en").
	SourceLanguage string `yaml:"source_language,omitempty"`
	// TargetLanguages lists the languages to translate into. Regional
	// codes like "pt-BR" are allowed.
	TargetLanguages []string `yaml:"target_languages"`
	// OutputDir is where per-language files are written (default "locales").
	// Each language is saved as <output_dir>/<lang>.json.
	OutputDir string `yaml:"output_dir,omitempty"`

	// FallbackToSource fills untranslated gaps with source values
	// (default true).
	FallbackToSource *bool `yaml:"fallback_to_source,omitempty"`
	// RegionalFallback lets regional variants inherit from their base
	// language (default true).
	RegionalFallback *bool `yaml:"regional_fallback,omitempty"`

	// PreservePlaceholders keeps {{var}}-style placeholders intact
	// (default true).
	PreservePlaceholders *bool `yaml:"preserve_placeholders,omitempty"`
	// HTMLHandling selects how embedded HTML is treated: "preserve",
	// "translate", or empty for the service default.
	HTMLHandling string `yaml:"html_handling,omitempty"`
	// Context is a free-form domain hint forwarded to the service.
	Context string `yaml:"context,omitempty"`

	// SkipKeys are exact dot-paths never sent for translation.
	SkipKeys []string `yaml:"skip_keys,omitempty"`
	// SkipPatterns are wildcard patterns matched by the service.
	SkipPatterns []string `yaml:"skip_patterns,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Source:         "locales/en.json",
		SourceLanguage: "en",
		OutputDir:      "locales",
	}
}

// boolOr resolves an optional yaml bool against its default.
func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// FallbackToSourceEnabled reports the effective fallback_to_source value.
func (c *Config) FallbackToSourceEnabled() bool { return boolOr(c.FallbackToSource, true) }

// RegionalFallbackEnabled reports the effective regional_fallback value.
func (c *Config) RegionalFallbackEnabled() bool { return boolOr(c.RegionalFallback, true) }

// PreservePlaceholdersEnabled reports the effective preserve_placeholders value.
func (c *Config) PreservePlaceholdersEnabled() bool { return boolOr(c.PreservePlaceholders, true) }

// Load reads .shipi18n.yaml from the given directory.
// Returns (nil, nil) if no config file exists.
func Load(rootDir string) (*Config, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.SourceLanguage == "" {
		cfg.SourceLanguage = "en"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "locales"
	}

	return &cfg, nil
}

// Validate checks that the config can drive a translation run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("config: source file not set")
	}
	if len(c.TargetLanguages) == 0 {
		return fmt.Errorf("config: no target languages configured")
	}
	for _, lang := range c.TargetLanguages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("config: empty target language entry")
		}
		if lang == c.SourceLanguage {
			return fmt.Errorf("config: target language %q equals the source language", lang)
		}
	}
	return nil
}

// Save writes the config to rootDir as .shipi18n.yaml.
func (c *Config) Save(rootDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(rootDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// OutputPath returns the save path for one language's document.
func (c *Config) OutputPath(rootDir, lang string) string {
	return filepath.Join(rootDir, c.OutputDir, lang+".json")
}

// SourcePath returns the resolved source file path.
func (c *Config) SourcePath(rootDir string) string {
	return filepath.Join(rootDir, c.Source)
}
