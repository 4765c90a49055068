package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config carries every knob for a resolution run
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Parses ParsesConfig `yaml:"parses"`
	Sieves []SieveSpec  `yaml:"sieves"`
	Output OutputConfig `yaml:"output"`
	Batch  BatchConfig  `yaml:"batch"`
}

// InputConfig maps CoNLL record columns
type InputConfig struct {
	DocColumn  int `yaml:"doc_column"`  // column holding the document id
	WordColumn int `yaml:"word_column"` // column holding the surface token
}

// ParsesConfig controls parse-tree loading
type ParsesConfig struct {
	Dir          string        `yaml:"dir"`           // empty: derived from the input path
	CacheEnabled bool          `yaml:"cache_enabled"` // cache parsed trees across documents
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// SieveSpec names one sieve stage in the pipeline
type SieveSpec struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level,omitempty"` // head-match strictness, 0 (relaxed) to 3 (strict)
}

// OutputConfig controls rendering
type OutputConfig struct {
	DocTags bool `yaml:"doc_tags"` // emit #begin/#end document markers
	Verbose bool `yaml:"verbose"`  // step-by-step diagnostics on stderr
}

// BatchConfig controls batch processing
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the production defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			DocColumn:  0,
			WordColumn: 6,
		},
		Parses: ParsesConfig{
			CacheEnabled: true,
			CacheTTL:     10 * time.Minute,
		},
		Sieves: DefaultSieves(),
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

// DefaultSieves is the production sequence: exact string matching first,
// then head matching from strictest to most relaxed. Merges are monotonic,
// so precision-oriented stages must run before recall-oriented ones.
func DefaultSieves() []SieveSpec {
	return []SieveSpec{
		{Name: "string-match"},
		{Name: "head-match", Level: 3},
		{Name: "head-match", Level: 2},
		{Name: "head-match", Level: 1},
		{Name: "head-match", Level: 0},
	}
}

// ParseDirFor resolves the parse-tree directory for an input file. An
// explicitly configured directory wins; otherwise the trees are expected
// next to the input as <input>.parses.
func (c *Config) ParseDirFor(inputPath string) string {
	if c.Parses.Dir != "" {
		return c.Parses.Dir
	}
	return inputPath + ".parses"
}

// ParseSieveSpecs parses a comma-separated sieve list such as
// "string-match,head-match:3,head-match:0" into specs.
func ParseSieveSpecs(s string) ([]SieveSpec, error) {
	var specs []SieveSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, levelStr, hasLevel := strings.Cut(part, ":")
		spec := SieveSpec{Name: name}
		if hasLevel {
			level, err := strconv.Atoi(levelStr)
			if err != nil {
				return nil, fmt.Errorf("invalid sieve level in %q", part)
			}
			spec.Level = level
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("empty sieve list")
	}
	return specs, nil
}
