// Package config provides configuration file parsing for rulemine.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults applied when the config file is missing or silent on a key.
const (
	DefaultDataDir       = "data"
	DefaultOutputDir     = "outputs"
	DefaultMinSupport    = 0.3
	DefaultMinConfidence = 0.5
	DefaultTopN          = 15
	DefaultDelimiter     = ","
)

// Dir returns the rulemine config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/rulemine if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "rulemine"), nil
}

// Config holds the user's defaults for mining runs. Command-line flags
// override these; these override the built-in defaults.
type Config struct {
	DataDir       string
	OutputDir     string
	MinSupport    float64
	MinConfidence float64
	TopN          int
	Delimiter     string
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		DataDir:       DefaultDataDir,
		OutputDir:     DefaultOutputDir,
		MinSupport:    DefaultMinSupport,
		MinConfidence: DefaultMinConfidence,
		TopN:          DefaultTopN,
		Delimiter:     DefaultDelimiter,
	}
}

// Load reads the config file at {dir}/config and returns the parsed
// settings over the built-in defaults. If the file does not exist the
// defaults are returned without an error. Invalid or malformed lines
// are silently skipped.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, "config")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Expect exactly one "=" separating key from value.
		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue // no "=" or "=" is first character — invalid, skip
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" || value == "" {
			continue // either side is blank — invalid, skip
		}

		cfg.apply(key, value)
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// apply sets one key, ignoring unknown keys and unparseable or
// out-of-range values so a stale config never blocks the CLI.
func (c *Config) apply(key, value string) {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "output_dir":
		c.OutputDir = value
	case "delimiter":
		c.Delimiter = value
	case "min_support":
		if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 && v <= 1 {
			c.MinSupport = v
		}
	case "min_confidence":
		if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 && v <= 1 {
			c.MinConfidence = v
		}
	case "top_n":
		if v, err := strconv.Atoi(value); err == nil && v > 0 {
			c.TopN = v
		}
	}
}
