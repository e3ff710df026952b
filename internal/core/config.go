package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the optional configuration file searched next to the entry document.
const ConfigFileName = ".mdwt.toml"

// Environment variables overriding the configuration file
const (
	EnvSkipHeaders = "MDWT_SKIPHEADERS"
	EnvImg2B64     = "MDWT_IMG2B64"
	EnvOutput      = "MDWT_OUTPUT"
)

// Default configuration content
const DefaultConfig = `
[build]
skipheaders = false
img2b64 = false
output = "-"

[preview]
extensions = ["gfm"]
`

// Note: Fields must be public for toml package to unmarshall
type ConfigFile struct {
	Build   ConfigBuild   `toml:"build"`
	Preview ConfigPreview `toml:"preview"`
}
type ConfigBuild struct {
	SkipHeaders bool   `toml:"skipheaders"`
	Img2B64     bool   `toml:"img2b64"`
	Output      string `toml:"output"`
}
type ConfigPreview struct {
	Extensions []string `toml:"extensions"`
}

// Config is the effective configuration after environment overrides.
type Config struct {
	// Path of the configuration file, empty when defaults are used
	Path string

	ConfigFile ConfigFile
}

func parseConfigFile(content string) (*ConfigFile, error) {
	var config ConfigFile
	if err := toml.Unmarshal([]byte(content), &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ReadConfig loads the first configuration file found in the given directories,
// falling back to defaults, and applies environment overrides.
func ReadConfig(dirs ...string) (*Config, error) {
	configFile, err := parseConfigFile(DefaultConfig)
	if err != nil {
		return nil, fmt.Errorf("default configuration is broken: %v", err)
	}
	config := &Config{ConfigFile: *configFile}

	for _, dir := range dirs {
		path := filepath.Join(dir, ConfigFileName)
		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s file: %w", path, err)
		}
		// Values missing in the file keep their default
		if err := toml.Unmarshal(content, &config.ConfigFile); err != nil {
			return nil, fmt.Errorf("failed to parse %s file: %w", path, err)
		}
		config.Path = path
		break
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	CurrentLogger().Debugf("Configuration loaded from %q: %+v", config.Path, config.ConfigFile)
	return config, nil
}

// ReadConfigForFile searches the configuration in the directory of the entry document,
// then in the working directory.
func ReadConfigForFile(path string) (*Config, error) {
	dirs := []string{filepath.Dir(path)}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	return ReadConfig(dirs...)
}

func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv(EnvSkipHeaders); ok {
		b, err := parseBool(EnvSkipHeaders, value)
		if err != nil {
			return err
		}
		c.ConfigFile.Build.SkipHeaders = b
	}
	if value, ok := os.LookupEnv(EnvImg2B64); ok {
		b, err := parseBool(EnvImg2B64, value)
		if err != nil {
			return err
		}
		c.ConfigFile.Build.Img2B64 = b
	}
	if value, ok := os.LookupEnv(EnvOutput); ok && strings.TrimSpace(value) != "" {
		c.ConfigFile.Build.Output = strings.TrimSpace(value)
	}
	return nil
}

func parseBool(name, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid value %q for $%s: expected a boolean", value, name)
	}
	return b, nil
}
