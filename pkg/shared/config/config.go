package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"
)

const (
	// DefaultConfigPath is used when neither a flag nor AXE_SARIF_CONFIG names a config file.
	DefaultConfigPath = "config.yml"
	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "AXE_SARIF_CONFIG"
)

type Config struct {
	Logger    Logger    `yaml:"logger"`
	Tool      Tool      `yaml:"tool"`
	Converter Converter `yaml:"converter"`
	Output    Output    `yaml:"output"`
}

type Logger struct {
	Level           string `yaml:"level" validate:"omitempty,oneof=TRACE DEBUG INFO WARN ERROR trace debug info warn error"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
	DisableTime     *bool  `yaml:"disable_time"`
}

// Tool overrides the static tool metadata written into every run.
type Tool struct {
	Name        string `yaml:"name" validate:"omitempty,max=64"`
	FullName    string `yaml:"full_name" validate:"omitempty,max=128"`
	Version     string `yaml:"version" validate:"omitempty,semver"`
	DownloadURI string `yaml:"download_uri" validate:"omitempty,url"`
}

type Converter struct {
	ViolationLevel string `yaml:"violation_level" validate:"omitempty,oneof=error warning note"`
	ImpactLevels   *bool  `yaml:"impact_levels"`
}

type Output struct {
	SarifVersion string `yaml:"sarif_version" validate:"omitempty,oneof=2.0.0 2.1.0"`
	Pretty       *bool  `yaml:"pretty"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// ResolveConfigPath picks the config file location: explicit path, then the
// AXE_SARIF_CONFIG environment variable, then DefaultConfigPath.
func ResolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	if envPath := os.Getenv(ConfigPathEnv); envPath != "" {
		return envPath
	}
	return DefaultConfigPath
}

// LoadConfig reads the YAML configuration. A missing file at the default
// location yields an empty configuration; a missing file that was asked for
// explicitly is an error.
func LoadConfig(configPath string) (*Config, error) {
	explicit := configPath != "" || os.Getenv(ConfigPathEnv) != ""
	configPath = ResolveConfigPath(configPath)

	config := &Config{}
	if _, err := os.Stat(configPath); os.IsNotExist(err) && !explicit {
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	return config, nil
}
