package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string
	Pattern     string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Program   string        // Program prefixed to every fixture command
	Shell     string        // Shell used to run commands; empty runs them directly
	FeedInput bool          // Pipe the fixture's shared input to stdin
	Timeout   time.Duration // Per-command timeout, zero disables it

	// Logging
	LogLevel string
	LogFile  string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds per-invocation switches
type Flags struct {
	TestPath     string
	NameFilter   string
	TestCases    bool
	FailFast     bool
	OnlyFailed   bool
	NoProgress   bool
	NoColor      bool
	OpenFailures bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestPath:       DefaultTestPath,
		Pattern:        DefaultPattern,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Program:        DefaultProgram,
		Timeout:        DefaultTimeout,
		LogLevel:       DefaultLogLevel,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// NewViper returns a viper instance with defaults and CTE_* environment
// overrides. The project's .env file is loaded into the process environment
// first, so its variables also reach the commands under test. When
// configFile is empty, an optional .cte.{yaml,json,toml} in the project path
// is read.
func NewViper(projectPath, configFile string) (*viper.Viper, error) {
	if projectPath == "" {
		projectPath = DefaultProjectPath
	}

	// .env is optional
	if err := godotenv.Load(filepath.Join(projectPath, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyProjectPath, projectPath)
	v.SetDefault(KeyTestPath, DefaultTestPath)
	v.SetDefault(KeyPattern, DefaultPattern)
	v.SetDefault(KeyIgnore, DefaultPathsToIgnore)
	v.SetDefault(KeyProgram, DefaultProgram)
	v.SetDefault(KeyShell, "")
	v.SetDefault(KeyFeedInput, false)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyOutputDir, DefaultOutputJSONDir)
	v.SetDefault(KeyOutputFile, DefaultOutputJSONFile)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName(DefaultConfigName)
	v.AddConfigPath(projectPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Load builds a Config from a viper instance
func Load(v *viper.Viper) (*Config, error) {
	cfg := New()

	cfg.ProjectPath = v.GetString(KeyProjectPath)
	cfg.TestPath = v.GetString(KeyTestPath)
	cfg.Pattern = v.GetString(KeyPattern)
	cfg.PathsToIgnore = v.GetStringSlice(KeyIgnore)
	cfg.Program = v.GetString(KeyProgram)
	cfg.Shell = v.GetString(KeyShell)
	cfg.FeedInput = v.GetBool(KeyFeedInput)
	cfg.Timeout = v.GetDuration(KeyTimeout)
	cfg.OutputJSONDir = v.GetString(KeyOutputDir)
	cfg.OutputJSONFile = v.GetString(KeyOutputFile)
	cfg.LogLevel = v.GetString(KeyLogLevel)
	cfg.LogFile = v.GetString(KeyLogFile)

	cfg.Flags = Flags{
		TestPath:     v.GetString(KeyTestPath),
		NameFilter:   v.GetString(KeyFilter),
		TestCases:    v.GetBool(KeyTestCases),
		FailFast:     v.GetBool(KeyFailFast),
		OnlyFailed:   v.GetBool(KeyOnlyFailed),
		NoProgress:   v.GetBool(KeyNoProgress),
		NoColor:      v.GetBool(KeyNoColor),
		OpenFailures: v.GetBool(KeyOpenFailures),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted
func (c *Config) Validate() error {
	if c.Pattern == "" {
		return fmt.Errorf("fixture pattern must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.OutputJSONFile == "" {
		return fmt.Errorf("output file name must not be empty")
	}
	return nil
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: combine project path and test path
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
