package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/byxorna/wrench/pkg/screen"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	EnvAPIURL   = "WRENCH_API_URL"
	EnvLogLevel = "WRENCH_LOG_LEVEL"
	EnvLogFile  = "WRENCH_LOG_FILE"

	DefaultPath = "~/.wrench.yaml"
	DotEnvPath  = ".env"
)

var (
	// Default is the configuration used when ~/.wrench.yaml is missing, and the
	// base any file is layered on.
	Default = Config{
		API: API{
			BaseURL: "http://localhost:8080",
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Screens:           append([]string(nil), screen.Names...),
		LowStockThreshold: v1.DefaultLowStockThreshold,
	}
)

type Config struct {
	API               API      `yaml:"api"`
	Log               Log      `yaml:"log"`
	Screens           []string `yaml:"screens" validate:"required,min=1,unique,dive,oneof=clients vehicles orders parts payments users"`
	LowStockThreshold int      `yaml:"lowStockThreshold" validate:"gte=1"`
	// DebugAddr serves pprof, expvar and /metrics when set, e.g. "localhost:6060".
	DebugAddr string `yaml:"debugAddr,omitempty" validate:"omitempty,hostname_port"`
}

type API struct {
	BaseURL string `yaml:"baseURL" validate:"required,url"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
	// File defaults to the XDG state directory; the terminal belongs to the UI.
	File string `yaml:"file,omitempty"`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default
	c.Screens = append([]string(nil), Default.Screens...)

	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}
	return &c, nil
}

// Load reads path, which may be missing, then applies environment overrides
// (including a .env file in the working directory) and validates the result.
func Load(path string) (*Config, error) {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	var c *Config
	f, err := os.Open(expandedPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// if the file is missing, ignore and use the default config
		d := Default
		d.Screens = append([]string(nil), Default.Screens...)
		c = &d
	case err != nil:
		return nil, fmt.Errorf("unable to open configuration: %w", err)
	default:
		defer f.Close()
		c, err = NewFromReader(f)
		if err != nil {
			return nil, fmt.Errorf("unable to load configuration: %w", err)
		}
	}

	if err := loadDotEnv(DotEnvPath); err != nil {
		return nil, err
	}
	c.ApplyEnv(os.LookupEnv)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// loadDotEnv exports the variables in path. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("unable to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		c.Log.File = v
	}
}

func (c *Config) Validate() error {
	if err := v1.Validator().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}
