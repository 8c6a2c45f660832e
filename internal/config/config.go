package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable the app reads.
const EnvPrefix = "LEARNLAB"

// Quiz length bounds (inclusive).
const (
	MinQuizQuestions = 1
	MaxQuizQuestions = 20
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from files, environment
// variables and command-line flags.
type Config struct {
	Env     string  `mapstructure:"env"`     // local, dev, production
	Backend Backend `mapstructure:"backend"` // learning service connection
	Quiz    Quiz    `mapstructure:"quiz"`
	Store   Store   `mapstructure:"store"` // diagnostic call log
	Log     Log     `mapstructure:"log"`
}

// Backend configures the connection to the learning service.
type Backend struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 disables the client-side timeout
}

// Quiz configures quiz generation.
type Quiz struct {
	NumQuestions int `mapstructure:"num_questions"`
}

// Store configures the SQLite call log.
type Store struct {
	Path     string `mapstructure:"path"` // empty means the default data path
	Disabled bool   `mapstructure:"disabled"`
}

// Log configures the structured log file.
type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file. When empty, learnlab.yaml is
	// searched in the working directory and the XDG config directory.
	ConfigFile string

	// DotEnv is the .env file to load before reading the environment.
	// Defaults to ".env". A missing file is not an error.
	DotEnv string

	// Flags are bound on top of every other source.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"backend":  "backend.url",
	"timeout":  "backend.timeout",
	"db":       "store.path",
	"no-store": "store.disabled",
	"log-file": "log.file",
	"env":      "env",
}

// Load reads configuration from defaults, config files, the environment and
// flags, in increasing priority.
func Load(opts Options) (*Config, error) {
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", dotenv, err)
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("learnlab")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("env", "local")
	v.SetDefault("backend.url", "http://127.0.0.1:8000")
	v.SetDefault("backend.timeout", "2m")
	v.SetDefault("quiz.num_questions", 5)
	v.SetDefault("store.path", "")
	v.SetDefault("store.disabled", false)
	v.SetDefault("log.file", DefaultLogPath())
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // backend.url -> LEARNLAB_BACKEND_URL
	v.AutomaticEnv()

	// LEARNLAB_DB predates the store section.
	if err := v.BindEnv("store.path", EnvPrefix+"_STORE_PATH", EnvPrefix+"_DB"); err != nil {
		return nil, fmt.Errorf("bind env store.path: %w", err)
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if opts.Flags != nil {
		if verbose, _ := opts.Flags.GetBool("verbose"); verbose {
			cfg.Log.Level = "debug"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be expressed as defaults.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: backend.url must be an http(s) URL, got %q", ErrInvalidConfig, c.Backend.URL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("%w: backend.timeout must not be negative", ErrInvalidConfig)
	}
	if c.Quiz.NumQuestions < MinQuizQuestions || c.Quiz.NumQuestions > MaxQuizQuestions {
		return fmt.Errorf("%w: quiz.num_questions must be between %d and %d, got %d",
			ErrInvalidConfig, MinQuizQuestions, MaxQuizQuestions, c.Quiz.NumQuestions)
	}
	return nil
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DefaultLogPath returns $XDG_STATE_HOME/learnlab/learnlab.log, falling back
// to ~/.local/state.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "learnlab.log")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "learnlab", "learnlab.log")
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "learnlab"), nil
}
