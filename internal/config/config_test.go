package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at a temp dir so the developer's own
// files never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	for _, k := range []string{
		"LEARNLAB_ENV", "LEARNLAB_BACKEND_URL", "LEARNLAB_BACKEND_TIMEOUT",
		"LEARNLAB_QUIZ_NUM_QUESTIONS", "LEARNLAB_STORE_PATH", "LEARNLAB_DB",
		"LEARNLAB_STORE_DISABLED", "LEARNLAB_LOG_FILE", "LEARNLAB_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend", "", "")
	fs.String("db", "", "")
	fs.Bool("no-store", false, "")
	fs.String("log-file", "", "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Backend.URL)
	assert.Equal(t, 2*time.Minute, cfg.Backend.Timeout)
	assert.Equal(t, 5, cfg.Quiz.NumQuestions)
	assert.Empty(t, cfg.Store.Path)
	assert.False(t, cfg.Store.Disabled)
	assert.Equal(t, filepath.Join(dir, "learnlab", "learnlab.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
backend:
  url: https://learn.example.com
  timeout: 45s
quiz:
  num_questions: 10
store:
  disabled: true
`), 0o644))

	cfg, err := Load(Options{ConfigFile: path, DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://learn.example.com", cfg.Backend.URL)
	assert.Equal(t, 45*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 10, cfg.Quiz.NumQuestions)
	assert.True(t, cfg.Store.Disabled)
}

func TestLoad_XDGConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "learnlab"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "learnlab", "learnlab.yaml"),
		[]byte("quiz:\n  num_questions: 7\n"), 0o644))

	cfg, err := Load(Options{DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Quiz.NumQuestions)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml"), DotEnv: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "learnlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: http://file:8000\n"), 0o644))
	t.Setenv("LEARNLAB_BACKEND_URL", "http://env:9000")
	t.Setenv("LEARNLAB_DB", "/tmp/legacy.db")

	cfg, err := Load(Options{ConfigFile: path, DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "http://env:9000", cfg.Backend.URL)
	assert.Equal(t, "/tmp/legacy.db", cfg.Store.Path)
}

func TestLoad_StorePathEnvNames(t *testing.T) {
	dir := isolate(t)
	opts := Options{DotEnv: filepath.Join(dir, "missing.env")}

	t.Setenv("LEARNLAB_DB", "/tmp/legacy.db")
	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/legacy.db", cfg.Store.Path)

	t.Setenv("LEARNLAB_STORE_PATH", "/tmp/current.db")
	cfg, err = Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/current.db", cfg.Store.Path, "the store section name wins")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LEARNLAB_QUIZ_NUM_QUESTIONS=12\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LEARNLAB_QUIZ_NUM_QUESTIONS") })

	cfg, err := Load(Options{DotEnv: envFile})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Quiz.NumQuestions)
}

func TestLoad_FlagsWin(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LEARNLAB_BACKEND_URL", "http://env:9000")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{
		"--backend", "http://flag:7000",
		"--db", "/tmp/flag.db",
		"--no-store",
		"--verbose",
	}))

	cfg, err := Load(Options{Flags: fs, DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:7000", cfg.Backend.URL)
	assert.Equal(t, "/tmp/flag.db", cfg.Store.Path)
	assert.True(t, cfg.Store.Disabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_UnsetFlagsKeepLowerSources(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LEARNLAB_BACKEND_URL", "http://env:9000")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(Options{Flags: fs, DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "http://env:9000", cfg.Backend.URL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Backend: Backend{URL: "http://localhost:8000", Timeout: time.Minute},
			Quiz:    Quiz{NumQuestions: 5},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }, true},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = -time.Second }, false},
		{"ftp url", func(c *Config) { c.Backend.URL = "ftp://host" }, false},
		{"no host", func(c *Config) { c.Backend.URL = "http://" }, false},
		{"garbage url", func(c *Config) { c.Backend.URL = "::not a url" }, false},
		{"zero questions", func(c *Config) { c.Quiz.NumQuestions = 0 }, false},
		{"max questions", func(c *Config) { c.Quiz.NumQuestions = MaxQuizQuestions }, true},
		{"too many questions", func(c *Config) { c.Quiz.NumQuestions = MaxQuizQuestions + 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoad_InvalidValueRejected(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LEARNLAB_QUIZ_NUM_QUESTIONS", "50")

	_, err := Load(Options{DotEnv: filepath.Join(dir, "missing.env")})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
