package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDataDir  = "KURAMOTO_DATA_DIR"
	EnvLogLevel = "KURAMOTO_LOG_LEVEL"

	DefaultDataDir = ".kuramoto"
)

// Env holds process settings that come from the environment rather than from
// a simulation config.
type Env struct {
	DataDir  string
	LogLevel slog.Level
}

// LoadEnv reads the given dotenv files (".env" when none are named) into the
// process environment without overriding variables already set, then
// resolves Env. Missing files are ignored.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}

	env := Env{
		DataDir:  DefaultDataDir,
		LogLevel: slog.LevelInfo,
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		env.DataDir = dir
	}
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		if err := env.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Env{}, err
		}
	}
	return env, nil
}
