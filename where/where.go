// Package where resolves application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/simud-cli/simud/constant"
	"github.com/simud-cli/simud/filesystem"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "SIMUD_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honoring SIMUD_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Simud))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Simud))
}

// Searches resolves the directory holding cached search responses.
func Searches() string {
	return ensureDir(filepath.Join(Cache(), "search"))
}

// Logs resolves the directory used for log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the resolved-streams history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Queries resolves the remembered titles file used for completion.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
