package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"EnvKit/internal/constants"
	"EnvKit/internal/version"

	"github.com/adrg/xdg"
)

var (
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
)

// GetConfigFilePath returns the absolute path to the envkit.toml file.
// It places it in a subdirectory named after the application (e.g., ~/.config/envkit/envkit.toml).
func GetConfigFilePath() string {
	appName := strings.ToLower(version.ApplicationName)
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName, constants.ConfigFileName)
	}
	return filepath.Join(xdg.ConfigHome, appName, constants.ConfigFileName)
}

// GetConfigDir returns the absolute path to the envkit configuration directory.
func GetConfigDir() string {
	return filepath.Dir(GetConfigFilePath())
}

// GetCacheDir returns the absolute path to the envkit cache directory.
func GetCacheDir() string {
	appName := strings.ToLower(version.ApplicationName)
	return filepath.Join(xdg.CacheHome, appName)
}

// GetStateDir returns the absolute path to the envkit state directory.
// The application log file lives here.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return StateHomeOverride
	}
	appName := strings.ToLower(version.ApplicationName)
	return filepath.Join(xdg.StateHome, appName)
}

// GetLogFilePath returns the absolute path to the application log file.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}

// GetExecDirectory returns the directory of the currently running executable.
func GetExecDirectory() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
