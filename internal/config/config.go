package config

import (
	"os"
	"os/user"

	"EnvKit/internal/constants"
	"EnvKit/internal/paths"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Files FilesConfig `toml:"files"`
	Load  LoadConfig  `toml:"load"`
	Log   LogConfig   `toml:"log"`
}

// FilesConfig holds env file path settings.
type FilesConfig struct {
	// EnvFile is the env file operated on when no --file flag is given.
	// Supports ${HOME}/${XDG_*}/${USER} expansion.
	EnvFile string `toml:"env_file"`
}

// LoadConfig holds default merge behavior.
type LoadConfig struct {
	// Override controls whether loading replaces variables already present
	// in the process environment.
	Override bool `toml:"override"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // trace, debug, info, notice, warn, error
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return ""
	}
	return os.Expand(val, mapper)
}

// Default returns the built-in configuration defaults.
func Default() AppConfig {
	return AppConfig{
		Files: FilesConfig{
			EnvFile: constants.EnvFileName,
		},
		Load: LoadConfig{
			Override: false,
		},
		Log: LogConfig{
			Level: "notice",
		},
	}
}

// LoadAppConfig reads the configuration file and returns the configuration.
// A missing or unreadable config file falls back to defaults; a present but
// malformed file also falls back rather than aborting, since every setting
// has a usable default.
func LoadAppConfig() AppConfig {
	conf := Default()

	path := paths.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &conf); err != nil {
			// Malformed TOML: keep defaults
			conf = Default()
		}
	}

	conf.Files.EnvFile = ExpandVariables(conf.Files.EnvFile)
	return conf
}

// SaveAppConfig writes the configuration to the config file path.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()
	if err := os.MkdirAll(paths.GetConfigDir(), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
