package constants

// File Names
const (
	EnvFileName        = ".env"
	EnvExampleFileName = ".env.example"
	ConfigFileName     = "envkit.toml"
	LogFileName        = "envkit.log"
)

// Suffixes
const (
	EnvBackupSuffix = ".bak"
	LockSuffix      = ".lock"
)
