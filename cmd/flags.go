package cmd

import (
	"sync"

	"github.com/spf13/pflag"
)

var initFlagsOnce sync.Once

// InitFlags defines the pflags used for argument validation and help.
// Safe to call more than once; pflag panics on redefinition.
func InitFlags() {
	initFlagsOnce.Do(registerFlags)
}

func registerFlags() {
	// Modifiers
	pflag.StringP("file", "f", "", "Env file to operate on")
	pflag.BoolP("override", "o", false, "Replace variables already present in the environment")
	pflag.BoolP("verbose", "v", false, "Verbose output")
	pflag.BoolP("debug", "x", false, "Debug output")
	pflag.BoolP("help", "h", false, "Show help")

	// Variable access
	pflag.StringP("get", "g", "", "Get variable value")
	pflag.String("get-line", "", "Get variable line")
	pflag.String("get-literal", "", "Get variable literal value")
	pflag.StringP("set", "s", "", "Set variable value")
	pflag.String("set-literal", "", "Set variable literal value")

	// Document operations
	pflag.BoolP("list", "l", false, "List assignment lines in the env file")
	pflag.BoolP("print", "p", false, "Parse strictly and print pairs in order")
	pflag.BoolP("check", "c", false, "Parse strictly and report errors")
	pflag.StringP("merge", "m", "", "Merge new variables from a source file")

	// Process
	pflag.StringP("exec", "e", "", "Run a command with the env file loaded")

	// Info
	pflag.BoolP("version", "V", false, "Show version")
}
