package cmd

import (
	"EnvKit/internal/version"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

var ErrHelp = errors.New("help shown")

// ParseError wraps argument parsing errors to provide rich pointer-style output
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "--merge")
}

func (e *ParseError) Error() string {
	indent := "   "

	// Build command line string
	var cmdLineParts []string

	cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", version.CommandName))

	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		str := e.Args[i]
		if i == e.Index {
			// Highlight failing option
			str = fmt.Sprintf("{{_UserCommandError_}}%s{{|-|}}", str)
		} else {
			str = fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", str)
		}
		cmdLineParts = append(cmdLineParts, str)
	}

	// Join parts and wrap in single quotes as a whole visual unit
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"
	// Indent + ' + command name + space + previous args + spaces
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1 // arg + space
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{|-|}}"

	// Message might contain %c (command) or %o (option)
	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}

	formattedCmd := fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", e.FailingCommand)
	formattedOpt := fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", failingOpt)

	replacer := strings.NewReplacer(
		"%c", formattedCmd,
		"%o", formattedOpt,
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	// Add Usage if applicable
	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		usageStr := GetUsage(e.FailingCommand)
		lines := strings.Split(usageStr, "\n")
		for _, line := range lines {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{|-|}}' for usage.\n", indent, version.CommandName)
	}

	return out
}

// CommandGroup represents a parsed group of flags and a command with its arguments
type CommandGroup struct {
	Flags   []string
	File    string // value of a -f/--file modifier in this group, if any
	Command string
	Args    []string
}

// FullSlice returns the reconstructed slice of strings for the group
func (cg CommandGroup) FullSlice() []string {
	var s []string
	for _, f := range cg.Flags {
		s = append(s, f)
		if (f == "-f" || f == "--file") && cg.File != "" {
			s = append(s, cg.File)
		}
	}
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// CommandSlice returns the command and its arguments as a slice
func (cg CommandGroup) CommandSlice() []string {
	var s []string
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// Flatten converts a slice of CommandGroups into a single slice of strings
func Flatten(groups []CommandGroup) []string {
	var s []string
	for _, g := range groups {
		s = append(s, g.FullSlice()...)
	}
	return s
}

// Parse parses the raw command line arguments into groups of command
// operations. Modifiers accumulate into the group of the command that
// follows them and reset after each command.
func Parse(args []string) ([]CommandGroup, error) {
	// Initialize flags to make sure help text is available
	InitFlags()

	// Boolean modifiers. -f/--file is handled separately since it takes a path.
	modifiers := map[string]bool{
		"-o": true, "--override": true,
		"-v": true, "--verbose": true,
		"-x": true, "--debug": true,
	}

	IsModifier := func(s string) bool {
		return modifiers[s]
	}

	// Pre-process args to expand combined short flags (e.g. -op -> -o -p)
	var expandedArgs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			chars := arg[1:]
			for _, c := range chars {
				expandedArgs = append(expandedArgs, fmt.Sprintf("-%c", c))
			}
		} else {
			expandedArgs = append(expandedArgs, arg)
		}
	}

	var groups []CommandGroup
	var currentGroup CommandGroup
	var lastCommand string

	i := 0
	for i < len(expandedArgs) {
		arg := expandedArgs[i]

		if !strings.HasPrefix(arg, "-") {
			// Non-flag argument at top level
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: fmt.Sprintf("invalid option '%s'", arg), FailingCommand: lastCommand}
		}

		if IsModifier(arg) {
			currentGroup.Flags = append(currentGroup.Flags, arg)
			lastCommand = arg
			i++
			continue
		}

		if arg == "-f" || arg == "--file" || strings.HasPrefix(arg, "--file=") {
			if value, found := strings.CutPrefix(arg, "--file="); found {
				currentGroup.Flags = append(currentGroup.Flags, "--file")
				currentGroup.File = value
			} else {
				if i+1 >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i+1], "-") {
					return nil, &ParseError{Args: expandedArgs, Index: i, FailingCommand: arg, Message: fmt.Sprintf("Command %s requires a file path.", arg)}
				}
				currentGroup.Flags = append(currentGroup.Flags, arg)
				currentGroup.File = expandedArgs[i+1]
				i++
			}
			lastCommand = arg
			i++
			continue
		}

		// If not a modifier, and starts with -, it's a command.

		// Validate that the command is a known flag.
		// Handle potential key=value formats (e.g. --get=VAR)
		cmdToCheck := arg
		if strings.Contains(cmdToCheck, "=") {
			cmdToCheck = strings.SplitN(cmdToCheck, "=", 2)[0]
		}

		cmdName := strings.TrimLeft(cmdToCheck, "-")
		var validFlag *pflag.Flag
		if strings.HasPrefix(cmdToCheck, "--") {
			validFlag = pflag.Lookup(cmdName)
		} else if len(cmdName) == 1 {
			validFlag = pflag.CommandLine.ShorthandLookup(cmdName)
		}

		if validFlag == nil {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o"}
		}

		currentGroup.Command = arg
		lastCommand = arg
		cmd := arg
		i++

		// Consume arguments for this command
		consumesUntilDash := false

		switch cmd {
		// Commands that take unlimited arguments (until next flag)
		case "-g", "--get", "--get-line", "--get-literal",
			"-s", "--set", "--set-literal",
			"-c", "--check":
			consumesUntilDash = true

		// Commands that require exactly ONE argument
		case "-m", "--merge":
			if i >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i], "-") {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires a source file argument.", cmd)}
			}
			currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
			i++

		// Exec consumes everything that remains, flags included; the rest of
		// the command line belongs to the child process.
		case "-e", "--exec":
			if i >= len(expandedArgs) {
				return nil, &ParseError{Args: expandedArgs, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires a command to run.", cmd)}
			}
			currentGroup.Args = append(currentGroup.Args, expandedArgs[i:]...)
			i = len(expandedArgs)

		case "-h", "--help":
			// Help allows an optional flag/command argument
			if i < len(expandedArgs) && strings.HasPrefix(expandedArgs[i], "-") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}

		// Commands that take NO arguments
		case "-l", "--list", "-p", "--print", "-V", "--version":
			// Do nothing, consumesUntilDash is false

		default:
			// Known flag not in this switch consumes 0 args. If the user
			// provided args, they will be caught as "Invalid Option" in the
			// next loop iteration.
		}

		if consumesUntilDash {
			for i < len(expandedArgs) {
				nextArg := expandedArgs[i]
				if strings.HasPrefix(nextArg, "-") {
					// Next flag starts
					break
				}
				currentGroup.Args = append(currentGroup.Args, nextArg)
				i++
			}
		}

		// Command group finished
		groups = append(groups, currentGroup)
		currentGroup = CommandGroup{} // Reset for next group
	}

	// Trailing modifiers form a group without a command; the caller decides
	// what to do with it.
	if len(currentGroup.Flags) > 0 {
		groups = append(groups, currentGroup)
	}

	return groups, nil
}
