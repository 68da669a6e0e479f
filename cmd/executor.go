package cmd

import (
	"EnvKit/internal/config"
	"EnvKit/internal/console"
	"EnvKit/internal/dotenv"
	"EnvKit/internal/envfile"
	"EnvKit/internal/exec"
	"EnvKit/internal/logger"
	"EnvKit/internal/version"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// CmdState holds the state of flags for a single command group.
type CmdState struct {
	File     string
	Override bool
}

// Execute runs the logic for a sequence of command groups.
// It handles flag application, command switching, and state resetting.
// The returned int is the process exit code.
func Execute(ctx context.Context, groups []CommandGroup) int {
	// Unexpected panics in handlers become a rendered fatal with stack trace
	defer logger.Recover(ctx)

	conf := config.LoadAppConfig()
	logger.SetLevel(logger.ParseLevel(conf.Log.Level))

	ranCommand := false

	for _, group := range groups {
		state := CmdState{
			File:     conf.Files.EnvFile,
			Override: conf.Load.Override,
		}

		// Apply Flags
		for _, flag := range group.Flags {
			switch flag {
			case "-v", "--verbose":
				logger.SetLevel(logger.LevelInfo)
			case "-x", "--debug":
				logger.SetLevel(logger.LevelDebug)
			case "-o", "--override":
				state.Override = true
			case "-f", "--file":
				state.File = group.File
			}
		}

		cmdStr := version.CommandName
		for _, part := range group.FullSlice() {
			cmdStr += " " + part
		}
		logger.Info(ctx, "%s command: '{{_UserCommand_}}%s{{|-|}}'", version.ApplicationName, cmdStr)
		logger.Debug(ctx, "Execution Args -> State: %+v, Command: %v", state, group.CommandSlice())

		var err error
		exitCode := 0

		switch baseCommand(group.Command) {
		case "-h", "--help":
			handleHelp(&group)
			ranCommand = true
		case "-V", "--version":
			handleVersion(ctx)
			ranCommand = true
		case "-g", "--get", "--get-line", "--get-literal":
			err = handleGet(ctx, &group, &state)
			ranCommand = true
		case "-s", "--set", "--set-literal":
			err = handleSet(ctx, &group, &state)
			ranCommand = true
		case "-l", "--list":
			err = handleList(ctx, &state)
			ranCommand = true
		case "-p", "--print":
			err = handlePrint(ctx, &state)
			ranCommand = true
		case "-c", "--check":
			exitCode = handleCheck(ctx, &group, &state)
			ranCommand = true
		case "-m", "--merge":
			err = handleMerge(ctx, &group, &state)
			ranCommand = true
		case "-e", "--exec":
			exitCode, err = handleExec(ctx, &group, &state)
			ranCommand = true
		default:
			// Flags-only group, ranCommand remains false
		}

		// Reset command-scoped verbosity before the next group
		logger.SetLevel(logger.ParseLevel(conf.Log.Level))

		if err != nil {
			logger.Error(ctx, "%v", err)
			return 1
		}
		if exitCode != 0 {
			return exitCode
		}
	}

	if !ranCommand {
		PrintHelp("")
	}

	return 0
}

// baseCommand strips an inline =value from a command flag (e.g. --get=VAR).
func baseCommand(cmd string) string {
	if idx := strings.Index(cmd, "="); idx != -1 {
		return cmd[:idx]
	}
	return cmd
}

// commandArgs returns the effective argument list for a command, honoring
// the single-parameter --cmd=value form. An empty inline value counts as no
// arguments.
func commandArgs(group *CommandGroup) []string {
	if idx := strings.Index(group.Command, "="); idx != -1 {
		if value := group.Command[idx+1:]; value != "" {
			return []string{value}
		}
		return nil
	}
	return group.Args
}

func handleHelp(group *CommandGroup) {
	target := ""
	if len(group.Args) > 0 {
		target = group.Args[0]
	}
	PrintHelp(target)
}

func handleVersion(ctx context.Context) {
	console.Println(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))
	logger.Debug(ctx, "Commit: %s, Built: %s", version.Commit, version.BuildDate)
}

func handleGet(ctx context.Context, group *CommandGroup, state *CmdState) error {
	args := commandArgs(group)
	if len(args) == 0 {
		return fmt.Errorf("the '%s' command requires at least one variable name", group.Command)
	}

	baseCmd := baseCommand(group.Command)
	for _, key := range args {
		var val string
		var err error

		switch baseCmd {
		case "--get-literal":
			val, err = envfile.GetLiteral(key, state.File)
		case "--get-line":
			val, err = envfile.GetLine(key, state.File)
		default:
			val, err = envfile.Get(key, state.File)
		}

		if err != nil {
			return fmt.Errorf("getting %s: %w", key, err)
		}
		if val != "" {
			console.Println(val)
		}
	}
	return nil
}

func handleSet(ctx context.Context, group *CommandGroup, state *CmdState) error {
	type kv struct {
		key string
		val string
	}
	var pairs []kv

	if idx := strings.Index(group.Command, "="); idx != -1 {
		// Single parameter version: --set=VAR,VAL
		param := group.Command[idx+1:]
		parts := strings.Split(param, ",")
		if len(parts) < 2 {
			return fmt.Errorf("the '%s' command requires a variable name and a value separated by a comma", baseCommand(group.Command))
		}
		pairs = append(pairs, kv{parts[0], strings.Join(parts[1:], ",")})
	} else {
		if len(group.Args) == 0 {
			return fmt.Errorf("the '%s' command requires at least one VAR=value argument", group.Command)
		}
		for _, arg := range group.Args {
			key, val, found := strings.Cut(arg, "=")
			if !found {
				return fmt.Errorf("argument %q is missing '='", arg)
			}
			pairs = append(pairs, kv{key, val})
		}
	}

	isLiteral := strings.Contains(baseCommand(group.Command), "-literal")

	for _, p := range pairs {
		var err error
		if isLiteral {
			err = envfile.SetLiteral(p.key, p.val, state.File)
		} else {
			err = envfile.Set(p.key, p.val, state.File)
		}
		if err != nil {
			return fmt.Errorf("setting %s: %w", p.key, err)
		}
		logger.Debug(ctx, "Set {{_Var_}}%s{{|-|}} in {{_File_}}%s{{|-|}}", p.key, state.File)
	}
	return nil
}

func handleList(ctx context.Context, state *CmdState) error {
	lines, err := envfile.Lines(state.File)
	if err != nil {
		return err
	}
	for _, line := range lines {
		console.Println(line)
	}
	return nil
}

func handlePrint(ctx context.Context, state *CmdState) error {
	content, err := os.ReadFile(state.File)
	if err != nil {
		return err
	}
	vars, err := dotenv.ParseString(string(content))
	if err != nil {
		return err
	}
	for _, key := range vars.Keys() {
		val, _ := vars.Get(key)
		console.Println(fmt.Sprintf("{{_Var_}}%s{{|-|}}={{_Value_}}%s{{|-|}}", key, val))
	}
	return nil
}

// handleCheck strict-parses each file and reports the first error per file.
// Returns 0 when every file parses, 1 otherwise.
func handleCheck(ctx context.Context, group *CommandGroup, state *CmdState) int {
	files := group.Args
	if len(files) == 0 {
		files = []string{state.File}
	}

	exitCode := 0
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Error(ctx, "{{_File_}}%s{{|-|}}: %v", file, err)
			exitCode = 1
			continue
		}

		vars, err := dotenv.ParseString(string(content))
		if err != nil {
			var parseErr *dotenv.ParseError
			if errors.As(err, &parseErr) {
				logger.Error(ctx, "{{_File_}}%s{{|-|}}: line {{_Value_}}%q{{|-|}}: %v", file, parseErr.Line, parseErr.Unwrap())
			} else {
				logger.Error(ctx, "{{_File_}}%s{{|-|}}: %v", file, err)
			}
			exitCode = 1
			continue
		}

		logger.Notice(ctx, "{{_File_}}%s{{|-|}}: OK ({{_Value_}}%d{{|-|}} variables)", file, vars.Len())
	}
	return exitCode
}

func handleMerge(ctx context.Context, group *CommandGroup, state *CmdState) error {
	args := commandArgs(group)
	if len(args) == 0 {
		return fmt.Errorf("the '%s' command requires a source file argument", group.Command)
	}
	source := args[0]
	added, err := envfile.MergeNewOnly(ctx, state.File, source)
	if err != nil {
		return err
	}
	logger.Notice(ctx, "Merged {{_Value_}}%d{{|-|}} new variables from {{_File_}}%s{{|-|}} into {{_File_}}%s{{|-|}}", len(added), source, state.File)
	return nil
}

// handleExec loads the env file into the process environment and runs the
// given command, passing the environment down to the child.
func handleExec(ctx context.Context, group *CommandGroup, state *CmdState) (int, error) {
	// Honor the inline --exec=cmd form; any further args belong to the child
	args := commandArgs(group)
	if idx := strings.Index(group.Command, "="); idx != -1 {
		args = append(args, group.Args...)
	}
	if len(args) == 0 {
		return 1, fmt.Errorf("the '%s' command requires a command to run", group.Command)
	}

	loader := dotenv.Loader{Override: state.Override}
	if _, err := loader.LoadFile(state.File); err != nil {
		return 1, err
	}

	return exec.RunWithEnv(ctx, nil, args[0], args[1:]...)
}
