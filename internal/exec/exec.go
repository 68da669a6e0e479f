package exec

import (
	"EnvKit/internal/logger"
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RunWithEnv executes a command with extra environment variables layered on
// top of the current process environment. Keys in env win over inherited
// values. Stdin/stdout/stderr are passed through so interactive children
// behave normally.
//
// Returns the child's exit code and any execution error.
func RunWithEnv(ctx context.Context, env map[string]string, command string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = mergeEnviron(os.Environ(), env)

	logger.Debug(ctx, "Running: {{_RunningCommand_}}%s{{|-|}}", commandText(command, args))

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("command failed: %w", err)
	}
	return 0, nil
}

// mergeEnviron overlays extra KEY=VALUE pairs onto a base environment,
// replacing any existing entry for the same key.
func mergeEnviron(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	merged := make([]string, 0, len(base)+len(extra))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if _, shadowed := extra[key]; shadowed {
			continue
		}
		merged = append(merged, entry)
	}
	for key, value := range extra {
		merged = append(merged, key+"="+value)
	}
	return merged
}

// RunAndLog executes a command, captures output, prefixes each line, and logs appropriately.
//
// Parameters:
//   - ctx: Context for the command execution
//   - runningNoticeType: Notice type for logging the "Running: ..." message ("notice", "info", etc.). Empty string to skip.
//   - outputNoticeType: Notice type for logging output. Can include prefix like "git:info". Empty string to skip.
//   - errorNoticeType: Notice type for logging errors ("error", "warn", etc.). Empty string to skip.
//   - errorMessage: Message to log on error
//   - command: Command name
//   - args: Command arguments
//
// Returns error if command fails.
func RunAndLog(ctx context.Context, runningNoticeType, outputNoticeType, errorNoticeType, errorMessage, command string, args ...string) error {
	cmdText := commandText(command, args)

	if runningNoticeType != "" {
		logByType(ctx, runningNoticeType, "Running: {{_RunningCommand_}}%s{{|-|}}", cmdText)
	}

	cmd := exec.CommandContext(ctx, command, args...)
	var outputBuf bytes.Buffer

	// If outputNoticeType is set, capture output to process it.
	// Otherwise, stream directly to stdout/stderr.
	if outputNoticeType != "" {
		cmd.Stdout = &outputBuf
		cmd.Stderr = &outputBuf
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()

	if outputNoticeType != "" && outputBuf.Len() > 0 {
		// Parse prefix and notice type (e.g., "git:notice" -> prefix="git:", type="notice")
		prefix := ""
		noticeType := outputNoticeType
		if strings.Contains(outputNoticeType, ":") {
			parts := strings.SplitN(outputNoticeType, ":", 2)
			prefix = parts[0] + ":"
			noticeType = parts[1]
		}

		scanner := bufio.NewScanner(&outputBuf)
		for scanner.Scan() {
			line := scanner.Text()
			if line != "" {
				if prefix != "" {
					prefixedLine := fmt.Sprintf("{{_RunningCommand_}}%s{{|-|}} %s", prefix, line)
					logByType(ctx, noticeType, prefixedLine)
				} else {
					logByType(ctx, noticeType, line)
				}
			}
		}
	}

	if err != nil {
		if errorNoticeType != "" && errorMessage != "" {
			logByType(ctx, errorNoticeType, errorMessage)
			logByType(ctx, errorNoticeType, "Failing command: {{_FailingCommand_}}%s{{|-|}}", cmdText)
		}
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// logByType logs a message with the appropriate logger function based on type
func logByType(ctx context.Context, noticeType string, format string, args ...any) {
	switch strings.ToLower(noticeType) {
	case "notice":
		logger.Notice(ctx, format, args...)
	case "info":
		logger.Info(ctx, format, args...)
	case "warn", "warning":
		logger.Warn(ctx, format, args...)
	case "error":
		logger.Error(ctx, format, args...)
	case "debug":
		logger.Debug(ctx, format, args...)
	default:
		logger.Notice(ctx, format, args...)
	}
}

// RunCommand executes a command without logging. Use this for simple command execution.
func RunCommand(ctx context.Context, command string, args ...string) error {
	cmd := exec.CommandContext(ctx, command, args...)
	return cmd.Run()
}

// RunCommandOutput executes a command and returns its output.
func RunCommandOutput(ctx context.Context, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func commandText(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return fmt.Sprintf("%s %s", command, strings.Join(args, " "))
}
