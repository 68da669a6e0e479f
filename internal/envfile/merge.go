package envfile

import (
	"bufio"
	"context"
	"os"

	"EnvKit/internal/constants"
	"EnvKit/internal/logger"

	"github.com/gofrs/flock"
)

// MergeNewOnly merges variables from source file to target file, adding only
// new ones.
//
// Behavior:
//   - If source file doesn't exist: logs a warning and returns nil
//   - If target file doesn't exist: creates it as an empty file first
//   - Skips variables that already exist in the target (no overwriting)
//   - Logs each variable being added with its full definition line
//   - Prevents duplicates even if the source file contains them
//
// Returns the definition lines that were added, or nil if none.
func MergeNewOnly(ctx context.Context, targetFile, sourceFile string) ([]string, error) {
	if _, err := os.Stat(sourceFile); os.IsNotExist(err) {
		logger.Warn(ctx, "File '{{_File_}}%s{{|-|}}' does not exist.", sourceFile)
		return nil, nil // Source doesn't exist, nothing to merge
	}

	// Ensure target exists
	if _, err := os.Stat(targetFile); os.IsNotExist(err) {
		if err := os.WriteFile(targetFile, []byte{}, 0644); err != nil {
			return nil, err
		}
	}

	targetKeys, err := Keys(targetFile)
	if err != nil {
		return nil, err
	}

	fSource, err := os.Open(sourceFile)
	if err != nil {
		return nil, err
	}
	defer fSource.Close()

	var newLines []string

	scanner := bufio.NewScanner(fSource)
	for scanner.Scan() {
		line := scanner.Text()
		matches := assignmentRegex.FindStringSubmatch(line)
		if matches != nil {
			key := matches[1]
			if !targetKeys[key] {
				newLines = append(newLines, line)
				// Add to local set to avoid duplicates if source has duplicates
				targetKeys[key] = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(newLines) > 0 {
		logger.Notice(ctx, "Adding variables to {{_File_}}%s{{|-|}}:", targetFile)
		for _, line := range newLines {
			logger.Notice(ctx, "   {{_Var_}}%s{{|-|}}", line)
		}

		if err := appendLines(newLines, targetFile); err != nil {
			return nil, err
		}
	}

	return newLines, nil
}

// appendLines appends definition lines to the target, making sure the
// existing content ends with a newline first.
func appendLines(lines []string, file string) error {
	lock := flock.New(file + constants.LockSuffix)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	targetContent, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(file, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := bufio.NewWriter(f)
	if len(targetContent) > 0 && targetContent[len(targetContent)-1] != '\n' {
		writer.WriteString("\n")
	}
	for _, line := range lines {
		writer.WriteString(line + "\n")
	}
	return writer.Flush()
}
