package envfile

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// assignmentRegex matches a valid shell variable assignment with optional
// indentation and captures the key.
var assignmentRegex = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_]*)=`)

// Keys returns a set of all variable keys found in the file.
// A missing file yields an empty set, not an error.
func Keys(file string) (map[string]bool, error) {
	keys := make(map[string]bool)
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return keys, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		matches := assignmentRegex.FindStringSubmatch(scanner.Text())
		if matches != nil {
			keys[matches[1]] = true
		}
	}
	return keys, scanner.Err()
}

// Lines returns only the lines of the file that contain assignments,
// skipping blanks, comments and lines without a '='.
func Lines(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			lines = append(lines, line)
		}
	}

	return lines, scanner.Err()
}
