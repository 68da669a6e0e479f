package envfile

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Get returns the value of the variable from the file.
// The value is parsed from the definition line respecting quotes and
// ` #` inline comments.
func Get(key, file string) (string, error) {
	literal, err := GetLiteral(key, file)
	if err != nil {
		return "", err
	}
	if literal == "" {
		return "", nil
	}

	// literal is everything after the first '='
	val := strings.TrimLeft(literal, " \t")

	// 1. Quoted string: content between the first quote and the last
	// matching quote on the line.
	if len(val) >= 2 {
		quote := val[0]
		if quote == '"' || quote == '\'' {
			lastIdx := strings.LastIndexByte(val, quote)
			if lastIdx > 0 {
				return val[1:lastIdx], nil
			}
		}
	}

	// 2. Unquoted value: runs until " #" (space followed by hash) or end of
	// line. A '#' with no space before it is part of the value.
	if idx := strings.Index(val, " #"); idx != -1 {
		return strings.TrimRight(val[:idx], " \t"), nil
	}

	return strings.TrimRight(val, " \t"), nil
}

// GetLine returns the full line containing the variable definition,
// untouched.
func GetLine(key, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	// Variable definition: optional indentation, key, optional spacing, '='
	re := regexp.MustCompile(fmt.Sprintf(`^\s*%s\s*=`, regexp.QuoteMeta(key)))

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if re.MatchString(line) {
			return line, nil
		}
	}
	return "", scanner.Err()
}

// GetLineRegex returns all definition lines whose key matches the regex,
// sorted.
func GetLineRegex(keyRegex, file string) ([]string, error) {
	var lines []string
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	re := regexp.MustCompile(fmt.Sprintf(`^\s*(%s)\s*=`, keyRegex))

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if re.MatchString(line) {
			lines = append(lines, line)
		}
	}
	sort.Strings(lines)
	return lines, scanner.Err()
}

// GetLiteral returns the raw value part (RHS) of the variable definition:
// everything after the first '=', whitespace and inline comments included.
func GetLiteral(key, file string) (string, error) {
	line, err := GetLine(key, file)
	if err != nil || line == "" {
		return "", err
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) == 2 {
		return parts[1], nil
	}
	return "", nil
}

// GetLineNumber returns the 1-based line number of the variable definition,
// or 0 if the variable is not defined.
func GetLineNumber(key, file string) (int, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	re := regexp.MustCompile(fmt.Sprintf(`^\s*%s\s*=`, regexp.QuoteMeta(key)))

	lineNum := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		if re.MatchString(scanner.Text()) {
			return lineNum, nil
		}
	}
	return 0, scanner.Err()
}
