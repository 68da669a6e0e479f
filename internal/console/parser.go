package console

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/muesli/termenv"
)

var (
	// semanticMap stores semantic tag -> ANSI code mappings (e.g., "File" -> cyan)
	semanticMap map[string]string

	// semanticRegex matches {{_content_}} format for semantic tags
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}`)

	// directRegex matches {{|content|}} format for direct style codes
	directRegex = regexp.MustCompile(`\{\{\|([A-Za-z\-]+)\|\}\}`)

	// ansiRegex matches rendered ANSI SGR sequences, for Strip
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

	isTTYGlobal bool

	// preferredProfile stores the detected or forced color profile
	preferredProfile termenv.Profile
)

func init() {
	// Check TTY once
	stat, _ := os.Stdout.Stat()
	isTTYGlobal = (stat.Mode() & os.ModeCharDevice) != 0

	preferredProfile = detectProfile()

	semanticMap = map[string]string{
		"ApplicationName":       CodeCyan + CodeBold,
		"Version":               CodeCyan,
		"File":                  CodeCyan,
		"Var":                   CodeMagenta,
		"Value":                 CodeGreen,
		"RunningCommand":        CodeBlue,
		"FailingCommand":        CodeRed,
		"UserCommand":           CodeYellow,
		"UserCommandError":      CodeRed,
		"UserCommandErrorMarker": CodeRed + CodeBold,
		"UsageCommand":          CodeYellow,
		"UsageFile":             CodeCyan,
		"UsageVar":              CodeMagenta,
		"TraceHeader":           CodeDim,
		"TraceFooter":           CodeDim,
		"TraceFrameNumber":      CodeBlue,
		"TraceFrameLines":       CodeDim,
		"TraceSourceFile":       CodeCyan,
		"TraceLineNumber":       CodeYellow,
		"TraceFunction":         CodeMagenta,
		"FatalFooter":           CodeRed,
	}
}

// GetPreferredProfile returns the detected or forced color profile
func GetPreferredProfile() termenv.Profile {
	return preferredProfile
}

// SetPreferredProfile explicitly sets the color profile (useful for testing)
func SetPreferredProfile(p termenv.Profile) {
	preferredProfile = p
}

func detectProfile() termenv.Profile {
	// 1. Check COLORTERM for explicit overrides
	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	switch colorTerm {
	case "truecolor", "24bit":
		return termenv.TrueColor
	case "8bit", "256color":
		return termenv.ANSI256
	case "4bit", "16color", "8color", "3bit":
		return termenv.ANSI
	case "1bit", "2color", "mono", "false", "0":
		return termenv.Ascii
	}

	// 2. Check TERM for well-known color-capable terms
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "direct") {
		return termenv.TrueColor
	}
	if strings.Contains(term, "256color") {
		return termenv.ANSI256
	}
	if strings.Contains(term, "16color") {
		return termenv.ANSI
	}
	if term == "dumb" {
		return termenv.Ascii
	}

	// 3. Fallback to automatic detection
	return termenv.ColorProfile()
}

// colorEnabled reports whether semantic tags should render as ANSI codes.
func colorEnabled() bool {
	return isTTYGlobal && preferredProfile != termenv.Ascii
}

// Parse replaces {{_Tag_}} semantic markers and {{|-|}} reset markers with
// ANSI codes, or strips them when output is not a color terminal.
func Parse(s string) string {
	enabled := colorEnabled()

	s = semanticRegex.ReplaceAllStringFunc(s, func(match string) string {
		if !enabled {
			return ""
		}
		tag := semanticRegex.FindStringSubmatch(match)[1]
		return semanticMap[tag]
	})

	s = directRegex.ReplaceAllStringFunc(s, func(match string) string {
		if !enabled {
			return ""
		}
		code := directRegex.FindStringSubmatch(match)[1]
		if code == "-" {
			return CodeReset
		}
		return directCode(code)
	})

	return s
}

// directCode resolves a named direct style code such as {{|red|}} or {{|bold|}}.
func directCode(name string) string {
	switch strings.ToLower(name) {
	case "bold":
		return CodeBold
	case "dim":
		return CodeDim
	case "underline":
		return CodeUnderline
	case "reverse":
		return CodeReverse
	case "black":
		return CodeBlack
	case "red":
		return CodeRed
	case "green":
		return CodeGreen
	case "yellow":
		return CodeYellow
	case "blue":
		return CodeBlue
	case "magenta":
		return CodeMagenta
	case "cyan":
		return CodeCyan
	case "white":
		return CodeWhite
	}
	return ""
}

// Println renders console markup in its arguments and prints the result to
// stdout followed by a newline.
func Println(a ...any) {
	msg := fmt.Sprint(a...)
	fmt.Println(Parse(msg))
}

// Strip removes all console markup and rendered ANSI sequences from a string.
// Used by the file log handler, which must stay color free.
func Strip(s string) string {
	s = semanticRegex.ReplaceAllString(s, "")
	s = directRegex.ReplaceAllString(s, "")
	return ansiRegex.ReplaceAllString(s, "")
}
