package dotenv

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse reads r fully and parses its content as a document.
// No environment side effects.
func Parse(r io.Reader) (*Vars, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseDocument(string(data))
}

// ParseString parses text as a document. No environment side effects.
func ParseString(text string) (*Vars, error) {
	return parseDocument(text)
}

// parseDocument scans all lines of text, skipping blanks, comments and
// non-assignment noise, and accumulates validated pairs in order. The first
// KEY=value shaped line that violates a rule aborts the parse; nothing is
// returned for the document in that case.
func parseDocument(text string) (*Vars, error) {
	vars := NewVars()
	for _, line := range splitLines(text) {
		candidate, ok := classifyLine(line)
		if !ok {
			continue
		}
		// Lines with no '=' at all are not assignments. They are skipped,
		// never raised.
		if !strings.Contains(candidate, "=") {
			continue
		}
		key, value, err := parsePair(candidate)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		vars.Set(key, value)
	}
	return vars, nil
}

// splitLines splits a document on any common line terminator.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// classifyLine decides whether a line is a candidate assignment. Blank lines
// and comment lines report ok=false. Candidates are returned with leading
// and trailing whitespace trimmed at the line boundaries only.
func classifyLine(line string) (candidate string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	return trimmed, true
}

// parsePair splits a candidate at its first '=' and validates both sides.
func parsePair(candidate string) (key, value string, err error) {
	eq := strings.IndexByte(candidate, '=')
	key = candidate[:eq]
	if key == "" {
		return "", "", ErrEmptyKey
	}
	for _, r := range key {
		if r == '#' || r == '"' || r == '\'' || unicode.IsSpace(r) {
			return "", "", &KeyCharError{Char: r}
		}
	}

	value, err = parseValue(candidate[eq+1:])
	if err != nil {
		return "", "", err
	}
	return key, value, nil
}

// parseValue parses the raw value region, dispatching on its first
// character.
func parseValue(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	first, _ := utf8.DecodeRuneInString(raw)

	// Quoted: the opening quote pairs with the last character of the line,
	// whatever it is. Content between is taken verbatim, embedded quotes of
	// either kind included. An unterminated quote is not detected; it simply
	// consumes to end of line.
	if first == '"' || first == '\'' {
		if len(raw) == 1 {
			return "", nil
		}
		// The last character may be a multibyte rune; drop it whole.
		_, size := utf8.DecodeLastRuneInString(raw)
		return raw[1 : len(raw)-size], nil
	}

	if unicode.IsSpace(first) {
		return "", &LeadingSpaceError{Char: first}
	}

	// Unquoted: no whitespace anywhere. A '=' inside the value is fine since
	// only the first '=' splits key from value.
	for _, r := range raw {
		if unicode.IsSpace(r) {
			return "", &UnquotedSpaceError{Char: r}
		}
	}
	return raw, nil
}
