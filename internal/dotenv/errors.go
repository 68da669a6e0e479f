package dotenv

import (
	"errors"
	"fmt"
)

// ParseError is returned when a KEY=value shaped line violates a key or
// value rule. Line holds the offending source line verbatim, including its
// original whitespace; Err is the violated rule.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing line %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrEmptyKey is the cause for lines with nothing before the '='.
var ErrEmptyKey = errors.New("a variable key cannot be empty")

// KeyCharError is the cause for keys containing a forbidden character.
// Char is the first offending character.
type KeyCharError struct {
	Char rune
}

func (e *KeyCharError) Error() string {
	return fmt.Sprintf("a variable key cannot contain %q", e.Char)
}

// LeadingSpaceError is the cause for unquoted values starting with
// whitespace.
type LeadingSpaceError struct {
	Char rune
}

func (e *LeadingSpaceError) Error() string {
	return fmt.Sprintf("a value cannot start with a whitespace: %q", e.Char)
}

// UnquotedSpaceError is the cause for unquoted values containing whitespace.
type UnquotedSpaceError struct {
	Char rune
}

func (e *UnquotedSpaceError) Error() string {
	return fmt.Sprintf("an unquoted value cannot contain a whitespace: %q", e.Char)
}
