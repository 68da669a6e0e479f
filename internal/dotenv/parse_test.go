package dotenv

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"EnvKit/internal/testutils"
)

func TestParseStringValues(t *testing.T) {
	// Single-assignment documents: input line -> expected value of the key.
	cases := []struct {
		line  string
		key   string
		value string
	}{
		{"VAR=Hello", "VAR", "Hello"},
		{"  VAR=Hello ", "VAR", "Hello"},
		{"VAR=", "VAR", ""},
		{"VAR='Hello'", "VAR", "Hello"},
		{`VAR="Hello"`, "VAR", "Hello"},
		{"VAR='va'lue'", "VAR", "va'lue"},
		{`VAR="va"lue"`, "VAR", `va"lue`},
		{`VAR='va"lue'`, "VAR", `va"lue`},
		{`VAR="va'lue"`, "VAR", "va'lue"},
		{"VAR=postgres://foo@localhost:5432/bar?max_pool_size=10", "VAR", "postgres://foo@localhost:5432/bar?max_pool_size=10"},
		{"VAR='Hello World'", "VAR", "Hello World"},
		{"VAR='héllö'", "VAR", "héllö"},
		{`VAR="héllö`, "VAR", "héll"},
		{`VAR=" leading and trailing "`, "VAR", " leading and trailing "},
		{"VAR='#not a comment'", "VAR", "#not a comment"},
	}

	var table []testutils.TestCase
	for _, tc := range cases {
		vars, err := ParseString(tc.line)
		actual := ""
		pass := false
		if err != nil {
			actual = fmt.Sprintf("error: %v", err)
		} else if got, ok := vars.Get(tc.key); ok {
			actual = got
			pass = got == tc.value
		} else {
			actual = "(missing)"
		}
		table = append(table, testutils.TestCase{
			Name:     tc.line,
			Input:    tc.line,
			Expected: tc.value,
			Actual:   actual,
			Pass:     pass,
		})
	}
	testutils.PrintTestTable(t, table)
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want rune // offending character, 0 for empty-key
	}{
		{"key with hash", "V#AR=val", '#'},
		{"key with double quote", `V"AR=val`, '"'},
		{"key with single quote", "V'AR=val", '\''},
		{"key with space", "V AR=val", ' '},
		{"empty key", "=val", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.text)
			if err == nil {
				t.Fatalf("ParseString(%q) expected error", tt.text)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error is not a ParseError: %v", err)
			}
			if perr.Line != tt.text {
				t.Errorf("ParseError.Line = %q, want %q", perr.Line, tt.text)
			}

			if tt.want == 0 {
				if !errors.Is(err, ErrEmptyKey) {
					t.Errorf("cause = %v, want ErrEmptyKey", perr.Err)
				}
				return
			}
			var kerr *KeyCharError
			if !errors.As(err, &kerr) {
				t.Fatalf("cause is not a KeyCharError: %v", perr.Err)
			}
			if kerr.Char != tt.want {
				t.Errorf("KeyCharError.Char = %q, want %q", kerr.Char, tt.want)
			}
			if !strings.Contains(err.Error(), fmt.Sprintf("%q", tt.want)) {
				t.Errorf("message %q does not name the offending character", err.Error())
			}
		})
	}
}

func TestParseValueWhitespaceErrors(t *testing.T) {
	t.Run("unquoted value with space", func(t *testing.T) {
		_, err := ParseString("VAR=v al")
		var serr *UnquotedSpaceError
		if !errors.As(err, &serr) {
			t.Fatalf("expected UnquotedSpaceError, got %v", err)
		}
		if serr.Char != ' ' {
			t.Errorf("Char = %q, want space", serr.Char)
		}
	})

	t.Run("value starting with space", func(t *testing.T) {
		_, err := ParseString("VAR= val")
		var lerr *LeadingSpaceError
		if !errors.As(err, &lerr) {
			t.Fatalf("expected LeadingSpaceError, got %v", err)
		}
		if lerr.Char != ' ' {
			t.Errorf("Char = %q, want space", lerr.Char)
		}
	})

	t.Run("value starting with tab", func(t *testing.T) {
		// The classifier trims line-boundary whitespace only; the tab here
		// sits inside the line, after the '='.
		_, err := ParseString("VAR=\tval")
		var lerr *LeadingSpaceError
		if !errors.As(err, &lerr) {
			t.Fatalf("expected LeadingSpaceError, got %v", err)
		}
		if lerr.Char != '\t' {
			t.Errorf("Char = %q, want tab", lerr.Char)
		}
	})
}

func TestParseErrorAborts(t *testing.T) {
	// The failing second line must abort the whole document; no partial
	// result is returned.
	vars, err := ParseString("GOOD=one\nBAD= oops\nLATER=two")
	if err == nil {
		t.Fatal("expected error")
	}
	if vars != nil {
		t.Errorf("expected nil result on parse failure, got %v", vars.Map())
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is not a ParseError: %v", err)
	}
	if perr.Line != "BAD= oops" {
		t.Errorf("ParseError.Line = %q, want the offending line verbatim", perr.Line)
	}
}

func TestParseNoiseTolerance(t *testing.T) {
	// Lines without any '=' are not assignments and are skipped silently.
	vars, err := ParseString("VAR1=Hello\nHELLO:asd")
	if err != nil {
		t.Fatal(err)
	}
	if vars.Len() != 1 {
		t.Errorf("Len = %d, want 1", vars.Len())
	}
	if got, _ := vars.Get("VAR1"); got != "Hello" {
		t.Errorf("VAR1 = %q, want Hello", got)
	}
}

func TestParseCommentsAndBlanks(t *testing.T) {
	text := "# leading comment\n\nVAR=Dude\n\n   # indented comment\n\t\n"
	vars, err := ParseString(text)
	if err != nil {
		t.Fatal(err)
	}
	if vars.Len() != 1 {
		t.Errorf("Len = %d, want 1", vars.Len())
	}
	if got, _ := vars.Get("VAR"); got != "Dude" {
		t.Errorf("VAR = %q, want Dude", got)
	}
}

func TestParseMultiplePairs(t *testing.T) {
	vars, err := ParseString("VAR2=test\nVAR3=other")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"VAR2": "test", "VAR3": "other"}
	got := vars.Map()
	if len(got) != len(want) {
		t.Fatalf("Map = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	vars, err := ParseString("VAR=first\nOTHER=x\nVAR=second")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := vars.Get("VAR"); got != "second" {
		t.Errorf("VAR = %q, want second", got)
	}
	// The key keeps its original position
	keys := vars.Keys()
	if len(keys) != 2 || keys[0] != "VAR" || keys[1] != "OTHER" {
		t.Errorf("Keys = %v, want [VAR OTHER]", keys)
	}
}

func TestParseLineTerminators(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"lf", "A=1\nB=2"},
		{"crlf", "A=1\r\nB=2"},
		{"cr", "A=1\rB=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, err := ParseString(tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if vars.Len() != 2 {
				t.Errorf("Len = %d, want 2", vars.Len())
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	vars, err := Parse(strings.NewReader("VAR=stream"))
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := vars.Get("VAR"); got != "stream" {
		t.Errorf("VAR = %q, want stream", got)
	}
}
