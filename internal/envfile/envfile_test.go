package envfile

import (
	"context"
	"os"
	"strings"
	"testing"
)

func setupTestEnv(t *testing.T) string {
	t.Helper()
	testContent := `Var_01='Value'
    Var_02='Value'
Var_03  ='Value'
    Var_04  ='Value'
Var_05=  'Value'
Var_06='Value'# Comment # kljkl
    Var_07='Value' # Comment
Var_08  ='Value' # Comment
    Var_09  ='Value' # Comment
Var_10=  'Value' # Comment
Var_11=  Value# Not a Comment
Var_12=  '#Value' # Comment
Var_13=  #Value# Not a Comment
Var_14=  'Va#lue' # Comment
Var_15=  Va# lue# Not a Comment
Var_16=  Va# lue # Comment
`
	tmpfile, err := os.CreateTemp("", "test.env")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(testContent)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })
	return tmpfile.Name()
}

func TestGet(t *testing.T) {
	tmpFile := setupTestEnv(t)

	tests := []struct {
		key      string
		expected string
	}{
		{"Var_01", "Value"},
		{"Var_11", "Value# Not a Comment"},
		{"Var_16", "Va# lue"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			val, err := Get(tt.key, tmpFile)
			if err != nil {
				t.Errorf("Get(%s) error: %v", tt.key, err)
			}
			if val != tt.expected {
				t.Errorf("Get(%s) = %q, want %q", tt.key, val, tt.expected)
			}
		})
	}
}

func TestGetLiteral(t *testing.T) {
	tmpFile := setupTestEnv(t)

	tests := []struct {
		key      string
		expected string
	}{
		{"Var_01", "'Value'"},
		{"Var_05", "  'Value'"},
		{"Var_10", "  'Value' # Comment"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			val, err := GetLiteral(tt.key, tmpFile)
			if err != nil {
				t.Errorf("GetLiteral(%s) error: %v", tt.key, err)
			}
			if val != tt.expected {
				t.Errorf("GetLiteral(%s) = %q, want %q", tt.key, val, tt.expected)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	tmpFile := setupTestEnv(t)

	tests := []struct {
		key      string
		expected string
	}{
		{"Var_01", "Var_01='Value'"},
		{"Var_02", "    Var_02='Value'"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			val, err := GetLine(tt.key, tmpFile)
			if err != nil {
				t.Errorf("GetLine(%s) error: %v", tt.key, err)
			}
			if val != tt.expected {
				t.Errorf("GetLine(%s) = %q, want %q", tt.key, val, tt.expected)
			}
		})
	}
}

func TestGetLineNumber(t *testing.T) {
	tmpFile := setupTestEnv(t)

	tests := []struct {
		key      string
		expected int
	}{
		{"Var_01", 1},
		{"Var_05", 5},
		{"Missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			n, err := GetLineNumber(tt.key, tmpFile)
			if err != nil {
				t.Errorf("GetLineNumber(%s) error: %v", tt.key, err)
			}
			if n != tt.expected {
				t.Errorf("GetLineNumber(%s) = %d, want %d", tt.key, n, tt.expected)
			}
		})
	}
}

func TestSet(t *testing.T) {
	tmp, _ := os.CreateTemp("", "set.env")
	defer os.Remove(tmp.Name())
	os.WriteFile(tmp.Name(), []byte("EXISTING='old'\nEXISTING='dup'\nOTHER='x'\n"), 0644)

	if err := Set("EXISTING", "new", tmp.Name()); err != nil {
		t.Fatal(err)
	}
	if err := Set("FRESH", "added", tmp.Name()); err != nil {
		t.Fatal(err)
	}

	content, _ := os.ReadFile(tmp.Name())
	got := string(content)

	if strings.Count(got, "EXISTING=") != 1 {
		t.Errorf("duplicates not collapsed:\n%s", got)
	}
	if !strings.Contains(got, "EXISTING='new'") {
		t.Errorf("EXISTING not updated:\n%s", got)
	}
	if !strings.Contains(got, "FRESH='added'") {
		t.Errorf("FRESH not appended:\n%s", got)
	}

	val, err := Get("FRESH", tmp.Name())
	if err != nil {
		t.Fatal(err)
	}
	if val != "added" {
		t.Errorf("Get(FRESH) = %q, want added", val)
	}
}

func TestSetWritesBackup(t *testing.T) {
	tmp, _ := os.CreateTemp("", "bak.env")
	defer os.Remove(tmp.Name())
	defer os.Remove(tmp.Name() + ".bak")
	os.WriteFile(tmp.Name(), []byte("VAR='original'\n"), 0644)

	if err := Set("VAR", "changed", tmp.Name()); err != nil {
		t.Fatal(err)
	}

	backup, err := os.ReadFile(tmp.Name() + ".bak")
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if !strings.Contains(string(backup), "VAR='original'") {
		t.Errorf("backup does not hold previous contents:\n%s", backup)
	}
}

func TestSetEscapesSingleQuotes(t *testing.T) {
	tmp, _ := os.CreateTemp("", "quote.env")
	defer os.Remove(tmp.Name())

	if err := Set("VAR", "it's", tmp.Name()); err != nil {
		t.Fatal(err)
	}
	content, _ := os.ReadFile(tmp.Name())
	if !strings.Contains(string(content), `VAR='it'"'"'s'`) {
		t.Errorf("single quote not escaped:\n%s", content)
	}
}

func TestSetLiteral(t *testing.T) {
	tmp, _ := os.CreateTemp("", "literal.env")
	defer os.Remove(tmp.Name())

	if err := SetLiteral("VAR", `"raw value"`, tmp.Name()); err != nil {
		t.Fatal(err)
	}
	content, _ := os.ReadFile(tmp.Name())
	if !strings.Contains(string(content), `VAR="raw value"`) {
		t.Errorf("literal not preserved:\n%s", content)
	}
}

func TestKeys(t *testing.T) {
	tmpFile := setupTestEnv(t)

	keys, err := Keys(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if !keys["Var_01"] || !keys["Var_16"] {
		t.Errorf("Keys missing expected entries: %v", keys)
	}
	if keys["Missing"] {
		t.Error("Keys reported a variable that is not in the file")
	}
}

func TestKeysMissingFile(t *testing.T) {
	keys, err := Keys("/no/such/file.env")
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Keys = %v, want empty", keys)
	}
}

func TestLines(t *testing.T) {
	tmp, _ := os.CreateTemp("", "lines.env")
	defer os.Remove(tmp.Name())
	os.WriteFile(tmp.Name(), []byte("# comment\n\nVAR=x\nnoise without equals\nOTHER=y\n"), 0644)

	lines, err := Lines(tmp.Name())
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Errorf("Lines = %v, want 2 entries", lines)
	}
}

func TestMergeNewOnly(t *testing.T) {
	ctx := context.Background()
	sourceContent := `VAR_A='SourceA'
VAR_B='SourceB'
VAR_C='SourceC'
`
	targetContent := `VAR_A='TargetA'
VAR_D='TargetD'
`
	src, _ := os.CreateTemp("", "src.env")
	defer os.Remove(src.Name())
	os.WriteFile(src.Name(), []byte(sourceContent), 0644)

	tgt, _ := os.CreateTemp("", "tgt.env")
	defer os.Remove(tgt.Name())
	os.WriteFile(tgt.Name(), []byte(targetContent), 0644)

	added, err := MergeNewOnly(ctx, tgt.Name(), src.Name())
	if err != nil {
		t.Fatal(err)
	}

	// Should have added VAR_B and VAR_C
	if len(added) != 2 {
		t.Errorf("Expected 2 added lines, got %d", len(added))
	}

	finalContent, _ := os.ReadFile(tgt.Name())
	finalStr := string(finalContent)

	if !strings.Contains(finalStr, "VAR_B='SourceB'") {
		t.Error("Target missing VAR_B")
	}
	if !strings.Contains(finalStr, "VAR_C='SourceC'") {
		t.Error("Target missing VAR_C")
	}
	if strings.Contains(finalStr, "VAR_A='SourceA'") {
		t.Error("Target should NOT have overwritten VAR_A")
	}
}

func TestMergeNewOnlyMissingSource(t *testing.T) {
	ctx := context.Background()
	tgt, _ := os.CreateTemp("", "tgt.env")
	defer os.Remove(tgt.Name())

	added, err := MergeNewOnly(ctx, tgt.Name(), "/no/such/source.env")
	if err != nil {
		t.Fatal(err)
	}
	if added != nil {
		t.Errorf("added = %v, want nil", added)
	}
}

func TestGetLineRegex(t *testing.T) {
	testContent := `VAR_A='Val'
VAR_B='Val'
OTHER='Val'
`
	tmp, _ := os.CreateTemp("", "regex.env")
	defer os.Remove(tmp.Name())
	os.WriteFile(tmp.Name(), []byte(testContent), 0644)

	lines, err := GetLineRegex("VAR_.*", tmp.Name())
	if err != nil {
		t.Fatal(err)
	}

	if len(lines) != 2 {
		t.Errorf("Expected 2 matching lines, got %d", len(lines))
	}
}
