package cmd

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestCommandArgsInlineForm(t *testing.T) {
	tests := []struct {
		name    string
		group   CommandGroup
		want    []string
		wantCmd string
	}{
		{"inline", CommandGroup{Command: "--get=VAR"}, []string{"VAR"}, "--get"},
		{"separate", CommandGroup{Command: "--get", Args: []string{"VAR"}}, []string{"VAR"}, "--get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := commandArgs(&tt.group)
			if len(args) != len(tt.want) || args[0] != tt.want[0] {
				t.Errorf("commandArgs = %v, want %v", args, tt.want)
			}
			if got := baseCommand(tt.group.Command); got != tt.wantCmd {
				t.Errorf("baseCommand = %q, want %q", got, tt.wantCmd)
			}
		})
	}
}

func TestHandleMergeInlineForm(t *testing.T) {
	ctx := context.Background()

	tgt, _ := os.CreateTemp("", "tgt.env")
	defer os.Remove(tgt.Name())
	os.WriteFile(tgt.Name(), []byte("EXISTING='x'\n"), 0644)

	src, _ := os.CreateTemp("", "src.env")
	defer os.Remove(src.Name())
	os.WriteFile(src.Name(), []byte("FRESH='y'\n"), 0644)

	// Parse accepts the inline form with an empty Args slice
	groups, err := Parse([]string{"--merge=" + src.Name()})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups[0].Args) != 0 {
		t.Fatalf("Args = %v, want empty for inline form", groups[0].Args)
	}

	state := CmdState{File: tgt.Name()}
	if err := handleMerge(ctx, &groups[0], &state); err != nil {
		t.Fatal(err)
	}

	content, _ := os.ReadFile(tgt.Name())
	if !strings.Contains(string(content), "FRESH='y'") {
		t.Errorf("merge did not apply:\n%s", content)
	}
}

func TestHandleMergeMissingArgument(t *testing.T) {
	ctx := context.Background()
	group := CommandGroup{Command: "--merge"}
	state := CmdState{File: "/tmp/unused.env"}

	if err := handleMerge(ctx, &group, &state); err == nil {
		t.Fatal("expected error for --merge with no source")
	}
}

func TestHandleExecInlineForm(t *testing.T) {
	ctx := context.Background()

	env, _ := os.CreateTemp("", "exec.env")
	defer os.Remove(env.Name())
	os.WriteFile(env.Name(), []byte("EXEC_TEST_VAR='1'\n"), 0644)

	groups, err := Parse([]string{"--exec=true"})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups[0].Args) != 0 {
		t.Fatalf("Args = %v, want empty for inline form", groups[0].Args)
	}

	state := CmdState{File: env.Name()}
	code, err := handleExec(ctx, &groups[0], &state)
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestHandleExecMissingCommand(t *testing.T) {
	ctx := context.Background()
	group := CommandGroup{Command: "--exec="}
	state := CmdState{File: "/tmp/unused.env"}

	code, err := handleExec(ctx, &group, &state)
	if err == nil {
		t.Fatal("expected error for --exec with no command")
	}
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
