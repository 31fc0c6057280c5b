package cli

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestCompletionCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		shell, want string
	}{
		{"bash", "__start_sunburst"},
		{"zsh", "#compdef sunburst"},
		{"fish", "complete -c sunburst"},
		{"powershell", "Register-ArgumentCompleter"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			root := New(&bytes.Buffer{}, log.WarnLevel).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			root.SetArgs([]string{"completion", tt.shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", tt.shell, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("script does not contain %q", tt.want)
			}
		})
	}

	if err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell accepted")
	}
}

func TestListCompletion(t *testing.T) {
	complete := listCompletion("svg", "png", "pdf")
	tests := []struct {
		in   string
		want []cobra.Completion
	}{
		{"", []cobra.Completion{"svg", "png", "pdf"}},
		{"s", []cobra.Completion{"svg", "png", "pdf"}},
		{"svg,", []cobra.Completion{"svg,png", "svg,pdf"}},
		{"svg,pdf,p", []cobra.Completion{"svg,pdf,png"}},
	}
	for _, tt := range tests {
		got, dir := complete(nil, nil, tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("complete(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if dir&cobra.ShellCompDirectiveNoSpace == 0 {
			t.Errorf("complete(%q) allows a trailing space", tt.in)
		}
	}
}
