package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/gorule/internal/config"
	"github.com/mouse-blink/gorule/internal/domain"
	domainmocks "github.com/mouse-blink/gorule/internal/domain/mocks"
	m "github.com/mouse-blink/gorule/internal/model"
)

// newTestCmd builds a fresh command tree in an empty working directory and
// routes it to a mock workflow.
func newTestCmd(t *testing.T, args ...string) (*cobra.Command, *domainmocks.MockWorkflow, *string) {
	t.Helper()

	t.Chdir(t.TempDir())

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	format := new(string)

	originalFactory := newWorkflow
	newWorkflow = func(_ *cobra.Command, f string) domain.Workflow {
		*format = f

		return mockWorkflow
	}

	t.Cleanup(func() { newWorkflow = originalFactory })

	cmd := newRootCmd()
	cmd.AddCommand(newLintCmd(), newRulesCmd(), newViewCmd(), newCleanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	return cmd, mockWorkflow, format
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCmd_LintDefaults(t *testing.T) {
	cmd, mockWorkflow, format := newTestCmd(t, "./...")

	mockWorkflow.On("Lint", mock.MatchedBy(func(args domain.LintArgs) bool {
		return len(args.Paths) == 1 &&
			args.Paths[0] == m.Path("./...") &&
			args.Threads == 1 &&
			!args.Fix &&
			!args.UseCache &&
			!args.IncludeTests &&
			args.Reports == m.Path(defaultReportsDir)
	})).Return(nil)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "text", *format)
}

func TestRootCmd_LintFlags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t,
		"--fix", "-p", "4", "-x", "_gen\\.go$", "--tests", "--cache", "--reports", "out", "./cmd", "./pkg")

	mockWorkflow.On("Lint", mock.MatchedBy(func(args domain.LintArgs) bool {
		return len(args.Paths) == 2 &&
			args.Fix &&
			args.Threads == 4 &&
			args.IncludeTests &&
			args.UseCache &&
			args.Reports == m.Path("out") &&
			len(args.Exclude) == 1 && args.Exclude[0] == "_gen\\.go$"
	})).Return(nil)

	require.NoError(t, cmd.Execute())
}

func TestLintCmd_SameAsRoot(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, "lint", "--parallel", "2", "./internal/...")

	mockWorkflow.On("Lint", mock.MatchedBy(func(args domain.LintArgs) bool {
		return args.Threads == 2 && args.Paths[0] == m.Path("./internal/...")
	})).Return(nil)

	require.NoError(t, cmd.Execute())
}

func TestLintCmd_ErrorIsReturned(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, "lint")

	mockWorkflow.On("Lint", mock.Anything).Return(domain.ErrFindings)

	require.ErrorIs(t, cmd.Execute(), domain.ErrFindings)
}

func TestRootCmd_ConfigFileAndOverrides(t *testing.T) {
	path := writeConfig(t, ".gorule.yaml", `
parallel: 3
include_tests: true
exclude: ["^vendor/"]
format: table
rules:
  yoda:
    severity: error
`)

	cmd, mockWorkflow, format := newTestCmd(t, "--config", path, "-x", "mock", "--tests=false")

	mockWorkflow.On("Lint", mock.MatchedBy(func(args domain.LintArgs) bool {
		sev, _ := args.Config.Resolve("yoda", m.SeverityWarn)

		return args.Threads == 3 &&
			!args.IncludeTests &&
			len(args.Exclude) == 2 && args.Exclude[0] == "^vendor/" && args.Exclude[1] == "mock" &&
			sev == m.SeverityError
	})).Return(nil)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "table", *format)
}

func TestRootCmd_DiscoversConfig(t *testing.T) {
	cmd, mockWorkflow, format := newTestCmd(t, "--format", "tui")

	// newTestCmd moved into an empty directory
	require.NoError(t, os.WriteFile(config.FileNames[2], []byte("format = \"table\"\nparallel = 5\n"), 0o600))

	mockWorkflow.On("Lint", mock.MatchedBy(func(args domain.LintArgs) bool {
		return args.Threads == 5
	})).Return(nil)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "tui", *format)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "bad.yaml", `
rules:
  no-such-rule:
    severity: error
  yoda:
    severity: loud
`)

	cmd, _, _ := newTestCmd(t, "--config", path)

	err := cmd.Execute()
	require.ErrorIs(t, err, config.ErrUnknownRule)
	assert.Contains(t, err.Error(), "loud")
}

func TestRootCmd_InvalidFormat(t *testing.T) {
	cmd, _, _ := newTestCmd(t, "--format", "xml")

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	cmd, _, _ := newTestCmd(t, "--log-level", "chatty")

	require.Error(t, cmd.Execute())
}

func TestRulesCmd(t *testing.T) {
	path := writeConfig(t, "rules.toml", "[rules.yoda]\nenabled = false\n")

	cmd, mockWorkflow, _ := newTestCmd(t, "--config", path, "rules")

	mockWorkflow.On("Rules", mock.MatchedBy(func(args domain.RulesArgs) bool {
		sev, _ := args.Config.Resolve("yoda", m.SeverityWarn)

		return sev == m.SeverityOff
	})).Return(nil)

	require.NoError(t, cmd.Execute())
}

func TestRulesCmd_PositionalArgsAreRejected(t *testing.T) {
	cmd, _, _ := newTestCmd(t, "rules", "extra")

	require.Error(t, cmd.Execute())
}

func TestViewCmd_UsesReportsFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want m.Path
	}{
		{"default", []string{"view"}, m.Path(defaultReportsDir)},
		{"flag", []string{"--reports", "./reports-dir", "view"}, m.Path("./reports-dir")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow, _ := newTestCmd(t, tt.args...)

			mockWorkflow.On("View", domain.ViewArgs{Reports: tt.want}).Return(nil)

			require.NoError(t, cmd.Execute())
		})
	}
}

func TestViewCmd_Error(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCmd(t, "view")

	mockWorkflow.On("View", mock.Anything).Return(errors.New("no reports"))

	require.EqualError(t, cmd.Execute(), "no reports")
}

func TestCleanCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.CleanArgs
	}{
		{"all", []string{"clean"}, domain.CleanArgs{Reports: m.Path(defaultReportsDir)}},
		{"files", []string{"-o", "out", "clean", "a.go", "b.go"}, domain.CleanArgs{Reports: "out", Paths: []m.Path{"a.go", "b.go"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow, _ := newTestCmd(t, tt.args...)

			mockWorkflow.On("Clean", tt.want).Return(nil)

			require.NoError(t, cmd.Execute())
		})
	}
}
