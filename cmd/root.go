// Package cmd provides the root command and CLI setup for gorule.
package cmd

import (
	"fmt"
	"os"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/gorule/internal/adapter"
	"github.com/mouse-blink/gorule/internal/config"
	"github.com/mouse-blink/gorule/internal/controller"
	"github.com/mouse-blink/gorule/internal/domain"
	"github.com/mouse-blink/gorule/internal/log"
	m "github.com/mouse-blink/gorule/internal/model"
)

const defaultReportsDir = ".gorule-reports"

var workflow domain.Workflow

// cfg is the configuration resolved for the running command.
var cfg config.Config

// newWorkflow wires the local adapters and the UI selected by format.
var newWorkflow = func(cmd *cobra.Command, format string) domain.Workflow {
	ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout), format)

	return domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewLocalGoFileAdapter(),
		adapter.NewReportStore(),
		ui,
	)
}

var configFlag string
var formatFlag string
var logLevelFlag string
var logFormatFlag string
var reportsOutputDirFlag string

// lintFlags are shared by the root and lint commands.
type lintFlags struct {
	fix      bool
	parallel int
	exclude  []string
	tests    bool
	cache    bool
}

var rootLintFlags lintFlags

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

const rootLongDescription = `gorule is a rule-based linter for Go source files. Rules report problems,
many of them with automatic fixes (--fix) or suggestions.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories

Configuration is read from .gorule.yaml, .gorule.yml or .gorule.toml found
in the working directory or one of its parents.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "gorule [paths...]",
		Short:             "Rule-based Go linter with automatic fixes",
		Long:              rootLongDescription,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, rootLintFlags)
		},
	}

	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to the configuration file (default: discovered)")
	cmd.PersistentFlags().StringVar(&formatFlag, "format", "", "output format: text, table or tui")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "log level: debug, info, warn, error or none")
	cmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "logfmt", "log format: logfmt or json")
	cmd.PersistentFlags().StringVarP(&reportsOutputDirFlag, "reports", "o", defaultReportsDir, "directory lint reports are stored in")
	addLintFlags(cmd, &rootLintFlags)

	return cmd
}

func addLintFlags(cmd *cobra.Command, f *lintFlags) {
	cmd.Flags().BoolVar(&f.fix, "fix", false, "apply automatic fixes and write the files back")
	cmd.Flags().IntVarP(&f.parallel, "parallel", "p", 1, "number of parallel lint workers")
	cmd.Flags().StringArrayVarP(&f.exclude, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().BoolVar(&f.tests, "tests", false, "include _test.go files")
	cmd.Flags().BoolVar(&f.cache, "cache", false, "reuse stored reports of unchanged files")
}

// setup initialises logging, resolves the configuration and builds the
// workflow before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if _, err := log.InitLogger(logFormatFlag, logLevelFlag); err != nil {
		return err
	}

	loaded, path, err := loadConfig()
	if err != nil {
		return err
	}

	if err := loaded.Validate(domain.RuleNames()); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	if formatFlag != "" {
		loaded.Format = formatFlag
	}

	switch loaded.Format {
	case controller.FormatText, controller.FormatTable, controller.FormatTUI:
	default:
		return fmt.Errorf("unknown output format %q", loaded.Format)
	}

	_ = level.Debug(log.Logger).Log("msg", "configuration loaded", "path", path, "format", loaded.Format)

	cfg = loaded
	workflow = newWorkflow(cmd, cfg.Format)

	return nil
}

func loadConfig() (config.Config, string, error) {
	if configFlag != "" {
		loaded, err := config.Load(configFlag)

		return loaded, configFlag, err
	}

	return config.Discover(".")
}

// runLint applies the lint flags set on cmd over the configuration and runs
// the lint workflow.
func runLint(cmd *cobra.Command, args []string, f lintFlags) error {
	lintCfg := cfg

	threads := lintCfg.Parallel
	if cmd.Flags().Changed("parallel") || threads == 0 {
		threads = f.parallel
	}

	includeTests := lintCfg.IncludeTests
	if cmd.Flags().Changed("tests") {
		includeTests = f.tests
	}

	exclude := append(append([]string{}, lintCfg.Exclude...), f.exclude...)

	return workflow.Lint(domain.LintArgs{
		Paths:        parsePaths(args),
		Exclude:      exclude,
		IncludeTests: includeTests,
		Threads:      threads,
		Fix:          f.fix,
		Reports:      m.Path(reportsOutputDirFlag),
		UseCache:     f.cache,
		Config:       lintCfg,
	})
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
