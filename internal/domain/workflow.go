package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/go-kit/log/level"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/gorule/internal/adapter"
	"github.com/mouse-blink/gorule/internal/config"
	"github.com/mouse-blink/gorule/internal/controller"
	"github.com/mouse-blink/gorule/internal/fix"
	"github.com/mouse-blink/gorule/internal/log"
	m "github.com/mouse-blink/gorule/internal/model"
)

// ErrFindings is returned by Lint when findings of error severity remain.
var ErrFindings = errors.New("lint findings with error severity")

// LintArgs configures a lint run.
type LintArgs struct {
	Paths        []m.Path
	Exclude      []string
	IncludeTests bool
	Threads      int
	// Fix applies automatic fixes and writes the files back.
	Fix bool
	// Reports is the directory results are stored in. Empty disables storing.
	Reports m.Path
	// UseCache reuses stored results of unchanged files.
	UseCache bool
	Config   config.Config
}

// ViewArgs configures displaying stored results.
type ViewArgs struct {
	Reports m.Path
}

// CleanArgs selects stored results to remove. No paths removes all of them.
type CleanArgs struct {
	Reports m.Path
	Paths   []m.Path
}

// RulesArgs configures the rule listing.
type RulesArgs struct {
	Config config.Config
}

// Workflow drives the CLI commands.
type Workflow interface {
	Lint(args LintArgs) error
	View(args ViewArgs) error
	Rules(args RulesArgs) error
	Clean(args CleanArgs) error
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	goAdapter   adapter.GoFileAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	goAdapter adapter.GoFileAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		fsAdapter:   fsAdapter,
		goAdapter:   goAdapter,
		reportStore: reportStore,
		ui:          ui,
	}
}

// Lint collects the sources under args.Paths, lints them on a bounded worker
// pool and displays the results sorted by path. Per-file failures are
// combined into the returned error; otherwise ErrFindings signals remaining
// error findings.
func (w *workflow) Lint(args LintArgs) error {
	sources, err := w.collectSources(args)
	if err != nil {
		return err
	}

	settings := Settings(args.Config)
	fingerprint := Fingerprint(settings)
	linter := NewLinter(w.goAdapter, settings)

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	if err := w.ui.Start(controller.WithLintMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	w.ui.DisplayConcurrencyInfo(threads, len(sources))

	cached, pending, err := w.splitCached(args, fingerprint, sources)
	if err != nil {
		return err
	}

	results, lintErr := w.lintAll(linter, pending, threads, args.Fix)
	results = append(results, cached...)

	sort.Slice(results, func(i, j int) bool {
		return resultPath(results[i]) < resultPath(results[j])
	})

	if args.Reports != "" {
		if err := w.reportStore.SaveReports(args.Reports, fingerprint, results); err != nil {
			lintErr = multierr.Append(lintErr, fmt.Errorf("failed to save reports: %w", err))
		}
	}

	_ = level.Info(log.Logger).Log("msg", "lint finished", "files", len(results), "cached", len(cached), "threads", threads)

	if err := w.ui.DisplayResults(results); err != nil {
		return fmt.Errorf("failed to display results: %w", err)
	}

	w.ui.Wait()

	if lintErr != nil {
		return lintErr
	}

	for _, res := range results {
		if res.Count(m.SeverityError) > 0 {
			return ErrFindings
		}
	}

	return nil
}

// View displays the results stored in args.Reports.
func (w *workflow) View(args ViewArgs) error {
	results, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("failed to load reports from %s: %w", args.Reports, err)
	}

	if err := w.ui.Start(controller.WithViewMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	if err := w.ui.DisplayResults(results); err != nil {
		return fmt.Errorf("failed to display results: %w", err)
	}

	w.ui.Wait()

	return nil
}

// Rules displays the catalog resolved against args.Config.
func (w *workflow) Rules(args RulesArgs) error {
	settings := Settings(args.Config)

	infos := make([]m.RuleInfo, 0, len(settings))
	for _, s := range settings {
		infos = append(infos, s.Info())
	}

	if err := w.ui.Start(controller.WithRulesMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	if err := w.ui.DisplayRules(infos); err != nil {
		return fmt.Errorf("failed to display rules: %w", err)
	}

	w.ui.Wait()

	return nil
}

// Clean removes stored results so the next cached run lints them again.
func (w *workflow) Clean(args CleanArgs) error {
	if err := w.reportStore.CleanReports(args.Reports, args.Paths...); err != nil {
		return fmt.Errorf("failed to clean reports in %s: %w", args.Reports, err)
	}

	_ = level.Info(log.Logger).Log("msg", "cleaned reports", "dir", args.Reports, "paths", len(args.Paths))

	return nil
}

func (w *workflow) collectSources(args LintArgs) ([]m.Source, error) {
	excludes, err := compileExcludes(args.Exclude)
	if err != nil {
		return nil, err
	}

	sources, err := w.fsAdapter.Get(args.Paths, args.IncludeTests)
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources: %w", err)
	}

	if len(excludes) == 0 {
		return sources, nil
	}

	kept := make([]m.Source, 0, len(sources))

	for _, src := range sources {
		if !excluded(excludes, resultPath(m.FileResult{Source: src})) {
			kept = append(kept, src)
		}
	}

	return kept, nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		out = append(out, re)
	}

	return out, nil
}

func excluded(excludes []*regexp.Regexp, path m.Path) bool {
	for _, re := range excludes {
		if re.MatchString(string(path)) {
			return true
		}
	}

	return false
}

// splitCached separates sources whose stored results are still valid from
// those that need linting. Fix runs never use the cache.
func (w *workflow) splitCached(args LintArgs, fingerprint string, sources []m.Source) ([]m.FileResult, []m.Source, error) {
	if !args.UseCache || args.Fix || args.Reports == "" {
		return nil, sources, nil
	}

	stale, err := w.reportStore.CheckUpdates(args.Reports, fingerprint, sources)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check stored reports: %w", err)
	}

	if len(stale) == len(sources) {
		return nil, sources, nil
	}

	stored, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load stored reports: %w", err)
	}

	byPath := make(map[m.Path]m.FileResult, len(stored))
	for _, res := range stored {
		byPath[resultPath(res)] = res
	}

	isStale := make(map[m.Path]struct{}, len(stale))
	for _, src := range stale {
		isStale[src.Origin.Path] = struct{}{}
	}

	var (
		cached  []m.FileResult
		pending []m.Source
	)

	for _, src := range sources {
		path := src.Origin.Path
		if _, ok := isStale[path]; ok {
			pending = append(pending, src)

			continue
		}

		res, ok := byPath[path]
		if !ok {
			pending = append(pending, src)

			continue
		}

		res.Fixed = 0
		cached = append(cached, res)
	}

	_ = level.Debug(log.Logger).Log("msg", "reusing stored reports", "cached", len(cached), "pending", len(pending))

	return cached, pending, nil
}

func (w *workflow) lintAll(linter Linter, sources []m.Source, threads int, applyFixes bool) ([]m.FileResult, error) {
	results := make([]m.FileResult, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group

	g.SetLimit(threads)

	for i, src := range sources {
		g.Go(func() error {
			results[i], errs[i] = w.lintFile(linter, src, applyFixes)

			return nil
		})
	}

	_ = g.Wait()

	return results, multierr.Combine(errs...)
}

// lintFile lints src and, when asked, applies fixes pass after pass until no
// fix applies or fix.DefaultMaxPasses is reached.
func (w *workflow) lintFile(linter Linter, src m.Source, applyFixes bool) (m.FileResult, error) {
	res, err := linter.LintSource(src)
	if err != nil {
		_ = level.Warn(log.Logger).Log("msg", "lint failed", "path", resultPath(res), "err", err)

		return res, err
	}

	if !applyFixes {
		return res, nil
	}

	content := src.Content
	fixed := 0

	for range fix.DefaultMaxPasses {
		out, err := fix.Apply(content, res.Reports)
		if errors.Is(err, fix.ErrNoFixes) {
			break
		}

		if err != nil {
			return res, fmt.Errorf("failed to fix %s: %w", resultPath(res), err)
		}

		content = out.Content
		fixed += len(out.Applied)

		next := src
		next.Content = content

		res, err = linter.LintSource(next)
		if err != nil {
			return res, fmt.Errorf("failed to lint %s after fixing: %w", resultPath(res), err)
		}
	}

	if fixed == 0 {
		return res, nil
	}

	path := src.Origin.Path

	if err := w.fsAdapter.WriteFile(path, content); err != nil {
		return res, fmt.Errorf("failed to write fixes to %s: %w", path, err)
	}

	hash, err := w.fsAdapter.HashFile(path)
	if err != nil {
		return res, fmt.Errorf("hash error for %s: %w", path, err)
	}

	res.Source.Origin = &m.File{Path: path, Hash: hash}
	res.Source.Content = content
	res.Fixed = fixed

	_ = level.Debug(log.Logger).Log("msg", "applied fixes", "path", path, "fixed", fixed)

	return res, nil
}

func resultPath(res m.FileResult) m.Path {
	if res.Source.Origin == nil {
		return ""
	}

	return res.Source.Origin.Path
}
