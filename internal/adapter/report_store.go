package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/gorule/internal/model"
)

const (
	indexFileName    = "index.yaml"
	reportFileSuffix = ".yaml"
)

// ReportStore persists lint results between runs.
type ReportStore interface {
	// SaveReports writes one YAML file per result and an index tying them to
	// the source hashes and the rule fingerprint they were produced with.
	SaveReports(dir m.Path, fingerprint string, results []m.FileResult) error
	// LoadReports reads back every result listed in the index.
	LoadReports(dir m.Path) ([]m.FileResult, error)
	// CheckUpdates returns the sources whose stored results are missing or
	// stale.
	CheckUpdates(dir m.Path, fingerprint string, sources []m.Source) ([]m.Source, error)
	// CleanReports removes the stored results of paths, or all of them when
	// paths is empty.
	CleanReports(dir m.Path, paths ...m.Path) error
}

// LocalReportStore stores reports as YAML files in a directory.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type indexEntry struct {
	Path   m.Path `yaml:"path"`
	Hash   string `yaml:"hash"`
	Report string `yaml:"report"`
}

type indexYAML struct {
	Fingerprint string       `yaml:"fingerprint"`
	Files       []indexEntry `yaml:"files"`
}

// SaveReports writes results to dir and regenerates the index.
func (rs *LocalReportStore) SaveReports(dir m.Path, fingerprint string, results []m.FileResult) error {
	if dir == "" {
		return errors.New("reports directory is empty")
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	index := indexYAML{Fingerprint: fingerprint}

	for _, res := range results {
		if res.Source.Origin == nil {
			continue
		}

		name := rs.computeReportHash(res.Source.Origin.Path) + reportFileSuffix

		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshal report for %s: %w", res.Source.Origin.Path, err)
		}

		if err := os.WriteFile(filepath.Join(string(dir), name), data, 0o600); err != nil {
			return fmt.Errorf("write report for %s: %w", res.Source.Origin.Path, err)
		}

		index.Files = append(index.Files, indexEntry{
			Path:   res.Source.Origin.Path,
			Hash:   res.Source.Origin.Hash,
			Report: name,
		})
	}

	sort.Slice(index.Files, func(i, j int) bool {
		return index.Files[i].Path < index.Files[j].Path
	})

	if err := rs.writeIndex(dir, index); err != nil {
		return err
	}

	return rs.removeOrphans(dir, index)
}

// LoadReports reads every result listed in the index of dir.
func (rs *LocalReportStore) LoadReports(dir m.Path) ([]m.FileResult, error) {
	index, err := rs.readIndex(dir)
	if err != nil {
		return nil, err
	}

	results := make([]m.FileResult, 0, len(index.Files))

	for _, entry := range index.Files {
		data, err := os.ReadFile(filepath.Join(string(dir), entry.Report))
		if err != nil {
			return nil, fmt.Errorf("read report for %s: %w", entry.Path, err)
		}

		var res m.FileResult
		if err := yaml.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("decode report for %s: %w", entry.Path, err)
		}

		results = append(results, res)
	}

	return results, nil
}

// CheckUpdates compares sources with the index. Without an index, or when
// the fingerprint changed, every source is returned.
func (rs *LocalReportStore) CheckUpdates(dir m.Path, fingerprint string, sources []m.Source) ([]m.Source, error) {
	if dir == "" {
		return nil, errors.New("reports directory is empty")
	}

	index, err := rs.readIndex(dir)
	if errors.Is(err, os.ErrNotExist) {
		return sources, nil
	}

	if err != nil {
		return nil, err
	}

	if index.Fingerprint != fingerprint {
		return sources, nil
	}

	stored := make(map[m.Path]string, len(index.Files))
	for _, entry := range index.Files {
		stored[entry.Path] = entry.Hash
	}

	var changed []m.Source

	for _, src := range sources {
		if src.Origin == nil {
			continue
		}

		if hash, ok := stored[src.Origin.Path]; !ok || hash != src.Origin.Hash {
			changed = append(changed, src)
		}
	}

	return changed, nil
}

// CleanReports deletes the stored results of paths and rewrites the index.
func (rs *LocalReportStore) CleanReports(dir m.Path, paths ...m.Path) error {
	if dir == "" {
		return errors.New("reports directory is empty")
	}

	index, err := rs.readIndex(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	if len(paths) == 0 {
		index.Files = nil

		if err := rs.removeOrphans(dir, index); err != nil {
			return err
		}

		return removeIfExists(filepath.Join(string(dir), indexFileName))
	}

	drop := make(map[m.Path]struct{}, len(paths))
	for _, p := range paths {
		drop[p] = struct{}{}
	}

	kept := index.Files[:0]

	for _, entry := range index.Files {
		if _, ok := drop[entry.Path]; !ok {
			kept = append(kept, entry)
		}
	}

	index.Files = kept

	if err := rs.writeIndex(dir, index); err != nil {
		return err
	}

	return rs.removeOrphans(dir, index)
}

// computeReportHash names the report file of path.
func (rs *LocalReportStore) computeReportHash(path m.Path) string {
	sum := sha256.Sum256([]byte(path))

	return hex.EncodeToString(sum[:8])
}

func (rs *LocalReportStore) readIndex(dir m.Path) (indexYAML, error) {
	data, err := os.ReadFile(filepath.Join(string(dir), indexFileName))
	if err != nil {
		return indexYAML{}, fmt.Errorf("read reports index: %w", err)
	}

	var index indexYAML
	if err := yaml.Unmarshal(data, &index); err != nil {
		return indexYAML{}, fmt.Errorf("decode reports index: %w", err)
	}

	return index, nil
}

func (rs *LocalReportStore) writeIndex(dir m.Path, index indexYAML) error {
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("marshal reports index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(string(dir), indexFileName), data, 0o600); err != nil {
		return fmt.Errorf("write reports index: %w", err)
	}

	return nil
}

// removeOrphans deletes report files the index no longer refers to.
func (rs *LocalReportStore) removeOrphans(dir m.Path, index indexYAML) error {
	keep := make(map[string]struct{}, len(index.Files))
	for _, entry := range index.Files {
		keep[entry.Report] = struct{}{}
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return fmt.Errorf("list reports directory: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == indexFileName || !strings.HasSuffix(name, reportFileSuffix) {
			continue
		}

		if _, ok := keep[name]; ok {
			continue
		}

		if err := removeIfExists(filepath.Join(string(dir), name)); err != nil {
			return err
		}
	}

	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	return nil
}
