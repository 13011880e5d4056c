package domain

import (
	"go/ast"
	"go/token"
	"strings"
	"unicode"
)

const ignoreDirective = "gorule:ignore"

// ignoreRule silences every rule or the named ones.
type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(rule string) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[strings.ToLower(rule)]

	return ok
}

func (r ignoreRule) empty() bool {
	return !r.all && len(r.names) == 0
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective accepts
//
//	//gorule:ignore
//	//gorule:ignore rule-a, rule-b
//	//gorule:ignore rule-a -- reason
//
// in line or block comments.
func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s := strings.TrimSpace(commentText)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	}

	rest, ok := strings.CutPrefix(s, ignoreDirective)
	if !ok || (rest != "" && !unicode.IsSpace(rune(rest[0]))) {
		return ignoreRule{}, false
	}

	if before, _, found := strings.Cut(rest, "--"); found {
		rest = before
	}

	rule := ignoreRule{names: make(map[string]struct{})}

	for _, part := range strings.Split(rest, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		return ignoreRule{all: true}, true
	}

	return rule, true
}

type funcIgnore struct {
	start, end token.Pos
	rule       ignoreRule
}

type ignoreIndex struct {
	fset  *token.FileSet
	file  ignoreRule
	funcs []funcIgnore
	line  map[int]ignoreRule
}

func buildIgnoreIndex(file *ast.File, fset *token.FileSet, content []byte) ignoreIndex {
	funcs, funcDocGroups := buildFuncIgnoreRules(file)
	fileRule := buildFileIgnoreRule(file)
	lineRules := buildLineIgnoreRules(file, fset, content, funcDocGroups)

	return ignoreIndex{fset: fset, file: fileRule, funcs: funcs, line: lineRules}
}

// ignores reports whether a finding of rule at pos is silenced by a file,
// function or line directive.
func (idx ignoreIndex) ignores(rule string, pos token.Pos) bool {
	if idx.file.ignores(rule) {
		return true
	}

	for _, f := range idx.funcs {
		if f.start <= pos && pos < f.end && f.rule.ignores(rule) {
			return true
		}
	}

	if len(idx.line) == 0 || !pos.IsValid() {
		return false
	}

	r, ok := idx.line[idx.fset.Position(pos).Line]

	return ok && r.ignores(rule)
}

func (idx ignoreIndex) empty() bool {
	return idx.file.empty() && len(idx.funcs) == 0 && len(idx.line) == 0
}

func buildFuncIgnoreRules(file *ast.File) ([]funcIgnore, map[*ast.CommentGroup]struct{}) {
	var funcs []funcIgnore

	funcDocGroups := map[*ast.CommentGroup]struct{}{}

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}

		funcDocGroups[fd.Doc] = struct{}{}

		var rule ignoreRule

		for _, c := range fd.Doc.List {
			r, ok := parseIgnoreDirective(c.Text)
			if !ok {
				continue
			}

			mergeIgnoreRule(&rule, r)
		}

		if !rule.empty() {
			funcs = append(funcs, funcIgnore{start: fd.Pos(), end: fd.End(), rule: rule})
		}
	}

	return funcs, funcDocGroups
}

func buildFileIgnoreRule(file *ast.File) ignoreRule {
	var rule ignoreRule

	for _, group := range file.Comments {
		if group.End() >= file.Package {
			continue
		}

		for _, c := range group.List {
			r, ok := parseIgnoreDirective(c.Text)
			if !ok {
				continue
			}

			mergeIgnoreRule(&rule, r)
		}
	}

	return rule
}

func buildLineIgnoreRules(
	file *ast.File,
	fset *token.FileSet,
	content []byte,
	funcDocGroups map[*ast.CommentGroup]struct{},
) map[int]ignoreRule {
	lineRules := make(map[int]ignoreRule)
	lineStarts := computeLineStarts(content)

	for _, group := range file.Comments {
		if group.End() < file.Package {
			continue
		}

		if _, ok := funcDocGroups[group]; ok {
			continue
		}

		for _, c := range group.List {
			r, ok := parseIgnoreDirective(c.Text)
			if !ok {
				continue
			}

			pos := fset.PositionFor(c.Slash, true)
			if pos.Line <= 0 {
				continue
			}

			// a comment alone on its line covers the next line
			targetLine := pos.Line
			if isLeadingComment(pos.Line, pos.Offset, lineStarts, content) {
				targetLine = pos.Line + 1
			}

			current := lineRules[targetLine]
			mergeIgnoreRule(&current, r)
			lineRules[targetLine] = current
		}
	}

	return lineRules
}

func computeLineStarts(content []byte) []int {
	starts := []int{0}

	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

func isLeadingComment(line int, slashOffset int, lineStarts []int, content []byte) bool {
	if line <= 0 || line > len(lineStarts) {
		return false
	}

	start := lineStarts[line-1]
	if slashOffset < start || slashOffset > len(content) {
		return false
	}

	for _, b := range content[start:slashOffset] {
		if !unicode.IsSpace(rune(b)) {
			return false
		}
	}

	return true
}
