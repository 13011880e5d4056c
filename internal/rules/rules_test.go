package rules

import (
	"errors"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/gorule/internal/fix"
	m "github.com/mouse-blink/gorule/internal/model"
	"github.com/mouse-blink/gorule/internal/report"
	"github.com/mouse-blink/gorule/internal/traverse"
)

func lintSource(t *testing.T, name, src string, options map[string]any) []m.Report {
	t.Helper()

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "x.go", src, parser.ParseComments)
	require.NoError(t, err)

	rule, ok := Lookup(name)
	require.True(t, ok, "rule %s not registered", name)

	b := m.NewBuilder(fset, []byte(src))
	conv := report.Converter{
		Rule:     name,
		Severity: rule.Meta.Default,
		Path:     "x.go",
		Messages: rule.Meta.Messages,
		Builder:  b,
	}

	var out []m.Report

	traverse.Run(file, Activate(rule, file, b, options), func(p *m.Problem) {
		out = append(out, conv.Convert(p))
	})

	return out
}

func applyFixes(t *testing.T, src string, reports []m.Report) string {
	t.Helper()

	res, err := fix.Apply([]byte(src), reports)
	if errors.Is(err, fix.ErrNoFixes) {
		return src
	}

	require.NoError(t, err)

	return string(res.Content)
}

func applySuggestion(t *testing.T, src string, s m.SuggestionReport) string {
	t.Helper()

	return applyFixes(t, src, []m.Report{{Rule: "suggestion", Fix: s.Edits}})
}

func body(stmts string) string {
	return "package p\n\nfunc f(a, b bool, x, y int, s []int) {\n" + stmts + "\n}\n"
}

func TestCatalog(t *testing.T) {
	all := All()
	require.Len(t, all, 12)

	for i, r := range all {
		if i > 0 {
			assert.Less(t, all[i-1].Meta.Name, r.Meta.Name)
		}

		assert.NotEmpty(t, r.Meta.Description, r.Meta.Name)
		assert.NotEmpty(t, r.Meta.Messages, r.Meta.Name)
		assert.Equal(t, m.SeverityWarn, r.Meta.Default, r.Meta.Name)
		assert.NotNil(t, r.Create, r.Meta.Name)
	}

	_, ok := Lookup("no-such-rule")
	assert.False(t, ok)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r, ok := Lookup("yoda")
	require.True(t, ok)

	assert.Panics(t, func() { register(r) })
}

func TestContext_StringOption(t *testing.T) {
	ctx := NewContext(nil, nil, map[string]any{"owner": "alice", "n": 3, "empty": ""})

	assert.Equal(t, "alice", ctx.StringOption("owner", "x"))
	assert.Equal(t, "x", ctx.StringOption("n", "x"))
	assert.Equal(t, "x", ctx.StringOption("empty", "x"))
	assert.Equal(t, "x", ctx.StringOption("missing", "x"))
}

func TestRules_Fixes(t *testing.T) {
	tests := []struct {
		rule    string
		in      string
		want    string
		message string
	}{
		{"bool-compare", "\t_ = a == true", "\t_ = a", "omit comparison to boolean literal true"},
		{"bool-compare", "\t_ = a != true", "\t_ = !a", "omit comparison to boolean literal true"},
		{"bool-compare", "\t_ = false == (x > y)", "\t_ = !(x > y)", "omit comparison to boolean literal false"},
		{"bool-compare", "\t_ = x > y == false", "\t_ = !(x > y)", "omit comparison to boolean literal false"},
		{"bool-compare", "\t_ = !a == false", "\t_ = a", "omit comparison to boolean literal false"},
		{"bool-literal-logic", "\t_ = a && true", "\t_ = a", "redundant true in && expression"},
		{"bool-literal-logic", "\t_ = false || b", "\t_ = b", "redundant false in || expression"},
		{"double-negation", "\t_ = !!a", "\t_ = a", "double logical negation !! cancels out"},
		{"double-negation", "\t_ = - -x", "\t_ = x", "double negation -- cancels out"},
		{"double-negation", "\t_ = ^(^x)", "\t_ = x", "double complement ^^ cancels out"},
		{"double-negation", "\t_ = !!(a && b)", "\t_ = (a && b)", "double logical negation !! cancels out"},
		{"negated-compare", "\t_ = !(x == y)", "\t_ = x != y", "negated comparison !(x == y), use x != y"},
		{"negated-compare", "\t_ = a == !(x == y)", "\t_ = a == (x != y)", "negated comparison !(x == y), use x != y"},
		{"negated-compare", "\t_ = !(x == y) && b", "\t_ = x != y && b", "negated comparison !(x == y), use x != y"},
		{"negated-compare", "\t_ = !!(x == y)", "\t_ = !(x != y)", "negated comparison !(x == y), use x != y"},
		{"self-assign-op", "\tx = x + y", "\tx += y", "use x += ... instead of repeating x"},
		{"self-assign-op", "\tx = x << 2", "\tx <<= 2", "use x <<= ... instead of repeating x"},
		{"self-assign-op", "\tx = x - 1", "\tx--", "use x--"},
		{"self-assign-op", "\ts[x] = s[x] * 2", "\ts[x] *= 2", "use s[x] *= ... instead of repeating s[x]"},
		{"yoda", "\t_ = 1 == x", "\t_ = x == 1", "literal 1 on the left of =="},
		{"yoda", "\t_ = 1 < x", "\t_ = x > 1", "literal 1 on the left of <"},
		{"literal-case", "\t_ = 0XFF", "\t_ = 0xFF", "number literal 0XFF should be written 0xFF"},
		{"literal-case", "\t_ = 1E3", "\t_ = 1e3", "number literal 1E3 should be written 1e3"},
		{"literal-case", "\t_ = 0X1P4", "\t_ = 0x1p4", "number literal 0X1P4 should be written 0x1p4"},
		{"literal-case", "\t_ = 0B101", "\t_ = 0b101", "number literal 0B101 should be written 0b101"},
		{"unary-plus", "\t_ = +x", "\t_ = x", "unary + has no effect"},
		{"unary-plus", "\t_ = -+-x", "\t_ = - -x", "unary + has no effect"},
		{"unary-plus", "\t_ = x-+-y", "\t_ = x- -y", "unary + has no effect"},
		{"unary-plus", "\t_ = -+x", "\t_ = -x", "unary + has no effect"},
	}

	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.in, func(t *testing.T) {
			src := body(tt.in)
			reports := lintSource(t, tt.rule, src, nil)

			require.Len(t, reports, 1)
			assert.Equal(t, tt.message, reports[0].Message)
			assert.Equal(t, tt.rule, reports[0].Rule)
			assert.True(t, reports[0].Fixable())
			assert.Equal(t, body(tt.want), applyFixes(t, src, reports))
		})
	}
}

func TestRules_NoFinding(t *testing.T) {
	tests := []struct {
		rule string
		in   string
	}{
		{"bool-compare", "\t_ = a == b"},
		{"bool-literal-logic", "\t_ = a && b"},
		{"double-negation", "\t_ = !a"},
		{"double-negation", "\t_ = -^x"},
		{"negated-compare", "\t_ = !a"},
		{"negated-compare", "\t_ = !(a && b)"},
		{"self-assign-op", "\tx = y + x"},
		{"self-assign-op", "\tx, y = x + 1, y"},
		{"yoda", "\t_ = x == 1"},
		{"yoda", "\t_ = 1 == 2"},
		{"literal-case", "\t_ = 0xABCDEF"},
		{"literal-case", "\t_ = \"0XFF\""},
		{"empty-block", "\tif a {\n\t\tprintln()\n\t}"},
		{"empty-block", "\tfor range s {\n\t\t// drain\n\t}"},
		{"index-loop", "\tfor i := 0; i < len(s); i++ {\n\t\ti++\n\t}"},
		{"index-loop", "\tfor i := 1; i < len(s); i++ {\n\t}"},
		{"index-loop", "\tfor i := 0; i < len(s); i += 2 {\n\t}"},
		{"unary-plus", "\t_ = -x"},
	}

	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.in, func(t *testing.T) {
			assert.Empty(t, lintSource(t, tt.rule, body(tt.in), nil))
		})
	}
}

func TestRules_AbortedFixLeavesReport(t *testing.T) {
	tests := []struct {
		rule string
		in   string
	}{
		{"bool-compare", "\t_ = true == false"},
		{"bool-compare", "\t_ = a == /* keep */ true"},
		{"self-assign-op", "\ts[g()] = s[g()] + 1"},
		{"yoda", "\t_ = 1 == /* keep */ x"},
	}

	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.in, func(t *testing.T) {
			src := body(tt.in) + "func g() int { return 0 }\n"
			reports := lintSource(t, tt.rule, src, nil)

			require.Len(t, reports, 1)
			assert.False(t, reports[0].Fixable())
			assert.Empty(t, reports[0].FixErr)
		})
	}
}

func TestBoolLiteralLogic_ConstantSuggestsOnly(t *testing.T) {
	src := body("\t_ = a || true")
	reports := lintSource(t, "bool-literal-logic", src, nil)

	require.Len(t, reports, 1)
	assert.Equal(t, "|| expression is always true", reports[0].Message)
	assert.False(t, reports[0].Fixable())

	require.Len(t, reports[0].Suggestions, 1)
	assert.Equal(t, "replace the expression with true", reports[0].Suggestions[0].Message)
	assert.Equal(t, body("\t_ = true"), applySuggestion(t, src, reports[0].Suggestions[0]))
}

func TestNegatedCompare_OrderingSuggestsOnly(t *testing.T) {
	src := body("\t_ = !(x < y)")
	reports := lintSource(t, "negated-compare", src, nil)

	require.Len(t, reports, 1)
	assert.False(t, reports[0].Fixable())
	require.Len(t, reports[0].Suggestions, 1)
	assert.Equal(t, "rewrite as x >= y", reports[0].Suggestions[0].Message)
	assert.Equal(t, body("\t_ = x >= y"), applySuggestion(t, src, reports[0].Suggestions[0]))
}

func TestEmptyBlock(t *testing.T) {
	t.Run("remove", func(t *testing.T) {
		src := body("\tif a {\n\t}\n\tprintln()")
		reports := lintSource(t, "empty-block", src, nil)

		require.Len(t, reports, 1)
		assert.Equal(t, "empty if body", reports[0].Message)
		require.Len(t, reports[0].Suggestions, 2)
		assert.Equal(t, "remove the if statement", reports[0].Suggestions[0].Message)
		assert.Equal(t, body("\tprintln()"), applySuggestion(t, src, reports[0].Suggestions[0]))
	})

	t.Run("marker", func(t *testing.T) {
		src := body("\tfor range s {}")
		reports := lintSource(t, "empty-block", src, map[string]any{"marker": "FIXME"})

		require.Len(t, reports, 1)
		require.Len(t, reports[0].Suggestions, 2)
		assert.Equal(t, "mark the range body with FIXME", reports[0].Suggestions[1].Message)
		assert.Equal(t,
			body("\tfor range s { /* FIXME: range body left empty */ }"),
			applySuggestion(t, src, reports[0].Suggestions[1]))
	})

	t.Run("else keeps the statement", func(t *testing.T) {
		src := body("\tif a {\n\t} else if b {\n\t} else {\n\t\tprintln()\n\t}")
		reports := lintSource(t, "empty-block", src, nil)

		require.Len(t, reports, 2)

		for _, r := range reports {
			require.Len(t, r.Suggestions, 1)
			assert.Equal(t, "mark the if body with TODO", r.Suggestions[0].Message)
		}
	})

	t.Run("infinite loop keeps the statement", func(t *testing.T) {
		for _, in := range []string{"\tfor {\n\t}", "\tfor i := 0; ; i++ {\n\t}"} {
			reports := lintSource(t, "empty-block", body(in), nil)

			require.Len(t, reports, 1, in)
			require.Len(t, reports[0].Suggestions, 1, in)
			assert.Equal(t, "mark the for body with TODO", reports[0].Suggestions[0].Message)
		}
	})

	t.Run("header with call", func(t *testing.T) {
		src := body("\tfor x < len(s) {\n\t}")
		reports := lintSource(t, "empty-block", src, nil)

		require.Len(t, reports, 1)
		require.Len(t, reports[0].Suggestions, 1)
		assert.Equal(t, "mark the for body with TODO", reports[0].Suggestions[0].Message)
	})
}

func TestIndexLoop(t *testing.T) {
	src := body("\tfor i := 0; i < len(s); i++ {\n\t\tprintln(s[i])\n\t}")
	reports := lintSource(t, "index-loop", src, nil)

	require.Len(t, reports, 1)
	assert.Equal(t, "loop over s by index i can use range", reports[0].Message)
	assert.False(t, reports[0].Fixable())
	require.Len(t, reports[0].Suggestions, 1)
	assert.Equal(t, "rewrite as for i := range s (slices and arrays only)", reports[0].Suggestions[0].Message)
	assert.Equal(t,
		body("\tfor i := range s {\n\t\tprintln(s[i])\n\t}"),
		applySuggestion(t, src, reports[0].Suggestions[0]))
}

func TestIndexLoop_SliceChangesInBody(t *testing.T) {
	src := body("\tfor i := 0; i < len(s); i++ {\n\t\ts = append(s, i)\n\t}")
	reports := lintSource(t, "index-loop", src, nil)

	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Suggestions)
}

func TestIndexLoop_StringOperand(t *testing.T) {
	for _, in := range []string{
		"\tfor i := 0; i < len(\"héllo\"); i++ {\n\t\tprintln(i)\n\t}",
		"\tfor i := 0; i < len(string(s)); i++ {\n\t\tprintln(i)\n\t}",
	} {
		reports := lintSource(t, "index-loop", body(in), nil)

		require.Len(t, reports, 1, in)
		assert.Empty(t, reports[0].Suggestions, in)
	}
}

func TestTodoComment(t *testing.T) {
	src := "package p\n\n// TODO: split\n// TODO(bob): done\n// FIXME and XXX\nfunc f() {}\n"

	t.Run("default owner", func(t *testing.T) {
		reports := lintSource(t, "todo-comment", src, nil)

		require.Len(t, reports, 3)
		assert.Equal(t, "TODO comment has no owner", reports[0].Message)
		assert.Equal(t, "FIXME comment has no owner", reports[1].Message)
		assert.Equal(t, "XXX comment has no owner", reports[2].Message)
		assert.Equal(t, 3, reports[0].Start.Line)
		assert.Equal(t, 5, reports[2].Start.Line)

		require.Len(t, reports[0].Suggestions, 1)
		assert.Equal(t, "assign the TODO to owner", reports[0].Suggestions[0].Message)
	})

	t.Run("configured owner", func(t *testing.T) {
		reports := lintSource(t, "todo-comment", src, map[string]any{"owner": "alice"})

		require.Len(t, reports, 3)
		assert.Equal(t, "assign the FIXME to alice", reports[1].Suggestions[0].Message)

		want := "package p\n\n// TODO(alice): split\n// TODO(bob): done\n// FIXME and XXX\nfunc f() {}\n"
		assert.Equal(t, want, applySuggestion(t, src, reports[0].Suggestions[0]))
	})

	t.Run("directives", func(t *testing.T) {
		assert.Empty(t, lintSource(t, "todo-comment", "package p\n\n//go:generate TODO\nfunc f() {}\n", nil))
	})
}

func TestRedundantReturn(t *testing.T) {
	src := "package p\n\nfunc f() {\n\tprintln()\n\treturn\n}\n\nvar g = func() {\n\treturn\n}\n\nfunc h() int {\n\treturn 1\n}\n"
	reports := lintSource(t, "redundant-return", src, nil)

	require.Len(t, reports, 2)
	assert.Equal(t, "redundant return at the end of f", reports[0].Message)
	assert.Equal(t, "redundant return at the end of function literal", reports[1].Message)

	want := "package p\n\nfunc f() {\n\tprintln()\n}\n\nvar g = func() {\n}\n\nfunc h() int {\n\treturn 1\n}\n"
	assert.Equal(t, want, applyFixes(t, src, reports))
}
