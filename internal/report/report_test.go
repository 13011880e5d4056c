package report

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/gorule/internal/engine"
	m "github.com/mouse-blink/gorule/internal/model"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		data map[string]string
		want string
	}{
		{"no data", "use {{x}}", nil, "use {{x}}"},
		{"simple", "use {{x}}", map[string]string{"x": "y"}, "use y"},
		{"spaces", "use {{ x }} not {{z}}", map[string]string{"x": "y", "z": "w"}, "use y not w"},
		{"unknown", "use {{ q }}", map[string]string{"x": "y"}, "use {{ q }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(tt.tmpl, tt.data))
		})
	}
}

func TestConverter_Convert(t *testing.T) {
	const src = "a == true"

	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "x.go", src, 0)
	require.NoError(t, err)

	bin := expr.(*ast.BinaryExpr)
	conv := Converter{
		Rule:     "bool-compare",
		Severity: m.SeverityWarn,
		Path:     "x.go",
		Messages: map[string]string{
			"compare": "omit comparison to {{value}}",
			"use":     "replace with {{replacement}}",
		},
		Builder: m.NewBuilder(fset, []byte(src)),
	}

	p := engine.NormalizeProblem(&m.Problem{
		Node:      bin,
		MessageID: "compare",
		Data:      map[string]string{"value": "true", "replacement": "a"},
		Fix: func(b *m.Builder, _ *m.Handle) (m.Edits, error) {
			return b.Replace(bin, "a"), nil
		},
		Suggestions: []m.Suggestion{
			{
				MessageID: "use",
				Data:      map[string]string{"replacement": "!!a"},
				Fix: func(b *m.Builder, _ *m.Handle) (m.Edits, error) {
					return b.Replace(bin, "!!a"), nil
				},
			},
			{
				Desc: "declines",
				Fix: func(_ *m.Builder, h *m.Handle) (m.Edits, error) {
					return nil, h.Abort()
				},
			},
			{
				Desc: "broken",
				Fix: func(*m.Builder, *m.Handle) (m.Edits, error) {
					return nil, errors.New("nope")
				},
			},
		},
	})

	r := conv.Convert(p)

	assert.Equal(t, "omit comparison to true", r.Message)
	assert.Equal(t, m.Range{Start: 0, End: 9}, r.Range)
	assert.Equal(t, m.Position{Line: 1, Column: 1}, r.Start)
	assert.Equal(t, []m.Edit{{Range: m.Range{Start: 0, End: 9}, Text: "a"}}, r.Fix)
	require.Len(t, r.Suggestions, 2)
	assert.Equal(t, "replace with !!a", r.Suggestions[0].Message)
	assert.Equal(t, "broken", r.Suggestions[1].Message)
	assert.Equal(t, "nope", r.Suggestions[1].Err)
	assert.True(t, r.Fixable())
}

func TestConverter_FixErrorRecorded(t *testing.T) {
	fset := token.NewFileSet()
	conv := Converter{Rule: "r", Builder: m.NewBuilder(fset, nil)}

	p := engine.NormalizeProblem(&m.Problem{
		Message: "plain",
		Fix: func(*m.Builder, *m.Handle) (m.Edits, error) {
			return nil, errors.New("bad fix")
		},
	})

	r := conv.Convert(p)
	assert.Equal(t, "plain", r.Message)
	assert.Equal(t, "bad fix", r.FixErr)
	assert.False(t, r.Fixable())
}

func TestDedupSink(t *testing.T) {
	var c Collector

	d := NewDedupSink(&c)
	r := m.Report{Rule: "a", Path: "x.go", Range: m.Range{Start: 1, End: 2}, Message: "m"}

	d.Report(r)
	d.Report(r)

	r.Message = "other"
	d.Report(r)

	require.Len(t, c.Reports, 2)

	var nilSink *DedupSink
	nilSink.Report(r)
}

func TestSinkFunc(t *testing.T) {
	var got []string

	SinkFunc(func(r m.Report) { got = append(got, r.Rule) }).Report(m.Report{Rule: "x"})
	require.Equal(t, []string{"x"}, got)
}
