package fix

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/gorule/internal/model"
)

func edit(start, end int, text string) m.Edit {
	return m.Edit{Range: m.Range{Start: start, End: end}, Text: text}
}

func TestApply_NoFixes(t *testing.T) {
	res, err := Apply([]byte("abc"), []m.Report{{Rule: "r"}})
	require.True(t, errors.Is(err, ErrNoFixes))
	require.Equal(t, "abc", string(res.Content))
}

func TestApply_BackToFront(t *testing.T) {
	content := []byte("a == true && b == false")
	reports := []m.Report{
		{Rule: "second", Fix: []m.Edit{edit(13, 23, "!b")}},
		{Rule: "first", Fix: []m.Edit{edit(0, 9, "a")}},
	}

	res, err := Apply(content, reports)
	require.NoError(t, err)
	assert.Equal(t, "a && !b", string(res.Content))
	require.Len(t, res.Applied, 2)
	assert.Equal(t, "first", res.Applied[0].Rule)
	assert.Equal(t, "a == true && b == false", string(content), "input must not be modified")
}

func TestApply_SkipsConflicts(t *testing.T) {
	content := []byte("!!!x")
	reports := []m.Report{
		{Rule: "outer", Fix: []m.Edit{edit(0, 3, "!")}},
		{Rule: "inner", Fix: []m.Edit{edit(1, 4, "x")}},
	}

	res, err := Apply(content, reports)
	require.NoError(t, err)
	assert.Equal(t, "!x", string(res.Content))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "inner", res.Skipped[0].Rule)
}

func TestApply_InsertionsAtSameOffsetKeepOrder(t *testing.T) {
	content := []byte("x")
	reports := []m.Report{
		{Rule: "a", Fix: []m.Edit{edit(0, 0, "(")}},
		{Rule: "b", Fix: []m.Edit{edit(0, 0, "[")}},
		{Rule: "c", Fix: []m.Edit{edit(1, 1, ")")}},
	}

	res, err := Apply(content, reports)
	require.NoError(t, err)
	assert.Equal(t, "([x)", string(res.Content))
}

func TestApply_InvalidRanges(t *testing.T) {
	content := []byte("abc")
	reports := []m.Report{
		{Rule: "oob", Fix: []m.Edit{edit(2, 10, "")}},
		{Rule: "self", Fix: []m.Edit{edit(0, 2, "x"), edit(1, 3, "y")}},
	}

	res, err := Apply(content, reports)
	require.True(t, errors.Is(err, ErrNoFixes))
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, "fix contains overlapping edits", res.Skipped[0].Reason)
	assert.Equal(t, "edit range out of bounds", res.Skipped[1].Reason)
}

func TestRangesConflict(t *testing.T) {
	tests := []struct {
		name string
		a, b m.Range
		want bool
	}{
		{"two insertions", m.Range{Start: 1, End: 1}, m.Range{Start: 1, End: 1}, false},
		{"insertion inside", m.Range{Start: 2, End: 2}, m.Range{Start: 1, End: 3}, true},
		{"insertion at start", m.Range{Start: 1, End: 1}, m.Range{Start: 1, End: 3}, false},
		{"insertion at end", m.Range{Start: 1, End: 3}, m.Range{Start: 3, End: 3}, false},
		{"adjacent", m.Range{Start: 0, End: 2}, m.Range{Start: 2, End: 4}, false},
		{"overlap", m.Range{Start: 0, End: 3}, m.Range{Start: 2, End: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rangesConflict(tt.a, tt.b))
			assert.Equal(t, tt.want, rangesConflict(tt.b, tt.a))
		})
	}
}
