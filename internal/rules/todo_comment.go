package rules

import (
	"go/ast"
	"regexp"
	"strings"

	"github.com/mouse-blink/gorule/internal/engine"
	"github.com/mouse-blink/gorule/internal/engine/flat"
	m "github.com/mouse-blink/gorule/internal/model"
)

func init() {
	register(Rule{
		Meta: Meta{
			Name:           "todo-comment",
			Description:    "require an owner on TODO, FIXME and XXX comments",
			Category:       "maintenance",
			HasSuggestions: true,
			Messages: map[string]string{
				"missing":  "{{tag}} comment has no owner",
				"addOwner": "assign the {{tag}} to {{owner}}",
			},
		},
		Create: createTodoComment,
	})
}

var todoTag = regexp.MustCompile(`\b(TODO|FIXME|XXX)\b(\([^)]*\))?`)

func createTodoComment(ctx *Context) {
	owner := ctx.StringOption("owner", "owner")

	ctx.On("Comment", func(ev m.Event) engine.Findings {
		group, ok := ev.CommentGroup()
		if !ok {
			return nil
		}

		return flat.Gen(func(yield func(engine.Findings) bool) {
			for _, c := range group.List {
				if !yield(todoProblems(c, owner)) {
					return
				}
			}
		})
	})
}

func todoProblems(c *ast.Comment, owner string) engine.Findings {
	if strings.HasPrefix(c.Text, "//go:") || strings.HasPrefix(c.Text, "//gorule:") {
		return nil
	}

	return flat.Gen(func(yield func(engine.Findings) bool) {
		for _, loc := range todoTag.FindAllStringSubmatchIndex(c.Text, -1) {
			// loc[4] is the owner group
			if loc[4] >= 0 {
				continue
			}

			tag := c.Text[loc[2]:loc[3]]
			tagEnd := loc[3]

			p := &m.Problem{
				Node:      c,
				MessageID: "missing",
				Data:      map[string]string{"tag": tag},
				Suggestions: []m.Suggestion{{
					MessageID: "addOwner",
					Data:      map[string]string{"owner": owner},
					Fix: func(b *m.Builder, _ *m.Handle) (m.Edits, error) {
						at := b.Range(c).Start + tagEnd

						return b.ReplaceRange(m.Range{Start: at, End: at}, "("+owner+")"), nil
					},
				}},
			}

			if !yield(flat.Of(p)) {
				return
			}
		}
	})
}
