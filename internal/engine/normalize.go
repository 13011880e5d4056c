package engine

import (
	"maps"

	m "github.com/mouse-blink/gorule/internal/model"
)

// NormalizeProblem returns a copy of p with its fix and suggestion fixes
// wrapped into host fixers and suggestion data overlaid on the problem data.
// p itself is left untouched.
func NormalizeProblem(p *m.Problem) *m.Problem {
	out := *p

	if p.Fix != nil {
		out.Resolve = NormalizeFix(p.Fix)
	}

	if p.Suggestions != nil {
		out.Suggestions = make([]m.Suggestion, len(p.Suggestions))
		for i, s := range p.Suggestions {
			out.Suggestions[i] = normalizeSuggestion(s, p.Data)
		}
	}

	return &out
}

func normalizeSuggestion(s m.Suggestion, parent map[string]string) m.Suggestion {
	s.Data = overlay(parent, s.Data)
	if s.Fix != nil {
		s.Resolve = NormalizeFix(s.Fix)
	}

	return s
}

// overlay merges top over base into a fresh map. It returns nil when both
// are empty.
func overlay(base, top map[string]string) map[string]string {
	if len(base) == 0 && len(top) == 0 {
		return nil
	}

	out := make(map[string]string, len(base)+len(top))
	maps.Copy(out, base)
	maps.Copy(out, top)

	return out
}
