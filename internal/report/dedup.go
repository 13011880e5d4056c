package report

import m "github.com/mouse-blink/gorule/internal/model"

type dedupKey struct {
	rule  string
	path  m.Path
	start int
	end   int
	msg   string
}

// DedupSink wraps another Sink and suppresses reports with the same rule,
// path, range and message.
type DedupSink struct {
	next Sink
	seen map[dedupKey]struct{}
}

// NewDedupSink returns a Sink forwarding unique reports to next.
func NewDedupSink(next Sink) *DedupSink {
	return &DedupSink{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

// Report forwards r unless an identical report was already seen.
func (d *DedupSink) Report(r m.Report) {
	if d == nil {
		return
	}

	key := dedupKey{
		rule:  r.Rule,
		path:  r.Path,
		start: r.Range.Start,
		end:   r.Range.End,
		msg:   r.Message,
	}
	if _, ok := d.seen[key]; ok {
		return
	}

	d.seen[key] = struct{}{}

	if d.next != nil {
		d.next.Report(r)
	}
}
