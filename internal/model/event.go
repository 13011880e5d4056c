package model

import "go/ast"

// EventKind tags the payload shape of an Event.
type EventKind uint8

const (
	// NodeEvent carries the visited node only.
	NodeEvent EventKind = iota
	// CommentEvent carries the comment group in Aux and the enclosing file
	// in Node.
	CommentEvent
)

func (k EventKind) String() string {
	switch k {
	case NodeEvent:
		return "node"
	case CommentEvent:
		return "comment"
	}

	return "unknown"
}

// Event is the payload delivered to every listener of a firing selector.
type Event struct {
	Kind EventKind
	Node ast.Node
	Aux  any
	// Exit is set when the event fires on leaving Node.
	Exit bool
}

// NewNodeEvent builds a NodeEvent for n.
func NewNodeEvent(n ast.Node, exit bool) Event {
	return Event{Kind: NodeEvent, Node: n, Exit: exit}
}

// NewCommentEvent builds a CommentEvent for a comment group inside file.
func NewCommentEvent(file *ast.File, group *ast.CommentGroup) Event {
	return Event{Kind: CommentEvent, Node: file, Aux: group}
}

// CommentGroup returns the comment group of a CommentEvent.
func (e Event) CommentGroup() (*ast.CommentGroup, bool) {
	if e.Kind != CommentEvent {
		return nil, false
	}

	g, ok := e.Aux.(*ast.CommentGroup)

	return g, ok && g != nil
}
