package gametree

import "github.com/lgbarn/pgnview-go/internal/chess"

// DisplayKind identifies the type of a display token.
type DisplayKind int

const (
	DisplayMove DisplayKind = iota
	DisplayNAG
	DisplayComment
	DisplayVariationStart
	DisplayVariationEnd
)

var displayKindNames = [...]string{
	DisplayMove:           "move",
	DisplayNAG:            "nag",
	DisplayComment:        "comment",
	DisplayVariationStart: "variation-start",
	DisplayVariationEnd:   "variation-end",
}

func (k DisplayKind) String() string {
	if k >= 0 && int(k) < len(displayKindNames) {
		return displayKindNames[k]
	}
	return "unknown"
}

// DisplayToken is one entry of the flattened move list.
type DisplayToken struct {
	Kind  DisplayKind
	Node  NodeID // owning node for moves, NAGs and comments
	Text  string
	Depth int

	// Set on move tokens only.
	White      bool
	MoveNumber int
	ShowNumber bool // a number must be printed before this move
	NAGCode    int  // set on NAG tokens
}

// walkStep is a pending unit of work for the display walk.
type walkStep struct {
	emit  bool // emit the node's own move, or walk its children
	open  bool // variation start marker
	close bool // variation end marker
	node  NodeID
	depth int
}

// display flattens the tree into PGN order: each main move is followed by
// its bracketed alternatives before the main line continues. The walk uses
// an explicit stack so deep or long games never grow the call stack.
func display(t *Tree) []DisplayToken {
	var out []DisplayToken

	root := &t.Nodes[Root]
	out = appendAnnotations(out, root, 0)

	stack := []walkStep{{node: Root}}
	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case step.open:
			out = append(out, DisplayToken{Kind: DisplayVariationStart, Node: step.node, Depth: step.depth})
		case step.close:
			out = append(out, DisplayToken{Kind: DisplayVariationEnd, Node: step.node, Depth: step.depth})
		case step.emit:
			out = appendMove(out, &t.Nodes[step.node], step.depth)
		default:
			stack = pushChildren(stack, &t.Nodes[step.node], step.depth)
		}
	}
	return out
}

// pushChildren schedules, in reverse, the main child's move, each
// alternative as a bracketed sub-walk, and finally the main child's walk.
func pushChildren(stack []walkStep, n *Node, depth int) []walkStep {
	if len(n.Children) == 0 {
		return stack
	}
	main := n.Children[0]
	stack = append(stack, walkStep{node: main, depth: depth})

	for i := len(n.Children) - 1; i >= 1; i-- {
		alt := n.Children[i]
		inner := depth + 1
		stack = append(stack,
			walkStep{close: true, node: alt, depth: inner},
			walkStep{node: alt, depth: inner},
			walkStep{emit: true, node: alt, depth: inner},
			walkStep{open: true, node: alt, depth: inner},
		)
	}

	return append(stack, walkStep{emit: true, node: main, depth: depth})
}

// appendMove emits a move with its NAG and comment.
func appendMove(out []DisplayToken, n *Node, depth int) []DisplayToken {
	white := n.Mover() == chess.White
	show := white
	if !show {
		// A black move needs "N..." unless it directly follows its own white move.
		show = len(out) == 0 || !continuesMove(out[len(out)-1])
	}
	out = append(out, DisplayToken{
		Kind:       DisplayMove,
		Node:       n.ID,
		Text:       n.SAN,
		Depth:      depth,
		White:      white,
		MoveNumber: n.MoveNumber(),
		ShowNumber: show,
	})
	return appendAnnotations(out, n, depth)
}

func appendAnnotations(out []DisplayToken, n *Node, depth int) []DisplayToken {
	if n.NAG != "" || n.NAGCode != 0 {
		out = append(out, DisplayToken{Kind: DisplayNAG, Node: n.ID, Text: n.NAG, Depth: depth, NAGCode: n.NAGCode})
	}
	if n.Comment != "" {
		out = append(out, DisplayToken{Kind: DisplayComment, Node: n.ID, Text: n.Comment, Depth: depth})
	}
	return out
}

func continuesMove(prev DisplayToken) bool {
	return prev.Kind == DisplayMove || prev.Kind == DisplayNAG
}
