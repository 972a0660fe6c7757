package gametree

import (
	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/parser"
)

// frame is a saved position to return to at the end of a variation.
type frame struct {
	node NodeID
	turn chess.Colour

	// open is set when the variation had no move to replace and so
	// branched from node itself.
	open bool
}

// builder holds the state of one parse. It is discarded once the tree is built.
type builder struct {
	tree     *Tree
	opts     engine.Options
	maxNodes int
	current  NodeID
	turn     chess.Colour
	stack    []frame
	full     bool

	// lead is a node whose next child continues the enclosing line and
	// goes ahead of the alternatives already attached to it.
	lead NodeID
}

// Build tokenizes text and builds its position tree. Build never fails:
// notation problems are recorded in Tree.Warnings.
func Build(text string, opts Options) *Tree {
	return BuildTokens(parser.Tokenize(text), opts)
}

// BuildTokens builds a position tree from already tokenized movetext.
func BuildTokens(tokens []parser.Token, opts Options) *Tree {
	b := &builder{
		tree: &Tree{
			Nodes: []Node{{
				ID:     Root,
				Board:  chess.NewInitialBoard(),
				Parent: NoParent,
				Turn:   chess.White,
			}},
			MainLine: []NodeID{Root},
		},
		opts:     opts.resolveOptions(),
		maxNodes: opts.maxNodes(),
		current:  Root,
		turn:     chess.White,
		lead:     NoParent,
	}

	for _, tok := range tokens {
		if tok.Type == parser.MoveToken && len(b.tree.Nodes) >= b.maxNodes {
			b.full = true
			b.warn(&errors.MoveError{
				Err:      errors.Wrapf(errors.ErrTooManyNodes, "limit %d", b.maxNodes),
				Node:     int(b.current),
				MoveText: tok.Text,
				Offset:   tok.Offset,
			})
			break
		}
		b.consume(tok)
	}

	if depth := len(b.stack); depth > 0 && !b.full {
		b.warn(&errors.MoveError{
			Err:    errors.Wrapf(errors.ErrUnclosedVariation, "%d open", depth),
			Node:   -1,
			Offset: -1,
		})
	}

	b.tree.Display = display(b.tree)
	return b.tree
}

func (b *builder) consume(tok parser.Token) {
	switch tok.Type {
	case parser.MoveToken:
		b.addMove(tok)

	case parser.CommentToken:
		b.tree.Nodes[b.current].Comment = tok.Text

	case parser.NAGToken:
		node := &b.tree.Nodes[b.current]
		node.NAG = tok.Text
		node.NAGCode = tok.Code

	case parser.VariationStart:
		b.lead = NoParent
		parent := b.tree.Nodes[b.current].Parent
		b.stack = append(b.stack, frame{node: b.current, turn: b.turn, open: parent == NoParent})
		// The variation replaces the last move, so it starts from its parent.
		if parent != NoParent {
			b.current = parent
		}
		b.turn = b.tree.Nodes[b.current].Turn

	case parser.VariationEnd:
		if len(b.stack) == 0 {
			b.warn(&errors.MoveError{
				Err:    errors.ErrUnmatchedVariationEnd,
				Node:   int(b.current),
				Offset: tok.Offset,
			})
			return
		}
		top := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		b.current, b.turn = top.node, top.turn
		if top.open {
			b.lead = top.node
		}

	case parser.ResultToken:
		if len(b.stack) == 0 {
			b.tree.Result = tok.Text
		}
	}
}

// addMove resolves a move against the current board and appends the new
// position as a child of the current node.
func (b *builder) addMove(tok parser.Token) {
	parent := &b.tree.Nodes[b.current]
	res := engine.ApplySAN(&parent.Board, tok.Text, b.turn, b.opts)

	id := NodeID(len(b.tree.Nodes))
	move := res.Move
	node := Node{
		ID:         id,
		Board:      res.Board,
		Move:       &move,
		SAN:        tok.Text,
		Parent:     b.current,
		Turn:       b.turn.Opposite(),
		Ply:        parent.Ply + 1,
		Unresolved: !res.Resolved,
	}
	if b.lead == b.current {
		parent.Children = append([]NodeID{id}, parent.Children...)
	} else {
		parent.Children = append(parent.Children, id)
	}
	b.lead = NoParent
	// parent is invalid past this point: the append may move the slice.
	b.tree.Nodes = append(b.tree.Nodes, node)

	if res.Err != nil {
		b.warn(&errors.MoveError{
			Err:      res.Err,
			Node:     int(id),
			Ply:      node.Ply,
			MoveText: tok.Text,
			Offset:   tok.Offset,
		})
	}

	if len(b.stack) == 0 {
		b.tree.MainLine = append(b.tree.MainLine, id)
	}
	b.current = id
	b.turn = node.Turn
}

func (b *builder) warn(err *errors.MoveError) {
	b.tree.Warnings = append(b.tree.Warnings, err)
}
