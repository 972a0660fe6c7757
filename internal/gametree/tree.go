// Package gametree builds a tree of board positions from PGN movetext.
package gametree

import (
	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

// NodeID addresses a node within one tree. Ids are assigned in creation
// order and the root is always 0.
type NodeID int

// Root is the id of the starting position.
const Root NodeID = 0

// NoParent is the parent id of the root.
const NoParent NodeID = -1

// Node is one position in the game tree.
type Node struct {
	ID    NodeID
	Board chess.Board

	// Move is nil for the root.
	Move *chess.Move
	SAN  string

	Comment string
	NAG     string // display glyph
	NAGCode int    // 0 when no NAG is attached

	Parent NodeID
	Turn   chess.Colour // side to move from this position

	// Children[0] is the main continuation; later entries are variations.
	Children []NodeID

	Ply        int
	Unresolved bool
}

// IsRoot reports whether n is the starting position.
func (n *Node) IsRoot() bool {
	return n.Parent == NoParent
}

// Mover returns the colour that played the move leading to n.
func (n *Node) Mover() chess.Colour {
	return n.Turn.Opposite()
}

// MoveNumber returns the full-move number of the move leading to n.
func (n *Node) MoveNumber() int {
	return (n.Ply + 1) / 2
}

// Tree is the result of parsing one game.
type Tree struct {
	Nodes    []Node
	MainLine []NodeID // root first
	Display  []DisplayToken
	Result   string

	// Warnings lists notation problems that were tolerated while building.
	Warnings []*errors.MoveError
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) (*Node, error) {
	if !t.Has(id) {
		return nil, errors.Wrapf(errors.ErrUnknownNode, "node %d", id)
	}
	return &t.Nodes[id], nil
}

// Has reports whether id addresses a node of t.
func (t *Tree) Has(id NodeID) bool {
	return id >= 0 && int(id) < len(t.Nodes)
}

// MoveCount returns the number of move nodes, i.e. every node but the root.
func (t *Tree) MoveCount() int {
	return len(t.Nodes) - 1
}

// Line returns the node ids from the root to id inclusive.
func (t *Tree) Line(id NodeID) []NodeID {
	if !t.Has(id) {
		return nil
	}
	var line []NodeID
	for cur := id; cur != NoParent; cur = t.Nodes[cur].Parent {
		line = append(line, cur)
	}
	for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
		line[i], line[j] = line[j], line[i]
	}
	return line
}

// Leaf follows main continuations from id until a node without children.
func (t *Tree) Leaf(id NodeID) NodeID {
	if !t.Has(id) {
		return id
	}
	for len(t.Nodes[id].Children) > 0 {
		id = t.Nodes[id].Children[0]
	}
	return id
}

// DefaultMaxNodes bounds the size of a tree when Options.MaxNodes is zero.
// It is far above any real game, variations included.
const DefaultMaxNodes = 10000

// Options controls how move text is resolved against the board.
// The zero value gives the lenient behaviour.
type Options struct {
	Disambiguation engine.Disambiguation
	Unresolved     engine.UnresolvedPolicy

	// MaxNodes caps the number of nodes, root included. Movetext past the
	// cap is dropped with an ErrTooManyNodes warning. Zero means
	// DefaultMaxNodes.
	MaxNodes int
}

func (o Options) maxNodes() int {
	if o.MaxNodes > 0 {
		return o.MaxNodes
	}
	return DefaultMaxNodes
}

func (o Options) resolveOptions() engine.Options {
	return engine.Options{
		Disambiguation: o.Disambiguation,
		Unresolved:     o.Unresolved,
	}
}
