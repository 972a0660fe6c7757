package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/gametree"
)

// JSONTree represents a parsed game in JSON format.
type JSONTree struct {
	Nodes    []JSONNode    `json:"nodes"`
	MainLine []int         `json:"mainLine"`
	Display  []JSONDisplay `json:"display"`
	Result   string        `json:"result,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

// JSONNode represents one position. Parent, Move and SAN are null for the root.
type JSONNode struct {
	ID         int         `json:"id"`
	Parent     *int        `json:"parent"`
	Move       *chess.Move `json:"move"`
	SAN        *string     `json:"san"`
	Comment    string      `json:"comment,omitempty"`
	NAG        string      `json:"nag,omitempty"`
	Turn       string      `json:"turn"` // "w" or "b"
	Children   []int       `json:"children"`
	Ply        int         `json:"ply"`
	Unresolved bool        `json:"unresolved,omitempty"`
	FEN        string      `json:"fen"`
	Board      JSONBoard   `json:"board"`
}

// JSONBoard is the grid of a position, rank 8 first. Empty cells are null.
type JSONBoard [chess.BoardSize][chess.BoardSize]*JSONPiece

// JSONPiece is an occupied board cell.
type JSONPiece struct {
	Type  string `json:"type"`  // K, Q, R, B, N or P
	Color string `json:"color"` // "w" or "b"
}

// JSONDisplay represents one entry of the flattened move list.
type JSONDisplay struct {
	Kind       string `json:"kind"`
	Node       int    `json:"node"`
	Text       string `json:"text,omitempty"`
	Depth      int    `json:"depth"`
	White      bool   `json:"white,omitempty"`
	MoveNumber int    `json:"moveNumber,omitempty"`
	ShowNumber bool   `json:"showNumber,omitempty"`
}

// TreeToJSON converts a tree to its JSON form.
func TreeToJSON(tree *gametree.Tree) *JSONTree {
	jt := &JSONTree{
		Nodes:    make([]JSONNode, 0, len(tree.Nodes)),
		MainLine: idsToInts(tree.MainLine),
		Display:  make([]JSONDisplay, 0, len(tree.Display)),
		Result:   tree.Result,
	}

	for i := range tree.Nodes {
		jt.Nodes = append(jt.Nodes, NodeToJSON(&tree.Nodes[i]))
	}
	for _, tok := range tree.Display {
		jt.Display = append(jt.Display, JSONDisplay{
			Kind:       tok.Kind.String(),
			Node:       int(tok.Node),
			Text:       tok.Text,
			Depth:      tok.Depth,
			White:      tok.White,
			MoveNumber: tok.MoveNumber,
			ShowNumber: tok.ShowNumber,
		})
	}
	for _, w := range tree.Warnings {
		jt.Warnings = append(jt.Warnings, w.Error())
	}
	return jt
}

// NodeToJSON converts a single node to its JSON form.
func NodeToJSON(n *gametree.Node) JSONNode {
	jn := JSONNode{
		ID:         int(n.ID),
		Comment:    n.Comment,
		NAG:        n.NAG,
		Turn:       string(n.Turn.Letter()),
		Children:   idsToInts(n.Children),
		Ply:        n.Ply,
		Unresolved: n.Unresolved,
		FEN:        engine.BoardToFEN(&n.Board, n.Turn, n.Ply/2+1),
		Board:      boardToJSON(&n.Board),
	}
	if !n.IsRoot() {
		parent := int(n.Parent)
		san := n.SAN
		jn.Parent = &parent
		jn.SAN = &san
		jn.Move = n.Move
	}
	return jn
}

func boardToJSON(board *chess.Board) JSONBoard {
	var out JSONBoard
	for r := 0; r < chess.BoardSize; r++ {
		for c := 0; c < chess.BoardSize; c++ {
			p := board[r][c]
			if p.IsEmpty() {
				continue
			}
			out[r][c] = &JSONPiece{
				Type:  string(p.Kind.Letter()),
				Color: string(p.Colour.Letter()),
			}
		}
	}
	return out
}

func idsToInts(ids []gametree.NodeID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

// EncodeJSON writes v as indented JSON.
func EncodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
