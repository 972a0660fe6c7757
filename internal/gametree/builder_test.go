package gametree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/testutil"
)

// sans returns the SAN text of the given nodes.
func sans(tree *Tree, ids []NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, tree.Nodes[id].SAN)
	}
	return out
}

func TestBuild_MainLine(t *testing.T) {
	tree := Build("1. e4 e5 2. Nf3 {a good developing move} Nc6", Options{})

	testutil.AssertEqual(t, len(tree.Nodes), 5)
	testutil.AssertEqual(t, tree.MainLine, []NodeID{0, 1, 2, 3, 4})
	testutil.AssertEqual(t, sans(tree, tree.MainLine[1:]), []string{"e4", "e5", "Nf3", "Nc6"})
	testutil.AssertEqual(t, tree.Nodes[3].Comment, "a good developing move")
	testutil.AssertEqual(t, len(tree.Warnings), 0)

	for i, node := range tree.Nodes[1:] {
		id := NodeID(i + 1)
		testutil.AssertEqual(t, node.Parent, id-1, "parent of node %d", id)
		testutil.AssertEqual(t, node.Ply, i+1, "ply of node %d", id)
		testutil.AssertTrue(t, node.Move != nil, "node %d has no move", id)
		testutil.AssertTrue(t, !node.Unresolved, "node %d unresolved", id)
	}
}

func TestBuild_Root(t *testing.T) {
	tree := Build("", Options{})

	testutil.AssertEqual(t, len(tree.Nodes), 1)
	root := tree.Nodes[Root]
	testutil.AssertTrue(t, root.IsRoot())
	testutil.AssertTrue(t, root.Move == nil, "root has a move")
	testutil.AssertEqual(t, root.Turn, chess.White)
	testutil.AssertEqual(t, root.Board, chess.NewInitialBoard())
	testutil.AssertEqual(t, tree.MainLine, []NodeID{Root})
	testutil.AssertEqual(t, len(tree.Display), 0)
}

func TestBuild_Variation(t *testing.T) {
	tree := Build("1. e4 (1. d4 d5) e5", Options{})

	testutil.AssertEqual(t, len(tree.Nodes), 5)
	testutil.AssertEqual(t, tree.Nodes[Root].Children, []NodeID{1, 2})
	testutil.AssertEqual(t, sans(tree, tree.Nodes[Root].Children), []string{"e4", "d4"})
	testutil.AssertEqual(t, tree.MainLine, []NodeID{0, 1, 4})
	testutil.AssertEqual(t, tree.Nodes[2].Children, []NodeID{3})
	testutil.AssertEqual(t, tree.Nodes[4].Parent, NodeID(1))

	// Sibling positions must not share board state.
	testutil.AssertPlacement(t, &tree.Nodes[1].Board, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR")
	testutil.AssertPlacement(t, &tree.Nodes[2].Board, "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR")
	testutil.AssertPlacement(t, &tree.Nodes[4].Board, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR")
	testutil.AssertEqual(t, tree.Nodes[3].Turn, chess.White)
	testutil.AssertEqual(t, tree.Nodes[4].Turn, chess.White)
}

func TestBuild_NestedVariations(t *testing.T) {
	tree := Build("1. e4 e5 2. Nf3 (2. Nc3 Nf6 (2... Nc6 3. f4)) 2... Nc6", Options{})

	testutil.AssertEqual(t, len(tree.Nodes), 9)
	testutil.AssertEqual(t, tree.MainLine, []NodeID{0, 1, 2, 3, 8})
	testutil.AssertEqual(t, tree.Nodes[2].Children, []NodeID{3, 4})
	testutil.AssertEqual(t, tree.Nodes[4].Children, []NodeID{5, 6})
	testutil.AssertEqual(t, tree.Nodes[6].Children, []NodeID{7})
	testutil.AssertEqual(t, tree.Nodes[3].Children, []NodeID{8})

	testutil.AssertPlacement(t, &tree.Nodes[7].Board, "r1bqkbnr/pppp1ppp/2n5/4p3/4PP2/2N5/PPPP2PP/R1BQKBNR")
	testutil.AssertPlacement(t, &tree.Nodes[8].Board, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R")
	testutil.AssertEqual(t, len(tree.Warnings), 0)
}

func TestBuild_VariationAtRoot(t *testing.T) {
	tree := Build("(1. d4) (1. c4) 1. e4 e5", Options{})

	// The main line move comes first even though it was read last.
	testutil.AssertEqual(t, tree.Nodes[Root].Children, []NodeID{3, 1, 2})
	testutil.AssertEqual(t, tree.MainLine, []NodeID{0, 3, 4})
	testutil.AssertEqual(t, sans(tree, tree.Nodes[Root].Children), []string{"e4", "d4", "c4"})
	testutil.AssertEqual(t, tree.Nodes[3].Turn, chess.Black)
	testutil.AssertEqual(t, tree.Nodes[3].Children, []NodeID{4})
	testutil.AssertEqual(t, tree.Leaf(Root), NodeID(4))
	testutil.AssertEqual(t, tree.Display[0].Node, NodeID(3))
}

func TestBuild_MalformedBrackets(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		nodes    int
		mainLine []NodeID
		wantErr  error
	}{
		{"unmatched variation end", "1. e4 ) e5", 3, []NodeID{0, 1, 2}, errors.ErrUnmatchedVariationEnd},
		{"unclosed variation", "1. e4 (1. d4", 3, []NodeID{0, 1}, errors.ErrUnclosedVariation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Build(tt.text, Options{})
			testutil.AssertEqual(t, len(tree.Nodes), tt.nodes)
			testutil.AssertEqual(t, tree.MainLine, tt.mainLine)
			if len(tree.Warnings) != 1 {
				t.Fatalf("got %d warnings, want 1: %v", len(tree.Warnings), tree.Warnings)
			}
			testutil.AssertErrorIs(t, tree.Warnings[0], tt.wantErr)
		})
	}
}

func TestBuild_MaxNodes(t *testing.T) {
	tree := Build("1. e4 e5 (1... c5 2. Nf3) 2. Nf3 Nc6 3. Bb5", Options{MaxNodes: 4})

	testutil.AssertEqual(t, len(tree.Nodes), 4)
	testutil.AssertEqual(t, sans(tree, tree.MainLine[1:]), []string{"e4", "e5"})
	if len(tree.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(tree.Warnings), tree.Warnings)
	}
	testutil.AssertErrorIs(t, tree.Warnings[0], errors.ErrTooManyNodes)
	testutil.AssertEqual(t, tree.Warnings[0].MoveText, "Nf3")
}

func TestBuild_DefaultMaxNodes(t *testing.T) {
	text := strings.Repeat("Nf3 Nf6 Ng1 Ng8 ", DefaultMaxNodes/4+10)
	tree := Build(text, Options{})

	testutil.AssertEqual(t, len(tree.Nodes), DefaultMaxNodes)
	testutil.AssertEqual(t, len(tree.Warnings), 1)
	testutil.AssertErrorIs(t, tree.Warnings[0], errors.ErrTooManyNodes)
}

func TestBuild_Annotations(t *testing.T) {
	tree := Build("{intro} 1. e4 $1 $2 {first} {second} e5 $14", Options{})

	testutil.AssertEqual(t, tree.Nodes[Root].Comment, "intro")
	testutil.AssertEqual(t, tree.Nodes[1].Comment, "second")
	testutil.AssertEqual(t, tree.Nodes[1].NAG, "?")
	testutil.AssertEqual(t, tree.Nodes[1].NAGCode, 2)
	testutil.AssertEqual(t, tree.Nodes[2].NAG, "⩲")
}

func TestBuild_Result(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"1. e4 e5 1-0", "1-0"},
		{"1. e4 (1. d4 0-1) *", "*"},
		{"1. e4 e5", ""},
		{"1. e4 1/2", "1/2-1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			testutil.AssertEqual(t, Build(tt.text, Options{}).Result, tt.want)
		})
	}
}

func TestBuild_UnresolvedMove(t *testing.T) {
	const text = "1. e4 e5 2. Qh6 Nc6"

	t.Run("corner fallback", func(t *testing.T) {
		tree := Build(text, Options{})
		testutil.AssertEqual(t, len(tree.Nodes), 5)
		node := tree.Nodes[3]
		testutil.AssertTrue(t, node.Unresolved)
		testutil.AssertTrue(t, node.Board.Get('a', '8').IsEmpty(), "a8 not cleared")
		testutil.AssertEqual(t, node.Board.Get('h', '6'), chess.W(chess.Queen))

		if len(tree.Warnings) != 1 {
			t.Fatalf("got %d warnings, want 1", len(tree.Warnings))
		}
		w := tree.Warnings[0]
		testutil.AssertErrorIs(t, w, errors.ErrUnresolvedMove)
		testutil.AssertEqual(t, w.Node, 3)
		testutil.AssertEqual(t, w.Ply, 3)
		testutil.AssertEqual(t, w.MoveText, "Qh6")
		testutil.AssertEqual(t, w.Offset, 12)

		// Play continues from the fallback board.
		testutil.AssertEqual(t, tree.Nodes[4].Board.Get('c', '6'), chess.B(chess.Knight))
	})

	t.Run("keep board", func(t *testing.T) {
		tree := Build(text, Options{Unresolved: engine.KeepBoard})
		testutil.AssertEqual(t, len(tree.Nodes), 5)
		testutil.AssertEqual(t, tree.Nodes[3].Board, tree.Nodes[2].Board)
		testutil.AssertTrue(t, tree.Nodes[3].Unresolved)
		testutil.AssertEqual(t, tree.Nodes[3].Turn, chess.Black)
	})
}

func TestBuild_Strict(t *testing.T) {
	const text = "1. Nf3 a6 2. Nd4 a5 3. Nc3 h6 4. Nb5"

	lenient := Build(text, Options{})
	testutil.AssertEqual(t, len(lenient.Warnings), 0)
	testutil.AssertEqual(t, lenient.Nodes[7].Move.From, chess.SquareOf('d', '4'))

	strict := Build(text, Options{Disambiguation: engine.Strict})
	if len(strict.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(strict.Warnings))
	}
	testutil.AssertErrorIs(t, strict.Warnings[0], errors.ErrAmbiguousMove)
	testutil.AssertTrue(t, strict.Nodes[7].Unresolved)
	testutil.AssertEqual(t, len(strict.Nodes), len(lenient.Nodes))
}

func TestBuild_MalformedMoveText(t *testing.T) {
	tree := Build("1. Zxq9 e5", Options{})

	// The malformed segment is dropped; e5 still yields a node.
	testutil.AssertEqual(t, len(tree.Nodes), 2)
	testutil.AssertEqual(t, tree.Nodes[1].SAN, "e5")
}

func TestBuild_NodePerMoveToken(t *testing.T) {
	texts := []string{
		"1. e4 e5 2. Nf3 Nc6 3. Bb5 a6",
		"1. e4 (1. d4 (1. c4) d5) e5 ) ) 2. Qh7 Kxe1 O-O-O",
		"1. Zz9 Qq0 e4 { unterminated",
		"((((",
	}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			tree := Build(text, Options{})
			moves := 0
			for _, tok := range tree.Display {
				if tok.Kind == DisplayMove {
					moves++
				}
			}
			testutil.AssertEqual(t, tree.MoveCount(), moves)
			for _, node := range tree.Nodes[1:] {
				testutil.AssertTrue(t, tree.Has(node.Parent), "node %d has dangling parent", node.ID)
			}
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	const text = "1. e4 e5 2. Nf3 (2. Bc4 {italian} Nf6 $2) 2... Nc6 3. Qh7 1-0"

	first := Build(text, Options{})
	second := Build(text, Options{})

	testutil.AssertEqualOpts(t, second, first, cmp.Options{cmpopts.IgnoreFields(Tree{}, "Warnings")})
	testutil.AssertEqual(t, len(second.Warnings), len(first.Warnings))
	for i := range first.Warnings {
		testutil.AssertEqual(t, second.Warnings[i].Error(), first.Warnings[i].Error())
	}
}

func TestTree_NodeLookup(t *testing.T) {
	tree := Build("1. e4 e5", Options{})

	node, err := tree.Node(2)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, node.SAN, "e5")

	_, err = tree.Node(3)
	testutil.AssertErrorIs(t, err, errors.ErrUnknownNode)
	_, err = tree.Node(-1)
	testutil.AssertErrorIs(t, err, errors.ErrUnknownNode)
}

func TestTree_LineAndLeaf(t *testing.T) {
	tree := Build("1. e4 (1. d4 d5 2. c4) e5 2. Nf3", Options{})

	testutil.AssertEqual(t, sans(tree, tree.Line(4)), []string{"", "d4", "d5", "c4"})
	testutil.AssertEqual(t, tree.Leaf(Root), NodeID(6))
	testutil.AssertEqual(t, tree.Leaf(2), NodeID(4))
	testutil.AssertEqual(t, len(tree.Line(99)), 0)
}
