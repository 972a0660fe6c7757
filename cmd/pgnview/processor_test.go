package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/config"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/output"
	"github.com/lgbarn/pgnview-go/internal/testutil"
)

func runProcess(t *testing.T, inputs ...input) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := process(context.Background(), config.NewConfig(), zap.NewNop(), inputs, &buf)
	return buf.String(), err
}

func TestReadInputs(t *testing.T) {
	got, err := readInputs(nil, strings.NewReader("1. e4"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), 1)
	testutil.AssertEqual(t, got[0].text, "1. e4")
	testutil.AssertEqual(t, displayName(got[0]), "stdin")

	dir := t.TempDir()
	path := filepath.Join(dir, "game.pgn")
	if err := os.WriteFile(path, []byte("1. d4"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = readInputs([]string{path}, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got[0].name, path)

	if _, err := readInputs([]string{filepath.Join(dir, "missing.pgn")}, nil); err == nil {
		t.Error("readInputs should fail for a missing file")
	}
}

func TestProcess_PGN(t *testing.T) {
	got, err := runProcess(t, input{text: "[Event \"x\"]\n1.e4 e5 (1...c5 2.Nf3) 2.Nf3 {main} 1-0"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "1. e4 e5 (1... c5 2. Nf3) 2. Nf3 {main} 1-0\n\n")
}

func TestProcess_LineLength(t *testing.T) {
	defer saveRestoreInt(lineLength, 12)()
	cfg := config.NewConfig()
	applyFlags(cfg, given("w"))

	var buf bytes.Buffer
	err := process(context.Background(), cfg, zap.NewNop(), []input{{text: "1. e4 e5 2. Nf3 Nc6"}}, &buf)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, buf.String(), "1. e4 e5 2.\nNf3 Nc6\n\n")
}

func TestProcess_JSON(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()

	got, err := runProcess(t, input{text: "1. e4 e5"})
	testutil.AssertNoError(t, err)

	var tree output.JSONNamedTree
	testutil.AssertNoError(t, json.Unmarshal([]byte(got), &tree))
	testutil.AssertEqual(t, tree.MainLine, []int{0, 1, 2})

	got, err = runProcess(t, input{text: "1. e4"}, input{text: "1. d4"})
	testutil.AssertNoError(t, err)
	var batch output.JSONOutput
	testutil.AssertNoError(t, json.Unmarshal([]byte(got), &batch))
	testutil.AssertEqual(t, len(batch.Games), 2)
	testutil.AssertEqual(t, *batch.Games[1].Nodes[1].SAN, "d4")
}

func TestProcess_Library(t *testing.T) {
	defer saveRestoreBool(libraryInput, true)()
	doc := `{"pgn_games":[{"title":"Kurz","white":"A","black":"B","result":"0-1","pgn":"1. f3 e5 2. g4 Qh4# 0-1"}]}`

	got, err := runProcess(t, input{name: "content.json", text: doc})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "[Event \"Kurz\"]\n\n1. f3 e5 2. g4 Qh4# 0-1\n\n")

	_, err = runProcess(t, input{name: "bad.json", text: "not json"})
	if err == nil {
		t.Fatal("expected a decode error")
	}
	testutil.AssertContains(t, err.Error(), "bad.json")
}

func TestProcess_Node(t *testing.T) {
	defer saveRestoreInt(nodeID, 2)()

	got, err := runProcess(t, input{text: "1. e4 e5 2. Nf3"})
	testutil.AssertNoError(t, err)
	want := "Node 2: 1... e5\n" +
		"rnbqkbnr\n" +
		"pppp.ppp\n" +
		"........\n" +
		"....p...\n" +
		"....P...\n" +
		"........\n" +
		"PPPP.PPP\n" +
		"RNBQKBNR\n" +
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 2\n\n"
	testutil.AssertEqual(t, got, want)
}

func TestProcess_NodeJSON(t *testing.T) {
	defer saveRestoreInt(nodeID, 0)()
	defer saveRestoreBool(jsonOutput, true)()

	got, err := runProcess(t, input{text: "1. e4"})
	testutil.AssertNoError(t, err)

	var node output.JSONNode
	testutil.AssertNoError(t, json.Unmarshal([]byte(got), &node))
	testutil.AssertEqual(t, node.Children, []int{1})
	testutil.AssertTrue(t, node.Parent == nil, "root has no parent")
}

func TestProcess_UnknownNode(t *testing.T) {
	defer saveRestoreInt(nodeID, 9)()

	_, err := runProcess(t, input{text: "1. e4"})
	testutil.AssertErrorIs(t, err, errors.ErrUnknownNode)
}

func TestNodeHeading(t *testing.T) {
	defer saveRestoreInt(nodeID, 3)()
	defer saveRestoreBool(strict, true)()

	cfg := config.NewConfig()
	applyFlags(cfg, given("strict"))
	var buf bytes.Buffer
	err := process(context.Background(), cfg, zap.NewNop(), []input{{text: "1. e4 e5 2. Ke4"}}, &buf)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, buf.String(), "Node 3: 2. Ke4 (unresolved)")
}
