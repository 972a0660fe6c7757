package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/config"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/gametree"
	"github.com/lgbarn/pgnview-go/internal/library"
	"github.com/lgbarn/pgnview-go/internal/output"
)

// input is one source of movetext: a file, or stdin when name is empty.
type input struct {
	name string
	text string
}

// readInputs reads every named file, or stdin when there are none.
func readInputs(args []string, stdin io.Reader) ([]input, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{text: string(b)}}, nil
	}

	inputs := make([]input, 0, len(args))
	for _, name := range args {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		inputs = append(inputs, input{name: name, text: string(b)})
	}
	return inputs, nil
}

// process builds a tree per game and writes it in the selected format.
func process(ctx context.Context, cfg *config.Config, logger *zap.Logger, inputs []input, out io.Writer) error {
	games, err := buildGames(ctx, cfg, logger, inputs)
	if err != nil {
		return err
	}

	if *nodeID >= 0 {
		return writeNodes(out, games, gametree.NodeID(*nodeID))
	}

	w := newTreeWriter(out, cfg, len(games))
	for _, g := range games {
		if err := w.WriteTree(g.Title, g.Tree); err != nil {
			return err
		}
	}
	return w.Close()
}

// buildGames turns inputs into library entries and builds them concurrently.
func buildGames(ctx context.Context, cfg *config.Config, logger *zap.Logger, inputs []input) ([]*library.Game, error) {
	opts, err := cfg.ParseOptions()
	if err != nil {
		return nil, err
	}

	doc := &library.Document{}
	for _, in := range inputs {
		if !*libraryInput {
			doc.Games = append(doc.Games, library.Entry{PGN: in.text})
			continue
		}
		d, err := library.Decode(strings.NewReader(in.text))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", displayName(in), err)
		}
		doc.Games = append(doc.Games, d.Games...)
	}

	lib, err := library.New(ctx, doc, library.Options{
		Parse:   opts,
		Workers: cfg.WorkerCount(),
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return lib.Games(), nil
}

func displayName(in input) string {
	if in.name == "" {
		return "stdin"
	}
	return in.name
}

// newTreeWriter selects the output writer. JSON output of several games is
// batched into one document.
func newTreeWriter(out io.Writer, cfg *config.Config, games int) output.TreeWriter {
	if *jsonOutput {
		if games > 1 || *libraryInput {
			return output.NewJSONWriter(out)
		}
		return output.NewJSONWriterSingle(out)
	}
	return output.NewPGNWriter(out, output.PGNOptions{
		LineLength:            cfg.Parse.LineLength,
		StripClockAnnotations: *noClocks,
	})
}

// writeNodes prints the position at id for every game.
func writeNodes(out io.Writer, games []*library.Game, id gametree.NodeID) error {
	for _, g := range games {
		n, err := g.Tree.Node(id)
		if err != nil {
			return fmt.Errorf("game %s: %w", g.ID, err)
		}

		if *jsonOutput {
			if err := output.EncodeJSON(out, output.NodeToJSON(n)); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(out, "%s\n", nodeHeading(n))
		fmt.Fprint(out, n.Board.String())
		fmt.Fprintf(out, "%s\n\n", engine.BoardToFEN(&n.Board, n.Turn, n.Ply/2+1))
	}
	return nil
}

// nodeHeading describes a node as "Node 3: 2. Nf3" or "Node 0: start".
func nodeHeading(n *gametree.Node) string {
	if n.IsRoot() {
		return fmt.Sprintf("Node %d: start", n.ID)
	}
	dots := "."
	if n.Mover() == chess.Black {
		dots = "..."
	}
	heading := fmt.Sprintf("Node %d: %d%s %s", n.ID, n.MoveNumber(), dots, n.SAN)
	if n.Unresolved {
		heading += " (unresolved)"
	}
	return heading
}
