// Package library loads the site's games document and builds a tree for
// every game it lists.
package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/gametree"
	"github.com/lgbarn/pgnview-go/internal/worker"
)

// namespace scopes game ids derived from content.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/lgbarn/pgnview-go/games"))

// Entry is one game of the games document.
type Entry struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	White  string `json:"white"`
	Black  string `json:"black"`
	Result string `json:"result"`
	PGN    string `json:"pgn"`
}

// Document is the games document: {"pgn_games": [...]}.
type Document struct {
	Games []Entry `json:"pgn_games"`
}

// Game is an entry with its built tree.
type Game struct {
	Entry
	Tree *gametree.Tree
}

// Summary is the listing form of a game.
type Summary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	White    string `json:"white"`
	Black    string `json:"black"`
	Result   string `json:"result"`
	Moves    int    `json:"moves"`
	Warnings int    `json:"warnings"`
}

// Summary returns the listing form of g.
func (g *Game) Summary() Summary {
	return Summary{
		ID:       g.ID,
		Title:    g.Title,
		White:    g.White,
		Black:    g.Black,
		Result:   g.Result,
		Moves:    g.Tree.MoveCount(),
		Warnings: len(g.Tree.Warnings),
	}
}

// Options configures how a library is built.
type Options struct {
	Parse   gametree.Options
	Workers int
	Logger  *zap.Logger
}

// Library is an immutable, ordered set of built games.
type Library struct {
	games []*Game
	byID  map[string]*Game
}

// GameID derives a stable id from a game's headers and movetext.
func GameID(e Entry) string {
	key := e.Title + "\x00" + e.White + "\x00" + e.Black + "\x00" + e.PGN
	return uuid.NewSHA1(namespace, []byte(key)).String()
}

// Decode reads a games document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode games document: %w", err)
	}
	return &doc, nil
}

// Load reads the games document at path and builds its library.
func Load(ctx context.Context, path string, opts Options) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return New(ctx, doc, opts)
}

// New builds every game of doc concurrently. Notation problems are logged
// and kept on each tree; only cancellation fails the build.
func New(ctx context.Context, doc *Document, opts Options) (*Library, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := worker.Map(ctx, doc.Games, func(e Entry) (*gametree.Tree, error) {
		return gametree.Build(e.PGN, opts.Parse), nil
	}, worker.WithWorkers(opts.Workers), worker.WithBufferSize(len(doc.Games)))

	lib := &Library{
		games: make([]*Game, 0, len(doc.Games)),
		byID:  make(map[string]*Game, len(doc.Games)),
	}
	for i, r := range results {
		if r.Err != nil {
			return nil, fmt.Errorf("build game %d: %w", i, r.Err)
		}
		g := &Game{Entry: doc.Games[i], Tree: r.Value}
		g.ID = lib.uniqueID(g.Entry)
		lib.games = append(lib.games, g)
		lib.byID[g.ID] = g

		if n := len(g.Tree.Warnings); n > 0 {
			logger.Warn("game has notation warnings",
				zap.String("id", g.ID),
				zap.String("title", g.Title),
				zap.Int("count", n),
				zap.Errors("warnings", warningErrors(g.Tree)))
		}
	}

	logger.Info("library built", zap.Int("games", len(lib.games)))
	return lib, nil
}

// uniqueID returns the entry's id, deriving one when absent. Repeated ids
// get a numeric suffix.
func (l *Library) uniqueID(e Entry) string {
	id := e.ID
	if id == "" {
		id = GameID(e)
	}
	if _, taken := l.byID[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if _, taken := l.byID[candidate]; !taken {
			return candidate
		}
	}
}

func warningErrors(t *gametree.Tree) []error {
	errs := make([]error, len(t.Warnings))
	for i, w := range t.Warnings {
		errs[i] = w
	}
	return errs
}

// Len returns the number of games.
func (l *Library) Len() int {
	return len(l.games)
}

// Games returns the games in document order.
func (l *Library) Games() []*Game {
	return l.games
}

// Summaries returns the listing of all games in document order.
func (l *Library) Summaries() []Summary {
	out := make([]Summary, len(l.games))
	for i, g := range l.games {
		out[i] = g.Summary()
	}
	return out
}

// Get returns the game with the given id.
func (l *Library) Get(id string) (*Game, error) {
	g, ok := l.byID[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "id %q", id)
	}
	return g, nil
}
