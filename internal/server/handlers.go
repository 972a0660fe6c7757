package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/cache"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/gametree"
	"github.com/lgbarn/pgnview-go/internal/library"
	"github.com/lgbarn/pgnview-go/internal/output"
)

// GameResponse is the body of GET /api/games/{id}.
type GameResponse struct {
	Game library.Summary  `json:"game"`
	Tree *output.JSONTree `json:"tree"`
}

// NodeResponse is the body of GET /api/games/{id}/nodes/{node}.
type NodeResponse struct {
	Node output.JSONNode `json:"node"`
	Path []int           `json:"path"`
}

// ListResponse is the body of GET /api/games.
type ListResponse struct {
	Games []library.Summary `json:"games"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listGames(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, ListResponse{Games: s.lib.Summaries()})
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.lib.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	key := cache.TreeKey(g.ID)
	if body, ok, err := s.cache.Get(r.Context(), key); err != nil {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		w.Header().Set("X-Cache", "hit")
		s.writeRaw(w, http.StatusOK, body)
		return
	}

	body, err := json.Marshal(GameResponse{Game: g.Summary(), Tree: output.TreeToJSON(g.Tree)})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.cache.Set(r.Context(), key, body); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	w.Header().Set("X-Cache", "miss")
	s.writeRaw(w, http.StatusOK, body)
}

func (s *Server) getNode(w http.ResponseWriter, r *http.Request) {
	g, err := s.lib.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	n, err := strconv.Atoi(chi.URLParam(r, "node"))
	if err != nil {
		s.writeError(w, errors.Wrapf(errors.ErrUnknownNode, "node %q", chi.URLParam(r, "node")))
		return
	}
	c, err := g.Tree.Cursor().Jump(gametree.NodeID(n))
	if err != nil {
		s.writeError(w, err)
		return
	}

	path := c.Path()
	resp := NodeResponse{Node: output.NodeToJSON(c.Node()), Path: make([]int, len(path))}
	for i, id := range path {
		resp.Path[i] = int(id)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// parse builds a tree from the request body. Query parameters strict and
// unresolved override the configured resolution options.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxParseBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
			return
		}
		s.writeError(w, errors.Wrapf(errors.ErrInvalidRequest, "read body: %v", err))
		return
	}

	tree := gametree.Build(string(body), opts)
	if len(tree.Warnings) > 0 {
		s.logger.Debug("parsed movetext with warnings", zap.Int("count", len(tree.Warnings)))
	}
	s.writeJSON(w, http.StatusOK, output.TreeToJSON(tree))
}

func (s *Server) parseOptions(r *http.Request) (gametree.Options, error) {
	opts := s.opts
	q := r.URL.Query()

	if v := q.Get("strict"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrapf(errors.ErrInvalidRequest, "strict %q", v)
		}
		opts.Disambiguation = engine.FirstMatch
		if strict {
			opts.Disambiguation = engine.Strict
		}
	}
	if v := q.Get("unresolved"); v != "" {
		policy, err := engine.ParseUnresolvedPolicy(v)
		if err != nil {
			return opts, err
		}
		opts.Unresolved = policy
	}
	return opts, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errors.ErrGameNotFound), errors.Is(err, errors.ErrUnknownNode):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrInvalidConfig), errors.Is(err, errors.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.writeRaw(w, status, body)
}

func (s *Server) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("write response", zap.Error(err))
	}
}
