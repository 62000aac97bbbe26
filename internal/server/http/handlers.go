package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"checkers/internal/checkers"
	"checkers/internal/engine"
	"checkers/internal/server/game"
)

const maxJSONBodyBytes int64 = 1 << 16

// Options 控制新对局的规则和 AI 默认参数
type Options struct {
	Rules         checkers.Config
	SearchDepth   int
	SearchTimeout time.Duration
}

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	opts  Options

	// Engine 不是并发安全的，一次只跑一个搜索
	engineMu sync.Mutex
	engine   *engine.Engine
}

func NewHandler(games *game.Manager, opts Options) *Handler {
	if opts.Rules == (checkers.Config{}) {
		opts.Rules = checkers.DefaultConfig()
	}
	return &Handler{
		games:  games,
		opts:   opts,
		engine: engine.NewEngine(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/click":
		h.handleClick(w, r)
	case "/api/state":
		h.handleState(w, r)
	case "/api/ai_move":
		h.handleAiMove(w, r)
	case "/api/delete_game":
		h.handleDeleteGame(w, r)
	case "/api/games":
		writeJSON(w, http.StatusOK, ListGamesResponse{Games: h.games.List()})
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// 空 body 也可以
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeDecodeError(w, err)
		return
	}

	var (
		s   *game.Session
		err error
	)
	if req.Position != "" {
		s, err = h.games.NewGameFromPosition(req.Position, h.opts.Rules)
	} else {
		s, err = h.games.NewGame(h.opts.Rules)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var resp StateResponse
	_ = s.Do(func(g *checkers.Game) error {
		resp = snapshot(s.ID, g)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}

	var resp ClickResponse
	_ = s.Do(func(g *checkers.Game) error {
		before := len(g.History())
		resp.Accepted = g.SelectOrMove(req.Row, req.Col)
		if hist := g.History(); len(hist) > before {
			logMove(s.ID, hist[len(hist)-1], "human")
		}
		resp.StateResponse = snapshot(s.ID, g)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}

	var resp StateResponse
	_ = s.Do(func(g *checkers.Game) error {
		resp = snapshot(s.ID, g)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	var req DeleteGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := h.games.Delete(req.GameID); err != nil {
		if errors.Is(err, game.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, DeleteGameResponse{GameID: req.GameID, Deleted: true})
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}

	cfg := engine.SearchConfig{
		MaxDepth:  req.MaxDepth,
		TimeLimit: time.Duration(req.TimeMs) * time.Millisecond,
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = h.opts.SearchDepth
	}
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = h.opts.SearchTimeout
	}

	var resp AiMoveResponse
	err := s.Do(func(g *checkers.Game) error {
		defer func() { resp.StateResponse = snapshot(s.ID, g) }()
		if g.Winner() != checkers.Ongoing {
			return nil
		}

		h.engineMu.Lock()
		res := h.engine.Search(r.Context(), g.Position(), cfg)
		h.engineMu.Unlock()

		resp.Score = res.Score
		resp.Depth = res.Depth
		resp.Nodes = res.Nodes
		resp.TimeMs = res.TimeUsed.Milliseconds()
		if !res.HasMove {
			return nil
		}
		if !g.Play(res.BestMove) {
			return errors.New("engine produced an illegal move")
		}
		resp.Move = moveToDTO(res.BestMove)
		hist := g.History()
		logMove(s.ID, hist[len(hist)-1], "engine")
		log.Debug().
			Str("game_id", s.ID).
			Int("depth", res.Depth).
			Int64("nodes", res.Nodes).
			Int("score", res.Score).
			Dur("took", res.TimeUsed).
			Msg("search finished")
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("game_id", s.ID).Msg("ai move failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) session(w http.ResponseWriter, id string) (*game.Session, bool) {
	s, err := h.games.Get(id)
	if errors.Is(err, game.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return s, true
}

func logMove(id string, rec checkers.MoveRecord, by string) {
	log.Info().
		Str("game_id", id).
		Str("by", by).
		Stringer("side", rec.Side).
		Stringer("from", rec.From).
		Stringer("to", rec.To).
		Int("captured", len(rec.Captured)).
		Bool("promoted", rec.Promoted).
		Msg("move")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Warn().Err(err).Msg("writeJSON")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "bad json")
}
