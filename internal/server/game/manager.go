package game

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"checkers/internal/checkers"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Session)}
}

func (m *Manager) NewGame(cfg checkers.Config) (*Session, error) {
	g, err := checkers.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	return m.add(g), nil
}

// NewGameFromPosition starts a session from an encoded position.
func (m *Manager) NewGameFromPosition(encoded string, cfg checkers.Config) (*Session, error) {
	pos, err := checkers.DecodePosition(encoded, cfg)
	if err != nil {
		return nil, err
	}
	return m.add(checkers.NewGameFromPosition(pos)), nil
}

func (m *Manager) add(g *checkers.Game) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		game:      g,
	}
	s.touch(now)

	m.mu.Lock()
	m.games[s.ID] = s
	m.mu.Unlock()

	log.Info().Str("game_id", s.ID).Stringer("to_move", g.Turn()).Msg("game created")
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	log.Info().Str("game_id", id).Msg("game deleted")
	return nil
}

// List returns session IDs, oldest first.
func (m *Manager) List() []string {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.games))
	for _, s := range m.games {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

// Prune drops sessions idle for longer than maxIdle and returns how many were removed.
// Sessions inside Do count as active.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.RLock()
	var stale []*Session
	for _, s := range m.games {
		if s.UpdatedAt().Before(cutoff) {
			stale = append(stale, s)
		}
	}
	m.mu.RUnlock()
	if len(stale) == 0 {
		return 0
	}

	n := 0
	m.mu.Lock()
	for _, s := range stale {
		// 期间可能又被访问过
		if m.games[s.ID] == s && s.UpdatedAt().Before(cutoff) {
			delete(m.games, s.ID)
			n++
		}
	}
	m.mu.Unlock()

	if n > 0 {
		log.Info().Int("pruned", n).Dur("max_idle", maxIdle).Msg("idle games pruned")
	}
	return n
}
