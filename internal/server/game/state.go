package game

import (
	"sync"
	"sync/atomic"
	"time"

	"checkers/internal/checkers"
)

// Session is one game in progress. All access to Game goes through Do.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu   sync.Mutex
	game *checkers.Game

	// unix nanos; read without mu so pruning never waits on a running search
	updatedAt atomic.Int64
}

// Do runs fn with exclusive access to the game.
func (s *Session) Do(fn func(g *checkers.Game) error) error {
	s.touch(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.touch(time.Now()) }()
	return fn(s.game)
}

func (s *Session) UpdatedAt() time.Time {
	return time.Unix(0, s.updatedAt.Load())
}

func (s *Session) touch(t time.Time) { s.updatedAt.Store(t.UnixNano()) }
