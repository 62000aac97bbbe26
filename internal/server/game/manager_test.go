package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"checkers/internal/checkers"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	s, err := m.NewGame(checkers.DefaultConfig())
	require.NoError(t, err)
	_, err = uuid.Parse(s.ID)
	require.NoError(t, err)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)
	require.Equal(t, []string{s.ID}, m.List())

	require.NoError(t, m.Delete(s.ID))
	_, err = m.Get(s.ID)
	require.ErrorIs(t, err, ErrGameNotFound)
	require.ErrorIs(t, m.Delete(s.ID), ErrGameNotFound)
}

func TestManagerRejectsBadConfig(t *testing.T) {
	cfg := checkers.DefaultConfig()
	cfg.Size = 10
	_, err := NewManager().NewGame(cfg)
	require.ErrorIs(t, err, checkers.ErrInvalidConfig)

	_, err = NewManager().NewGameFromPosition("nonsense", checkers.DefaultConfig())
	require.ErrorIs(t, err, checkers.ErrInvalidPosition)
}

func TestSessionDoSerializesClicks(t *testing.T) {
	m := NewManager()
	s, err := m.NewGameFromPosition("8/8/1l6/2d5/8/8/8/8 l", checkers.DefaultConfig())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(g *checkers.Game) error {
				g.SelectOrMove(2, 1)
				g.SelectOrMove(4, 3)
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, s.Do(func(g *checkers.Game) error {
		require.Equal(t, 1, g.Score(checkers.Light))
		require.Len(t, g.History(), 1)
		return nil
	}))

	boom := errors.New("boom")
	require.ErrorIs(t, s.Do(func(*checkers.Game) error { return boom }), boom)
}

func TestPrune(t *testing.T) {
	m := NewManager()
	old, err := m.NewGame(checkers.DefaultConfig())
	require.NoError(t, err)
	old.touch(time.Now().Add(-2 * time.Hour))
	fresh, err := m.NewGame(checkers.DefaultConfig())
	require.NoError(t, err)

	require.Equal(t, 1, m.Prune(time.Hour))
	require.Equal(t, []string{fresh.ID}, m.List())
}

func TestPruneDoesNotWaitOnBusySession(t *testing.T) {
	m := NewManager()
	busy, err := m.NewGame(checkers.DefaultConfig())
	require.NoError(t, err)
	other, err := m.NewGame(checkers.DefaultConfig())
	require.NoError(t, err)
	busy.touch(time.Now().Add(-2 * time.Hour))

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = busy.Do(func(*checkers.Game) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered
	defer close(release)

	type result struct {
		pruned int
		getErr error
	}
	done := make(chan result, 1)
	go func() {
		n := m.Prune(time.Minute)
		_, err := m.Get(other.ID)
		done <- result{pruned: n, getErr: err}
	}()

	select {
	case res := <-done:
		// Do 里的局面算活跃
		require.Equal(t, 0, res.pruned)
		require.NoError(t, res.getErr)
	case <-time.After(2 * time.Second):
		t.Fatal("Prune blocked on a session held by Do")
	}
	_, err = m.Get(busy.ID)
	require.NoError(t, err)
}
