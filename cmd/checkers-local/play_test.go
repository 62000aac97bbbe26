package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

func newTerminal(t *testing.T, enc string, ai checkers.Side) (*terminal, *bytes.Buffer) {
	t.Helper()
	var g *checkers.Game
	if enc == "" {
		var err error
		g, err = checkers.NewGame(checkers.DefaultConfig())
		require.NoError(t, err)
	} else {
		pos, err := checkers.DecodePosition(enc, checkers.DefaultConfig())
		require.NoError(t, err)
		g = checkers.NewGameFromPosition(pos)
	}
	out := &bytes.Buffer{}
	return &terminal{
		game:   g,
		ai:     ai,
		engine: engine.NewEngine(),
		search: engine.SearchConfig{MaxDepth: 3, TimeLimit: 2 * time.Second},
		out:    out,
	}, out
}

func TestTerminalHumanCapture(t *testing.T) {
	term, out := newTerminal(t, "8/8/1l6/2d5/8/8/8/8 l", checkers.NoSide)
	require.NoError(t, term.run(context.Background(), strings.NewReader("2 1\n4 3\n")))

	require.Contains(t, out.String(), "selected (2,1), destinations: (3,0) (4,3)")
	require.Contains(t, out.String(), "game over: light_wins (light 1, dark 0)")
}

func TestTerminalEngineCapture(t *testing.T) {
	term, out := newTerminal(t, "8/8/1l6/2d5/8/8/8/8 l", checkers.Light)
	require.NoError(t, term.run(context.Background(), strings.NewReader("")))

	require.Contains(t, out.String(), "engine: (2,1) -> (4,3) (captures 1)")
	require.Contains(t, out.String(), "game over: light_wins")
}

func TestTerminalBadInput(t *testing.T) {
	term, out := newTerminal(t, "", checkers.NoSide)
	require.NoError(t, term.run(context.Background(), strings.NewReader("x\n9 9\n3 0\nq\n")))

	require.Contains(t, out.String(), "enter a square as: row col")
	require.Equal(t, 2, strings.Count(out.String(), "invalid"))
	require.Empty(t, term.game.History())
}

func TestTerminalBlocked(t *testing.T) {
	term, out := newTerminal(t, "8/8/1l6/d1d5/3d4/8/8/8 l", checkers.NoSide)
	require.NoError(t, term.run(context.Background(), strings.NewReader("")))
	require.Contains(t, out.String(), "light cannot move, dark wins")
}

func TestBrowserURL(t *testing.T) {
	require.Equal(t, "http://127.0.0.1:2888/", browserURL(":2888"))
	require.Equal(t, "http://localhost:9000/", browserURL("localhost:9000"))
}
