package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"checkers/internal/checkers"
	"checkers/internal/engine"
	"checkers/internal/mcts"
)

func TestPlayGameStopsAtPlyCap(t *testing.T) {
	p := alphaBetaPlayer("p", engine.NewEngine(), engine.SearchConfig{MaxDepth: 1})
	res, err := playGame(context.Background(), checkers.DefaultConfig(), p, p, 4)
	require.NoError(t, err)
	require.Equal(t, checkers.Draw, res.outcome)
	require.Equal(t, 4, res.plies)

	_, err = checkers.DecodePosition(res.final, checkers.DefaultConfig())
	require.NoError(t, err)
}

func TestAlphaBetaVersusMCTS(t *testing.T) {
	params := mcts.DefaultParams()
	params.Simulations = 200
	params.NumWorkers = 2
	ab := alphaBetaPlayer("ab", engine.NewEngine(), engine.SearchConfig{MaxDepth: 2})
	mc := mctsPlayer("mcts", params)

	res, err := playGame(context.Background(), checkers.DefaultConfig(), ab, mc, 6)
	require.NoError(t, err)
	require.LessOrEqual(t, res.plies, 6)
}

func TestMatchTally(t *testing.T) {
	a, b := player{name: "a"}, player{name: "b"}
	var tally matchTally
	tally.add(gameResult{outcome: checkers.LightWins}, a, b)
	tally.add(gameResult{outcome: checkers.LightWins}, b, a)
	tally.add(gameResult{outcome: checkers.DarkWins}, b, a)
	tally.add(gameResult{outcome: checkers.Draw}, a, b)

	require.Equal(t, 2, tally.wins["a"])
	require.Equal(t, 1, tally.wins["b"])
	require.Equal(t, 1, tally.draws)
}
