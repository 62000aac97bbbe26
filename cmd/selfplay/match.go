package main

import (
	"context"
	"fmt"

	"checkers/internal/checkers"
	"checkers/internal/engine"
	"checkers/internal/mcts"
)

// chooser 给出当前局面要走的棋
type chooser func(ctx context.Context, pos *checkers.Position) (checkers.Move, bool)

type player struct {
	name   string
	choose chooser
}

func alphaBetaPlayer(name string, e *engine.Engine, cfg engine.SearchConfig) player {
	return player{name: name, choose: func(ctx context.Context, pos *checkers.Position) (checkers.Move, bool) {
		res := e.Search(ctx, pos, cfg)
		return res.BestMove, res.HasMove
	}}
}

func mctsPlayer(name string, params mcts.SearchParams) player {
	s := mcts.NewSearcher(params)
	return player{name: name, choose: func(ctx context.Context, pos *checkers.Position) (checkers.Move, bool) {
		res := s.Search(ctx, pos)
		return res.BestMove, res.HasMove
	}}
}

type gameResult struct {
	outcome checkers.Outcome
	plies   int
	final   string
}

type matchTally struct {
	wins  map[string]int
	draws int
}

func (t *matchTally) add(res gameResult, light, dark player) {
	if t.wins == nil {
		t.wins = make(map[string]int)
	}
	switch res.outcome {
	case checkers.LightWins:
		t.wins[light.name]++
	case checkers.DarkWins:
		t.wins[dark.name]++
	default:
		t.draws++
	}
}

// playGame 走到分出胜负或达到 maxPlies（算和）
func playGame(ctx context.Context, rules checkers.Config, light, dark player, maxPlies int) (gameResult, error) {
	pos, err := checkers.NewInitialPosition(rules)
	if err != nil {
		return gameResult{}, err
	}

	for ply := 0; ply < maxPlies; ply++ {
		if o := pos.Outcome(); o != checkers.Ongoing {
			return gameResult{outcome: o, plies: ply, final: pos.Encode()}, nil
		}
		if ctx.Err() != nil {
			return gameResult{outcome: checkers.Draw, plies: ply, final: pos.Encode()}, nil
		}

		p := light
		if pos.SideToMove == checkers.Dark {
			p = dark
		}
		mv, ok := p.choose(ctx, pos)
		if !ok {
			return gameResult{}, fmt.Errorf("%s found no move at ply %d in %s", p.name, ply, pos.Encode())
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			return gameResult{}, fmt.Errorf("%s played invalid move %v-%v at ply %d", p.name, mv.From, mv.To, ply)
		}
		pos = next
	}
	o := pos.Outcome()
	if o == checkers.Ongoing {
		o = checkers.Draw
	}
	return gameResult{outcome: o, plies: maxPlies, final: pos.Encode()}, nil
}
