package mcts

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

// SearchResult 根节点统计，所有 worker 合并后的结果
type SearchResult struct {
	BestMove checkers.Move
	HasMove  bool
	WinRate  float64 // 走子方视角，和算一半
	Visits   int
	TimeUsed time.Duration
}

type Searcher struct {
	params SearchParams
}

func NewSearcher(params SearchParams) *Searcher {
	return &Searcher{params: params.normalized()}
}

type rootStats struct {
	visits []int
	wins   []float64
}

// Search 根并行：每个 worker 一棵独立的树，最后按根节点访问次数合并
func (s *Searcher) Search(ctx context.Context, pos *checkers.Position) SearchResult {
	start := time.Now()
	moves := pos.GenerateMoves()
	if pos.Outcome() != checkers.Ongoing || len(moves) == 0 {
		return SearchResult{TimeUsed: time.Since(start)}
	}
	if len(moves) == 1 {
		return SearchResult{BestMove: moves[0], HasMove: true, WinRate: 0.5, TimeUsed: time.Since(start)}
	}

	if s.params.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.params.MaxTime)
		defer cancel()
	}

	workers := s.params.NumWorkers
	perWorker := (s.params.Simulations + workers - 1) / workers
	stats := make([]rootStats, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(s.params.Seed + int64(w)))
			root := newNode(pos, checkers.Move{}, nil)
			for i := 0; i < perWorker && gctx.Err() == nil; i++ {
				s.simulate(root, pos, rng)
			}
			stats[w] = collect(root, moves)
			return nil
		})
	}
	_ = g.Wait()

	visits := make([]int, len(moves))
	wins := make([]float64, len(moves))
	for _, st := range stats {
		for i := range st.visits {
			visits[i] += st.visits[i]
			wins[i] += st.wins[i]
		}
	}

	best := 0
	for i := range moves {
		if visits[i] > visits[best] {
			best = i
		}
	}
	res := SearchResult{BestMove: moves[best], HasMove: true, TimeUsed: time.Since(start)}
	for _, v := range visits {
		res.Visits += v
	}
	if visits[best] > 0 {
		res.WinRate = wins[best] / float64(visits[best])
	}
	return res
}

// 一次模拟：选择 -> 扩展 -> 随机走子 -> 回传
func (s *Searcher) simulate(root *node, pos *checkers.Position, rng *rand.Rand) {
	n := root
	cur := pos
	for n.expanded() && len(n.children) > 0 {
		n = n.selectChild(s.params.Exploration)
		cur, _ = cur.ApplyMove(n.move)
	}
	if !n.expanded() {
		i := rng.Intn(len(n.untried))
		mv := n.untried[i]
		n.untried[i] = n.untried[len(n.untried)-1]
		n.untried = n.untried[:len(n.untried)-1]

		cur, _ = cur.ApplyMove(mv)
		child := newNode(cur, mv, n)
		n.children = append(n.children, child)
		n = child
	}
	n.backprop(s.playout(cur, rng))
}

func (s *Searcher) playout(pos *checkers.Position, rng *rand.Rand) checkers.Outcome {
	for ply := 0; ply < s.params.PlayoutPlies; ply++ {
		if o := pos.Outcome(); o != checkers.Ongoing {
			return o
		}
		moves := pos.GenerateMoves()
		next, ok := pos.ApplyMove(moves[rng.Intn(len(moves))])
		if !ok {
			break
		}
		pos = next
	}
	if o := pos.Outcome(); o != checkers.Ongoing {
		return o
	}
	switch score := engine.Evaluate(pos); {
	case score > s.params.PlayoutMargin:
		return checkers.LightWins
	case score < -s.params.PlayoutMargin:
		return checkers.DarkWins
	}
	return checkers.Draw
}

func collect(root *node, moves []checkers.Move) rootStats {
	st := rootStats{visits: make([]int, len(moves)), wins: make([]float64, len(moves))}
	for _, ch := range root.children {
		for i, mv := range moves {
			if mv.From == ch.move.From && mv.To == ch.move.To {
				st.visits[i] += ch.visits
				st.wins[i] += ch.wins
				break
			}
		}
	}
	return st
}
