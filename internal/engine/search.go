package engine

import (
	"context"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"checkers/internal/checkers"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000
	// 胜负分，减去 ply 让更快的胜利分更高
	scoreWin = 1_000_000
	maxPly   = 256

	defaultDepth = 6
)

// 搜索配置
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply）
	TimeLimit time.Duration // 搜索时间上限（0 表示不限制）
}

// 搜索结果
type SearchResult struct {
	BestMove checkers.Move
	HasMove  bool          // 走子方无路可走时为 false
	Score    int           // 浅色方视角：正数浅色好
	Depth    int           // 完整搜完的深度
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
}

// IsMate 分数是否表示已经算到胜负
func IsMate(score int) bool {
	return score >= scoreWin-maxPly || score <= -scoreWin+maxPly
}

// Search 迭代加深；每层根节点的子局面并行搜索。ctx 取消或超时后返回最后一层完整结果。
func (e *Engine) Search(ctx context.Context, pos *checkers.Position, cfg SearchConfig) SearchResult {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultDepth
	}
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}
	start := time.Now()
	atomic.StoreInt64(&e.nodes, 0)

	var res SearchResult
	moves := pos.GenerateMoves()
	if o := pos.Board.Winner(); o != checkers.Ongoing || len(moves) == 0 {
		res.Score = terminalScore(pos.Outcome(), 0)
		res.TimeUsed = time.Since(start)
		return res
	}
	if len(moves) == 1 {
		// 只有一步可走就不用搜了
		res.BestMove = moves[0]
		res.HasMove = true
		res.Score = Evaluate(pos)
		res.TimeUsed = time.Since(start)
		return res
	}

	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		score, mv, ok := e.alphaBetaRoot(ctx, pos, moves, depth)
		if !ok {
			// 这一层没搜完，丢弃
			break
		}
		res.BestMove = mv
		res.HasMove = true
		res.Score = score
		res.Depth = depth
		if IsMate(score) {
			break
		}
	}

	if !res.HasMove {
		// 连第一层都没搜完：退回吃子最多的着法
		orderMoves(moves, checkers.Move{}, false)
		res.BestMove = moves[0]
		res.HasMove = true
		res.Score = Evaluate(pos)
	}

	res.Nodes = atomic.LoadInt64(&e.nodes)
	res.TimeUsed = time.Since(start)
	return res
}

// 根节点：每个着法一个 goroutine，各自用局部 Engine/TT，避免加锁
func (e *Engine) alphaBetaRoot(ctx context.Context, pos *checkers.Position, moves []checkers.Move, depth int) (int, checkers.Move, bool) {
	ttMove, hasTT := e.bestFromTT(pos)
	orderMoves(moves, ttMove, hasTT)

	type childNode struct {
		move  checkers.Move
		child *checkers.Position
		score int
	}
	children := make([]childNode, 0, len(moves))
	for _, mv := range moves {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		children = append(children, childNode{move: mv, child: child})
	}
	if len(children) == 0 {
		return 0, checkers.Move{}, false
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range children {
		i := i
		g.Go(func() error {
			local := newLocalEngine()
			children[i].score = local.alphaBeta(gctx, children[i].child, depth-1, -scoreInf, scoreInf, 1)
			atomic.AddInt64(&e.nodes, local.nodes)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil || ctx.Err() != nil {
		return 0, checkers.Move{}, false
	}

	light := pos.SideToMove == checkers.Light
	best := children[0]
	for _, ch := range children[1:] {
		if light && ch.score > best.score || !light && ch.score < best.score {
			best = ch
		}
	}

	// 根节点存 TT（全局 tt 只有主 goroutine 访问）
	e.storeTT(pos.EnsureHash(), depth, best.score, boundExact, best.move)
	return best.score, best.move, true
}

// 内部递归：浅色方取极大，深色方取极小
func (e *Engine) alphaBeta(ctx context.Context, pos *checkers.Position, depth int, alpha, beta int, ply int) int {
	e.nodes++
	if e.nodes&255 == 0 && ctx.Err() != nil {
		// 超时：返回静态评估，上层会丢掉这一层
		return Evaluate(pos)
	}

	if o := pos.Board.Winner(); o != checkers.Ongoing {
		return terminalScore(o, ply)
	}
	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		return terminalScore(pos.Outcome(), ply)
	}
	if depth <= 0 || ply >= maxPly {
		return Evaluate(pos)
	}

	key := pos.EnsureHash()
	if score, ok := e.probeTT(key, depth, alpha, beta); ok {
		return score
	}
	alphaOrig, betaOrig := alpha, beta

	ttMove, hasTT := e.bestFromTT(pos)
	orderMoves(moves, ttMove, hasTT)

	light := pos.SideToMove == checkers.Light
	bestScore := scoreInf
	if light {
		bestScore = -scoreInf
	}
	var bestMove checkers.Move
	for _, mv := range moves {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		score := e.alphaBeta(ctx, child, depth-1, alpha, beta, ply+1)
		if light {
			if score > bestScore {
				bestScore, bestMove = score, mv
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < bestScore {
				bestScore, bestMove = score, mv
			}
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			break
		}
	}

	bound := boundExact
	switch {
	case bestScore <= alphaOrig:
		bound = boundUpper
	case bestScore >= betaOrig:
		bound = boundLower
	}
	e.storeTT(key, depth, bestScore, bound, bestMove)
	return bestScore
}

func terminalScore(o checkers.Outcome, ply int) int {
	switch o {
	case checkers.LightWins:
		return scoreWin - ply
	case checkers.DarkWins:
		return -scoreWin + ply
	}
	return 0
}

// TT 着法最前，其余按吃子数从多到少
func orderMoves(moves []checkers.Move, ttMove checkers.Move, hasTT bool) {
	isTT := func(m checkers.Move) bool {
		return hasTT && m.From == ttMove.From && m.To == ttMove.To
	}
	sort.SliceStable(moves, func(i, j int) bool {
		ti, tj := isTT(moves[i]), isTT(moves[j])
		if ti != tj {
			return ti
		}
		return len(moves[i].Captured) > len(moves[j].Captured)
	})
}
