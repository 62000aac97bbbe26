package engine

import "checkers/internal/checkers"

type ttBound int8

const (
	boundExact ttBound = iota
	boundLower
	boundUpper
)

// 简单 TT 条目
type ttEntry struct {
	Key   uint64
	Depth int
	Score int
	Bound ttBound
	Move  checkers.Move
}

// 每个搜索 goroutine 各自一张表，不加锁
func (e *Engine) storeTT(key uint64, depth int, score int, bound ttBound, mv checkers.Move) {
	if len(e.tt) > ttCap {
		e.tt = make(map[uint64]ttEntry, 1<<14)
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{
			Key:   key,
			Depth: depth,
			Score: score,
			Bound: bound,
			Move:  mv,
		}
	}
}

func (e *Engine) probeTT(key uint64, depth, alpha, beta int) (int, bool) {
	entry, ok := e.tt[key]
	if !ok || entry.Key != key || entry.Depth < depth {
		return 0, false
	}
	switch entry.Bound {
	case boundExact:
		return entry.Score, true
	case boundLower:
		if entry.Score >= beta {
			return entry.Score, true
		}
	case boundUpper:
		if entry.Score <= alpha {
			return entry.Score, true
		}
	}
	return 0, false
}
