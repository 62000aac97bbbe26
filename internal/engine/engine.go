package engine

import "checkers/internal/checkers"

const ttCap = 1_000_000

type Engine struct {
	tt    map[uint64]ttEntry
	nodes int64
}

func NewEngine() *Engine {
	return &Engine{tt: make(map[uint64]ttEntry, 1<<16)}
}

func newLocalEngine() *Engine {
	return &Engine{tt: make(map[uint64]ttEntry, 1<<12)}
}

// bestFromTT 根节点的 TT 着法，用来排序
func (e *Engine) bestFromTT(pos *checkers.Position) (checkers.Move, bool) {
	entry, ok := e.tt[pos.EnsureHash()]
	if !ok || entry.Key != pos.Hash {
		return checkers.Move{}, false
	}
	return entry.Move, true
}
