package engine

import "checkers/internal/checkers"

// ======= 基础子力估值 =======

const (
	manValue  = 100
	kingValue = 160

	advanceWeight  = 4 // 兵每前进一行
	backRankGuard  = 6 // 守住自家底线的兵
	centerBonus    = 3 // 中间四列
	mobilityWeight = 2
)

// Evaluate 从浅色方视角：score = 浅色 - 深色
func Evaluate(pos *checkers.Position) int {
	b := &pos.Board
	cfg := b.Config()
	score := 0
	for _, side := range []checkers.Side{checkers.Light, checkers.Dark} {
		sign := 1
		if side == checkers.Dark {
			sign = -1
		}
		for _, p := range b.Pieces(side) {
			score += sign * pieceScore(cfg, p)
		}
	}
	return score + evaluateMobility(pos)
}

func pieceScore(cfg checkers.Config, p checkers.Piece) int {
	v := manValue
	if p.King {
		v = kingValue
	} else {
		adv := advance(cfg, p.Side, p.Row)
		v += adv * advanceWeight
		if adv == 0 {
			v += backRankGuard
		}
	}
	if p.Col >= 2 && p.Col <= 5 {
		v += centerBonus
	}
	return v
}

// 自己这边的“前进距离”：家底线为 0，越靠近对方底线数值越大
func advance(cfg checkers.Config, side checkers.Side, row int) int {
	if cfg.Forward(side) > 0 {
		return row
	}
	return checkers.Rows - 1 - row
}

func evaluateMobility(pos *checkers.Position) int {
	steps := len(pos.GenerateMoves())
	if pos.SideToMove == checkers.Light {
		return steps * mobilityWeight
	}
	return -steps * mobilityWeight
}
