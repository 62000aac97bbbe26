package mcts

import (
	"math"

	"checkers/internal/checkers"
)

type node struct {
	move     checkers.Move
	mover    checkers.Side // 走出 move 的一方，wins 按它算
	parent   *node
	children []*node
	untried  []checkers.Move

	visits int
	wins   float64
}

func newNode(pos *checkers.Position, mv checkers.Move, parent *node) *node {
	n := &node{
		move:   mv,
		mover:  pos.SideToMove.Opponent(),
		parent: parent,
	}
	if pos.Outcome() == checkers.Ongoing {
		n.untried = pos.GenerateMoves()
	}
	return n
}

func (n *node) expanded() bool { return len(n.untried) == 0 }

func (n *node) selectChild(c float64) *node {
	logN := math.Log(float64(n.visits))
	var best *node
	bestVal := math.Inf(-1)
	for _, ch := range n.children {
		v := ch.wins/float64(ch.visits) + c*math.Sqrt(logN/float64(ch.visits))
		if v > bestVal {
			best, bestVal = ch, v
		}
	}
	return best
}

// backprop 胜 1、和 0.5、负 0
func (n *node) backprop(o checkers.Outcome) {
	for ; n != nil; n = n.parent {
		n.visits++
		switch {
		case o == checkers.LightWins && n.mover == checkers.Light,
			o == checkers.DarkWins && n.mover == checkers.Dark:
			n.wins++
		case o == checkers.Draw:
			n.wins += 0.5
		}
	}
}
