package mcts

import (
	"math"
	"runtime"
	"time"
)

// SearchParams 控制一次 MCTS 搜索
type SearchParams struct {
	Simulations int           // 所有 worker 合计的模拟次数
	MaxTime     time.Duration // 0 表示不限时
	NumWorkers  int

	// UCT 探索系数
	Exploration float64

	// 随机走子的最大步数；超过后按子力判胜负
	PlayoutPlies int
	// 子力差超过这个值才算一方赢，否则算和
	PlayoutMargin int

	Seed int64
}

func DefaultParams() SearchParams {
	return SearchParams{
		Simulations:   4000,
		MaxTime:       2 * time.Second,
		NumWorkers:    runtime.GOMAXPROCS(0),
		Exploration:   math.Sqrt2,
		PlayoutPlies:  80,
		PlayoutMargin: 50,
		Seed:          1,
	}
}

func (p SearchParams) normalized() SearchParams {
	d := DefaultParams()
	if p.Simulations <= 0 {
		p.Simulations = d.Simulations
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = d.NumWorkers
	}
	if p.Exploration <= 0 {
		p.Exploration = d.Exploration
	}
	if p.PlayoutPlies <= 0 {
		p.PlayoutPlies = d.PlayoutPlies
	}
	return p
}
