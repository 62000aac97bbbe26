package checkers

import "sort"

// 左右两条斜线
var colSteps = [2]int{-1, +1}

// rowSteps 该棋子允许的行方向：兵只能向前，王前后都行
func (b *Board) rowSteps(p Piece) []int {
	fwd := b.cfg.Forward(p.Side)
	if p.King {
		return []int{-fwd, fwd}
	}
	return []int{fwd}
}

// ValidMoves 计算棋子本回合所有可达的落点，以及到达该落点途中吃掉的子。
//
// 每个方向只看前方两格：相邻格为空是普通走子；相邻是敌子且后一格为空就是一次跳吃，
// 落地后再从落点按所有允许方向继续搜索连跳。两条路径落到同一格时，后搜到的覆盖先搜到的。
// 不修改棋盘。
func (b *Board) ValidMoves(id PieceID) MoveMap {
	moves := make(MoveMap)
	p, ok := b.Piece(id)
	if !ok {
		return moves
	}
	steps := b.rowSteps(p)
	for _, dr := range steps {
		for _, dc := range colSteps {
			b.scan(p, p.Row, p.Col, dr, dc, steps, nil, moves)
		}
	}
	return moves
}

// MovesAt 同 ValidMoves，按坐标取子；空格或越界返回空表
func (b *Board) MovesAt(row, col int) MoveMap {
	p, ok := b.PieceAt(row, col)
	if !ok {
		return make(MoveMap)
	}
	return b.ValidMoves(p.ID)
}

func (b *Board) scan(p Piece, row, col, dr, dc int, steps []int, captured []PieceID, moves MoveMap) {
	r1, c1 := row+dr, col+dc
	if !onBoard(r1, c1) {
		return
	}
	id, occupied := b.cells[indexOf(r1, c1)].Piece()
	if !occupied {
		// 连跳途中不能接普通走子
		if len(captured) == 0 {
			moves[indexOf(r1, c1)] = []PieceID{}
		}
		return
	}
	target := b.pieces[id]
	if target.Side == p.Side || containsPiece(captured, id) {
		return
	}

	r2, c2 := r1+dr, c1+dc
	if !onBoard(r2, c2) || !b.cells[indexOf(r2, c2)].Empty() {
		return
	}

	chain := make([]PieceID, len(captured), len(captured)+1)
	copy(chain, captured)
	chain = append(chain, id)
	moves[indexOf(r2, c2)] = chain

	for _, ndr := range steps {
		for _, ndc := range colSteps {
			b.scan(p, r2, c2, ndr, ndc, steps, chain, moves)
		}
	}
}

func containsPiece(ids []PieceID, id PieceID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Destinations 落点按格子顺序排列
func (m MoveMap) Destinations() []Square {
	out := make([]Square, 0, len(m))
	for sq := range m {
		out = append(out, sq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GenerateMovesForSide 把该方每个棋子的 MoveMap 展平成完整走法，顺序固定
func (b *Board) GenerateMovesForSide(side Side) []Move {
	var moves []Move
	for _, p := range b.Pieces(side) {
		mm := b.ValidMoves(p.ID)
		for _, to := range mm.Destinations() {
			moves = append(moves, Move{From: p.Square(), To: to, Captured: mm[to]})
		}
	}
	return moves
}

// HasMoves 该方是否还有任何走法
func (b *Board) HasMoves(side Side) bool {
	for _, p := range b.Pieces(side) {
		if len(b.ValidMoves(p.ID)) > 0 {
			return true
		}
	}
	return false
}
