package checkers

import "fmt"

// Board 8x8 棋盘。只含数组，可以按值复制（ApplyMove、引擎搜索都靠这个）。
type Board struct {
	cfg    Config
	cells  [NumSquares]Cell
	pieces [MaxPieces]Piece
	onB    [MaxPieces]bool // 该 id 当前是否在盘上
	n      int             // 已分配的 id 数

	// 增量计数：只用于记分和统计，胜负判断一律全盘扫描
	live  [2]int
	kings [2]int
	score [2]int
}

// NewBoard 标准开局：前进方向为 +1 的一方占 0..2 行，另一方占 5..7 行
func NewBoard(cfg Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Board{cfg: cfg}
	top, bottom := Light, Dark
	if cfg.Forward(Light) < 0 {
		top, bottom = Dark, Light
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if !playable(r, c) {
				continue
			}
			switch {
			case r < 3:
				b.place(top, r, c, false)
			case r > 4:
				b.place(bottom, r, c, false)
			}
		}
	}
	return b, nil
}

func newEmptyBoard(cfg Config) *Board {
	return &Board{cfg: cfg}
}

func (b *Board) place(side Side, row, col int, king bool) PieceID {
	id := PieceID(b.n)
	b.n++
	b.pieces[id] = Piece{ID: id, Side: side, Row: row, Col: col, King: king}
	b.onB[id] = true
	b.cells[indexOf(row, col)] = occupiedBy(id)
	b.live[side]++
	if king {
		b.kings[side]++
	}
	return id
}

func (b *Board) Config() Config { return b.cfg }

// Cell 越界返回空格
func (b *Board) Cell(row, col int) Cell {
	if !onBoard(row, col) {
		return EmptyCell
	}
	return b.cells[indexOf(row, col)]
}

// PieceAt 越界或空格返回 false
func (b *Board) PieceAt(row, col int) (Piece, bool) {
	if !onBoard(row, col) {
		return Piece{}, false
	}
	id, ok := b.cells[indexOf(row, col)].Piece()
	if !ok {
		return Piece{}, false
	}
	return b.pieces[id], true
}

// Piece 按 id 取棋子；已被吃掉或不存在返回 false
func (b *Board) Piece(id PieceID) (Piece, bool) {
	if id < 0 || int(id) >= b.n || !b.onB[id] {
		return Piece{}, false
	}
	return b.pieces[id], true
}

// Pieces 盘上某一方的全部棋子，按格子顺序
func (b *Board) Pieces(side Side) []Piece {
	out := make([]Piece, 0, PiecesPerSide)
	for sq := Square(0); sq < NumSquares; sq++ {
		id, ok := b.cells[sq].Piece()
		if !ok {
			continue
		}
		if p := b.pieces[id]; p.Side == side {
			out = append(out, p)
		}
	}
	return out
}

// 棋子记录的位置必须和格子一致，否则是内部逻辑错误
func (b *Board) mustAgree(id PieceID) {
	p := b.pieces[id]
	got, ok := b.cells[p.Square()].Piece()
	if !ok || got != id {
		panic(fmt.Sprintf("checkers: piece %d records %v but cell holds %v/%v", id, p.Square(), got, ok))
	}
}

// MovePiece 把棋子移到 dest。dest 为空是调用方的前提，这里不再校验（校验在走法生成）。
// 到达底线就升王；已经是王的不会重复计数。返回这一步是否刚刚升王。
func (b *Board) MovePiece(id PieceID, dest Square) (promoted bool) {
	if id < 0 || int(id) >= b.n || !b.onB[id] {
		return false
	}
	b.mustAgree(id)
	p := &b.pieces[id]
	from := p.Square()
	b.cells[from], b.cells[dest] = b.cells[dest], b.cells[from]
	p.Row, p.Col = dest.Row(), dest.Col()

	if p.Row == b.cfg.promotionRow(p.Side) && !p.King {
		p.King = true
		b.kings[p.Side]++
		promoted = true
	}
	return promoted
}

// RemoveCaptured 移除被吃的子，并给吃子的一方记分。不在盘上的 id 直接跳过。
func (b *Board) RemoveCaptured(ids []PieceID) {
	for _, id := range ids {
		if id < 0 || int(id) >= b.n || !b.onB[id] {
			continue
		}
		p := b.pieces[id]
		if got, ok := b.cells[p.Square()].Piece(); !ok || got != id {
			continue
		}
		b.cells[p.Square()] = EmptyCell
		b.onB[id] = false
		b.live[p.Side]--
		if p.King {
			b.kings[p.Side]--
		}
		b.score[opposite(p.Side)]++
	}
}

// Count 全盘扫描某一方的子数
func (b *Board) Count(side Side) int {
	n := 0
	for _, cell := range b.cells {
		id, ok := cell.Piece()
		if ok && b.pieces[id].Side == side {
			n++
		}
	}
	return n
}

// Live 增量计数的剩余子数
func (b *Board) Live(side Side) int { return b.live[side] }

// Kings 增量计数的王数
func (b *Board) Kings(side Side) int { return b.kings[side] }

// Score 该方吃掉的对方子数
func (b *Board) Score(side Side) int { return b.score[side] }

// Winner 重新扫描全盘，不依赖增量计数
func (b *Board) Winner() Outcome {
	light, dark := b.Count(Light), b.Count(Dark)
	switch {
	case light == 0 && dark == 0:
		return Draw
	case dark == 0:
		return LightWins
	case light == 0:
		return DarkWins
	}
	return Ongoing
}
