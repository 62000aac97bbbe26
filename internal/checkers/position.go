package checkers

// Position = 棋盘 + 轮到谁走
type Position struct {
	Board      Board
	SideToMove Side
	Hash       uint64
}

// NewInitialPosition 标准开局
func NewInitialPosition(cfg Config) (*Position, error) {
	b, err := NewBoard(cfg)
	if err != nil {
		return nil, err
	}
	pos := &Position{Board: *b, SideToMove: cfg.FirstToMove}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}

// GenerateMoves 当前走子方的全部走法
func (p *Position) GenerateMoves() []Move {
	return p.Board.GenerateMovesForSide(p.SideToMove)
}

// HasMoves 当前走子方是否还能动
func (p *Position) HasMoves() bool {
	return p.Board.HasMoves(p.SideToMove)
}

// ApplyMove 返回走完之后的新局面，原局面不变。这里默认走法来自 GenerateMoves，只做最基本的检查。
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if m.From < 0 || m.From >= NumSquares || m.To < 0 || m.To >= NumSquares {
		return nil, false
	}
	id, ok := p.Board.cells[m.From].Piece()
	if !ok {
		return nil, false
	}
	pc := p.Board.pieces[id]
	if pc.Side != p.SideToMove || !p.Board.cells[m.To].Empty() {
		return nil, false
	}

	np := *p
	h := p.EnsureHash()
	h ^= pieceHashKey(pc, m.From)
	for _, cid := range m.Captured {
		if cp, ok := np.Board.Piece(cid); ok {
			h ^= pieceHashKey(cp, cp.Square())
		}
	}

	np.Board.MovePiece(id, m.To)
	np.Board.RemoveCaptured(m.Captured)
	np.SideToMove = opposite(p.SideToMove)

	h ^= pieceHashKey(np.Board.pieces[id], m.To)
	h ^= zobristSide
	np.Hash = h
	return &np, true
}

// Outcome 在盘面胜负之外，把“走子方无路可走”判为对方胜
func (p *Position) Outcome() Outcome {
	if o := p.Board.Winner(); o != Ongoing {
		return o
	}
	if !p.HasMoves() {
		if p.SideToMove == Light {
			return DarkWins
		}
		return LightWins
	}
	return Ongoing
}
