package checkers

// MoveRecord 一步已提交的走法
type MoveRecord struct {
	Side     Side
	From     Square
	To       Square
	Captured []PieceID
	Promoted bool
}

type selection struct {
	piece PieceID
	moves MoveMap
}

// Game 回合控制：选子 -> 校验 -> 提交 -> 换边。所有非法点击都只返回 false，不改变状态。
type Game struct {
	pos      *Position
	selected *selection
	history  []MoveRecord
}

func NewGame(cfg Config) (*Game, error) {
	pos, err := NewInitialPosition(cfg)
	if err != nil {
		return nil, err
	}
	return &Game{pos: pos}, nil
}

// NewGameFromPosition 从给定局面开始（测试、残局）
func NewGameFromPosition(pos *Position) *Game {
	cp := *pos
	return &Game{pos: &cp}
}

func (g *Game) Board() *Board { return &g.pos.Board }

// Position 当前局面的副本
func (g *Game) Position() *Position {
	cp := *g.pos
	return &cp
}

func (g *Game) Turn() Side { return g.pos.SideToMove }

func (g *Game) Winner() Outcome { return g.pos.Board.Winner() }

func (g *Game) Score(side Side) int { return g.pos.Board.Score(side) }

func (g *Game) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// Selected 当前选中的棋子
func (g *Game) Selected() (Piece, bool) {
	if g.selected == nil {
		return Piece{}, false
	}
	return g.pos.Board.Piece(g.selected.piece)
}

// LegalDestinations 选中棋子的全部落点；没选中时为空
func (g *Game) LegalDestinations() []Square {
	if g.selected == nil {
		return nil
	}
	return g.selected.moves.Destinations()
}

// SelectOrMove 一次点击。返回这次点击是否选中了棋子或提交了走法。
func (g *Game) SelectOrMove(row, col int) bool {
	if g.Winner() != Ongoing {
		g.selected = nil
		return false
	}
	if g.selected != nil {
		if g.commit(row, col) {
			return true
		}
		// 不是合法落点：清掉选择，当作一次新的选子
		g.selected = nil
	}
	return g.selectAt(row, col)
}

func (g *Game) selectAt(row, col int) bool {
	p, ok := g.pos.Board.PieceAt(row, col)
	if !ok || p.Side != g.pos.SideToMove {
		return false
	}
	moves := g.pos.Board.ValidMoves(p.ID)
	if len(moves) == 0 {
		return false
	}
	g.selected = &selection{piece: p.ID, moves: moves}
	return true
}

func (g *Game) commit(row, col int) bool {
	dest, ok := SquareAt(row, col)
	if !ok {
		return false
	}
	captured, ok := g.selected.moves[dest]
	if !ok {
		return false
	}
	p, _ := g.pos.Board.Piece(g.selected.piece)
	m := Move{From: p.Square(), To: dest, Captured: captured}
	next, ok := g.pos.ApplyMove(m)
	if !ok {
		return false
	}
	promoted := !p.King
	if np, ok := next.Board.Piece(p.ID); !ok || !np.King {
		promoted = false
	}

	g.history = append(g.history, MoveRecord{
		Side:     p.Side,
		From:     m.From,
		To:       m.To,
		Captured: captured,
		Promoted: promoted,
	})
	g.pos = next
	g.selected = nil
	return true
}

// Play 先选子再落子，给引擎和 API 用
func (g *Game) Play(m Move) bool {
	g.selected = nil
	if !g.SelectOrMove(m.From.Row(), m.From.Col()) {
		return false
	}
	if _, ok := g.selected.moves[m.To]; !ok {
		g.selected = nil
		return false
	}
	return g.SelectOrMove(m.To.Row(), m.To.Col())
}
