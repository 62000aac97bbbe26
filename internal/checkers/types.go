package checkers

import (
	"errors"
	"fmt"
)

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols

	// 每方 12 子
	PiecesPerSide = 12
	MaxPieces     = 2 * PiecesPerSide
)

type Side int8

const (
	NoSide Side = -1
	Light  Side = 0
	Dark   Side = 1
)

func (s Side) String() string {
	switch s {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "none"
	}
}

func opposite(side Side) Side {
	if side == Light {
		return Dark
	}
	if side == Dark {
		return Light
	}
	return NoSide
}

// Opponent 返回另一方；NoSide 保持 NoSide
func (s Side) Opponent() Side { return opposite(s) }

// Square 0..63，row*Cols+col
type Square int8

func indexOf(row, col int) Square { return Square(row*Cols + col) }

func (sq Square) Row() int { return int(sq) / Cols }
func (sq Square) Col() int { return int(sq) % Cols }

func (sq Square) String() string {
	return fmt.Sprintf("(%d,%d)", sq.Row(), sq.Col())
}

// SquareAt 越界返回 false
func SquareAt(row, col int) (Square, bool) {
	if !onBoard(row, col) {
		return 0, false
	}
	return indexOf(row, col), true
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// 深色格（可落子格）
func playable(row, col int) bool { return (row+col)%2 == 1 }

type PieceID int8

// Cell 要么为空，要么放着一个棋子
type Cell struct {
	id       PieceID
	occupied bool
}

var EmptyCell = Cell{}

func occupiedBy(id PieceID) Cell { return Cell{id: id, occupied: true} }

func (c Cell) Empty() bool { return !c.occupied }

func (c Cell) Piece() (PieceID, bool) { return c.id, c.occupied }

type Piece struct {
	ID   PieceID
	Side Side
	Row  int
	Col  int
	King bool
}

func (p Piece) Square() Square { return indexOf(p.Row, p.Col) }

// Outcome 胜负结果；零值表示对局仍在进行
type Outcome int8

const (
	Ongoing Outcome = iota
	LightWins
	DarkWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case LightWins:
		return "light_wins"
	case DarkWins:
		return "dark_wins"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

var ErrInvalidConfig = errors.New("invalid config")

// Config 规则参数，创建后不再修改
type Config struct {
	Size         int  // 只支持 8
	LightForward int  // +1：浅色从第 0 行向下走；-1 反之
	FirstToMove  Side // 先手
}

// DefaultConfig 浅色在 0..2 行、向行号增大方向走、先手
func DefaultConfig() Config {
	return Config{Size: Rows, LightForward: +1, FirstToMove: Light}
}

func (c Config) Validate() error {
	if c.Size != Rows {
		return fmt.Errorf("%w: board size %d (only %d supported)", ErrInvalidConfig, c.Size, Rows)
	}
	if c.LightForward != 1 && c.LightForward != -1 {
		return fmt.Errorf("%w: light forward direction %d", ErrInvalidConfig, c.LightForward)
	}
	if c.FirstToMove != Light && c.FirstToMove != Dark {
		return fmt.Errorf("%w: first to move %v", ErrInvalidConfig, c.FirstToMove)
	}
	return nil
}

// Forward 该方的前进行方向
func (c Config) Forward(side Side) int {
	if side == Light {
		return c.LightForward
	}
	if side == Dark {
		return -c.LightForward
	}
	return 0
}

// 升变行：前进方向上的最后一行
func (c Config) promotionRow(side Side) int {
	if c.Forward(side) > 0 {
		return Rows - 1
	}
	return 0
}

// Move 一个完整回合的走法
type Move struct {
	From     Square
	To       Square
	Captured []PieceID
}

func (m Move) IsCapture() bool { return len(m.Captured) > 0 }

// MoveMap 目的格 -> 途中吃掉的棋子（按吃子顺序）；空切片为普通走子
type MoveMap map[Square][]PieceID
