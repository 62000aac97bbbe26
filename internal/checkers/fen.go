package checkers

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPosition = errors.New("invalid position")

func pieceToChar(p Piece) byte {
	var ch byte = 'l'
	if p.Side == Dark {
		ch = 'd'
	}
	if p.King {
		ch -= 'a' - 'A'
	}
	return ch
}

func sideToChar(s Side) byte {
	if s == Dark {
		return 'd'
	}
	return 'l'
}

// Encode 类 FEN：8 行用“/”隔开，空位用数字压缩，l/d 兵，L/D 王；空格后 l/d 表示走子方
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			id, ok := p.Board.cells[indexOf(r, c)].Piece()
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceToChar(p.Board.pieces[id]))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	sb.WriteByte(sideToChar(p.SideToMove))
	return sb.String()
}

// DecodePosition 解析 Encode 的输出。棋子 id 按扫描顺序分配；计分从 0 开始。
func DecodePosition(s string, cfg Config) (*Position, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: want \"<ranks> <side>\"", ErrInvalidPosition)
	}
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Rows {
		return nil, fmt.Errorf("%w: %d ranks", ErrInvalidPosition, len(ranks))
	}

	b := newEmptyBoard(cfg)
	var counts [2]int
	for r, rank := range ranks {
		c := 0
		for _, ch := range rank {
			if c >= Cols {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidPosition, r)
			}
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			var side Side
			var king bool
			switch ch {
			case 'l':
				side = Light
			case 'L':
				side, king = Light, true
			case 'd':
				side = Dark
			case 'D':
				side, king = Dark, true
			default:
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidPosition, ch)
			}
			if !playable(r, c) {
				return nil, fmt.Errorf("%w: piece on light square (%d,%d)", ErrInvalidPosition, r, c)
			}
			if !king && r == cfg.promotionRow(side) {
				return nil, fmt.Errorf("%w: unpromoted %v man on its last rank (%d,%d)", ErrInvalidPosition, side, r, c)
			}
			counts[side]++
			if counts[side] > PiecesPerSide {
				return nil, fmt.Errorf("%w: more than %d %v pieces", ErrInvalidPosition, PiecesPerSide, side)
			}
			b.place(side, r, c, king)
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: rank %d has %d columns", ErrInvalidPosition, r, c)
		}
	}

	var stm Side
	switch parts[1] {
	case "l":
		stm = Light
	case "d":
		stm = Dark
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidPosition, parts[1])
	}
	pos := &Position{Board: *b, SideToMove: stm}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}

// String 文本棋盘，供命令行使用
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  01234567\n")
	for r := 0; r < Rows; r++ {
		sb.WriteByte(byte('0' + r))
		sb.WriteByte(' ')
		for c := 0; c < Cols; c++ {
			id, ok := b.cells[indexOf(r, c)].Piece()
			switch {
			case ok:
				sb.WriteByte(pieceToChar(b.pieces[id]))
			case playable(r, c):
				sb.WriteByte('.')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
