package checkers

import "sync"

var (
	zobristOnce sync.Once

	// [side][man/king][square]
	zobristPieces [2][2][NumSquares]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for kind := 0; kind < 2; kind++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][kind][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(p Piece, sq Square) uint64 {
	if sq < 0 || sq >= NumSquares || (p.Side != Light && p.Side != Dark) {
		return 0
	}
	initZobrist()
	kind := 0
	if p.King {
		kind = 1
	}
	return zobristPieces[p.Side][kind][sq]
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希。
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		id, ok := p.Board.cells[sq].Piece()
		if !ok {
			continue
		}
		h ^= pieceHashKey(p.Board.pieces[id], sq)
	}
	if p.SideToMove == Dark {
		h ^= zobristSide
	}
	return h
}

// EnsureHash 确保 Position.Hash 已初始化；返回当前哈希值。
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
