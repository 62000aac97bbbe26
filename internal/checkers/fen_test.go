package checkers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const initialFEN = "1l1l1l1l/l1l1l1l1/1l1l1l1l/8/8/d1d1d1d1/1d1d1d1d/d1d1d1d1 l"

func TestEncodeInitial(t *testing.T) {
	pos, err := NewInitialPosition(DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, initialFEN, pos.Encode())

	decoded := mustDecode(t, initialFEN)
	require.Equal(t, initialFEN, decoded.Encode())
	require.Equal(t, pos.Hash, decoded.Hash)
}

func TestDecodeKingsAndSide(t *testing.T) {
	pos := mustDecode(t, "8/8/3L4/8/8/4D3/8/8 d")
	require.Equal(t, Dark, pos.SideToMove)

	p, ok := pos.Board.PieceAt(2, 3)
	require.True(t, ok)
	require.True(t, p.King)
	require.Equal(t, Light, p.Side)
	require.Equal(t, 1, pos.Board.Kings(Dark))
}

func TestDecodeErrors(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8 l",
		"8/8/8/8/8/8/8/8",
		"8/8/8/8/8/8/8/8 x",
		"l7/8/8/8/8/8/8/8 l",  // 浅色格
		"8/8/8/8/8/8/8/l7 l",  // 未升变的兵停在底线
		"8/8/8/8/8/8/8/9 l",   // 列数不对
		"8/8/8/8/8/8/8/1q6 l", // 未知字符
		"8/8/8/8/8/8/8/1l1l1l1l1 l",
		strings.Repeat("l1l1l1l1/", 7) + "8 l",
	}
	for _, s := range bad {
		_, err := DecodePosition(s, DefaultConfig())
		require.ErrorIs(t, err, ErrInvalidPosition, "%q", s)
	}
}

func TestBoardString(t *testing.T) {
	pos := mustDecode(t, "8/8/1l6/2d5/8/8/8/8 l")
	lines := strings.Split(pos.Board.String(), "\n")
	require.Equal(t, "  01234567", lines[0])
	require.Equal(t, "2  l . . .", strings.TrimRight(lines[3], " "))
	require.Equal(t, "3 . d . .", strings.TrimRight(lines[4], " "))
}
