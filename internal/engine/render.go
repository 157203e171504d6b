package engine

import (
	"strings"

	"github.com/lgbarn/chessai-go/internal/chess"
)

// RenderText draws the board as a fixed-width grid, top rank first. Each
// tile is three characters wide: a piece letter (upper case for White,
// lower case for Black) padded with spaces, or blanks for an empty tile.
func RenderText(b *Board) string {
	var sb strings.Builder
	sb.Grow(chess.BoardHeight * (chess.BoardWidth*3 + 1))
	for rank := chess.BoardHeight - 1; rank >= 0; rank-- {
		for file := 0; file < chess.BoardWidth; file++ {
			p := b.tiles[rank*chess.BoardWidth+file]
			if p.isNone() {
				sb.WriteString("   ")
				continue
			}
			sb.WriteByte(' ')
			sb.WriteByte(p.Letter())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
