package engine

import "github.com/lgbarn/chessai-go/internal/chess"

// IsInCheck returns true if the king of alliance a is attacked on b.
func IsInCheck(b *Board, a chess.Alliance) bool {
	return b.Player(a).IsInCheck()
}

// IsInCheckmate returns true if alliance a is in check with no legal move.
func IsInCheckmate(b *Board, a chess.Alliance) bool {
	return b.Player(a).IsInCheckmate()
}

// IsInStalemate returns true if alliance a has no legal move and is not in check.
func IsInStalemate(b *Board, a chess.Alliance) bool {
	return b.Player(a).IsInStalemate()
}

// IsGameOver reports whether the side to move is checkmated or stalemated.
func IsGameOver(b *Board) bool {
	p := b.CurrentPlayer()
	return p.IsInCheckmate() || p.IsInStalemate()
}
