package engine

import "github.com/lgbarn/chessai-go/internal/chess"

// IsAttacked reports whether any piece of alliance by attacks c. Pawns
// attack diagonally forward only; sliders are blocked by any piece.
func (b *Board) IsAttacked(c chess.Coordinate, by chess.Alliance) bool {
	// Pawns of "by" attack c from one rank behind it, relative to their direction
	for _, df := range [2]int{-1, 1} {
		if from, ok := c.Step(df, -by.Direction()); ok && b.holds(from, chess.Pawn, by) {
			return true
		}
	}

	for _, offset := range knightOffsets {
		if from, ok := c.Step(offset[0], offset[1]); ok && b.holds(from, chess.Knight, by) {
			return true
		}
	}

	for _, offset := range kingOffsets {
		if from, ok := c.Step(offset[0], offset[1]); ok && b.holds(from, chess.King, by) {
			return true
		}
	}

	if b.slidingAttack(c, by, diagonalDirs, chess.Bishop) {
		return true
	}
	return b.slidingAttack(c, by, straightDirs, chess.Rook)
}

// slidingAttack walks each direction from c to the first occupied tile and
// reports whether it holds a piece of type t or a queen of alliance by.
func (b *Board) slidingAttack(c chess.Coordinate, by chess.Alliance, dirs [][2]int, t chess.PieceType) bool {
	for _, dir := range dirs {
		at := c
		for {
			next, ok := at.Step(dir[0], dir[1])
			if !ok {
				break
			}
			if p, occupied := b.PieceAt(next); occupied {
				if p.alliance == by && (p.kind == t || p.kind == chess.Queen) {
					return true
				}
				break // Blocked
			}
			at = next
		}
	}
	return false
}

func (b *Board) holds(c chess.Coordinate, t chess.PieceType, a chess.Alliance) bool {
	p := b.tiles[c.Index()]
	return p.kind == t && p.alliance == a
}

// kingAttacked reports whether alliance a's king is attacked. A board with
// no king for a counts as attacked, so such successors are never legal.
func (b *Board) kingAttacked(a chess.Alliance) bool {
	king, ok := b.King(a)
	if !ok {
		return true
	}
	return b.IsAttacked(king.coord, a.Opponent())
}
